package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// Size settings (bounding box edge in pixels)
	spriteSizeThumb  = 64
	spriteSizeMedium = 256
	spriteSizeLarge  = 512
)

// SpriteService fetches entity sprites and scales them to a preset size
type SpriteService struct {
	api    PokeAPIServiceInterface
	logger *zap.Logger
}

// NewSpriteService creates a new SpriteService
func NewSpriteService(api PokeAPIServiceInterface, logger *zap.Logger) *SpriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpriteService{
		api:    api,
		logger: logger,
	}
}

// GetSprite returns the default sprite of an entity as PNG scaled to size
// ("thumb", "medium" or "large")
func (s *SpriteService) GetSprite(ctx context.Context, name, size string) ([]byte, error) {
	p, err := fetchPokemon(ctx, s.api, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}

	spriteURL := deref(p.Sprites.FrontDefault)
	if spriteURL == "" {
		spriteURL = deref(p.Sprites.Other.OfficialArtwork.FrontDefault)
	}
	if spriteURL == "" {
		return nil, &NotFoundError{Kind: "sprite", Name: p.Name}
	}

	data, err := s.api.GetBytes(ctx, spriteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download sprite of %q: %w", name, err)
	}
	return s.OptimizeSprite(data, size)
}

// OptimizeSprite scales an image so it fits the preset box, keeping the aspect
// ratio, and encodes it as PNG. Sprites are pixel art, so nearest-neighbor
// sampling is used.
func (s *SpriteService) OptimizeSprite(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var box int
	switch size {
	case "thumb":
		box = spriteSizeThumb
	case "large":
		box = spriteSizeLarge
	case "medium", "":
		box = spriteSizeMedium
	default:
		box = spriteSizeMedium
		s.logger.Warn("⚠️  Unknown sprite size, defaulting to medium", zap.String("size", size))
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	// Calculate new dimensions maintaining aspect ratio
	var newWidth, newHeight int
	if width >= height {
		newWidth = box
		newHeight = max(1, height*box/width)
	} else {
		newHeight = box
		newWidth = max(1, width*box/height)
	}
	resized := imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	s.logger.Debug("📸 Sprite optimized",
		zap.String("size", size),
		zap.Int("width", newWidth),
		zap.Int("height", newHeight),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
