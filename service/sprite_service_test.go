package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-catalog/testutil"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return cfg.Width, cfg.Height
}

func TestOptimizeSprite_KeepsAspectRatio(t *testing.T) {
	svc := NewSpriteService(nil, nil)

	tests := []struct {
		size         string
		w, h         int
		wantW, wantH int
	}{
		{size: "thumb", w: 96, h: 96, wantW: 64, wantH: 64},
		{size: "medium", w: 40, h: 20, wantW: 256, wantH: 128},
		{size: "large", w: 20, h: 40, wantW: 256, wantH: 512},
		{size: "bogus", w: 96, h: 96, wantW: 256, wantH: 256},
	}

	for _, tc := range tests {
		t.Run(tc.size, func(t *testing.T) {
			out, err := svc.OptimizeSprite(encodePNG(t, tc.w, tc.h), tc.size)
			require.NoError(t, err)
			w, h := decodeSize(t, out)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestOptimizeSprite_RejectsGarbage(t *testing.T) {
	_, err := NewSpriteService(nil, nil).OptimizeSprite([]byte("not an image"), "thumb")
	assert.Error(t, err)
}

func TestGetSprite(t *testing.T) {
	fake := testutil.NewFakePokeAPI(t)
	fake.AddPokemon("pikachu", 25, 60, "electric")
	sprite := encodePNG(t, 96, 96)
	fake.HandleFunc("sprites/pikachu.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(sprite)
	})

	out, err := NewSpriteService(newTestAPI(t, fake), nil).GetSprite(context.Background(), "pikachu", "thumb")
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
}

func TestGetSprite_NoSprite(t *testing.T) {
	fake := testutil.NewFakePokeAPI(t)
	body := fake.PokemonBody("ghostly", 0, 1, "ghost")
	body["sprites"] = map[string]any{"front_default": nil}
	fake.Handle("pokemon/ghostly", body)

	_, err := NewSpriteService(newTestAPI(t, fake), nil).GetSprite(context.Background(), "ghostly", "")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "sprite", nf.Kind)
}
