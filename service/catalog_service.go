package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"pokedex-catalog/models"
)

// DefaultCatalogLimit covers every entity in the national index
const DefaultCatalogLimit = 1025

// CatalogService loads the catalog index of entity stubs
type CatalogService struct {
	api    PokeAPIServiceInterface
	limit  int
	logger *zap.Logger

	mu    sync.Mutex
	stubs []models.CatalogStub // loaded once per session
}

// NewCatalogService creates a new CatalogService
// limit is the upper bound passed to the index endpoint; <= 0 uses DefaultCatalogLimit
func NewCatalogService(api PokeAPIServiceInterface, limit int, logger *zap.Logger) *CatalogService {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		api:    api,
		limit:  limit,
		logger: logger,
	}
}

// LoadCatalog fetches the full index in a single request and assigns
// sequence indexes by position. A truncated upstream list is accepted as is.
func (s *CatalogService) LoadCatalog(ctx context.Context) ([]models.CatalogStub, error) {
	indexURL := s.api.ResourceURL("pokemon", url.Values{"limit": {strconv.Itoa(s.limit)}})

	var list models.ResourceList
	if err := s.api.GetJSON(ctx, indexURL, &list); err != nil {
		return nil, fmt.Errorf("failed to load catalog index: %w", err)
	}

	stubs := make([]models.CatalogStub, len(list.Results))
	for i, r := range list.Results {
		stubs[i] = models.CatalogStub{
			SequenceIndex: i + 1,
			Name:          r.Name,
			Locator:       r.URL,
		}
	}

	if list.Count > len(stubs) && len(stubs) < s.limit {
		s.logger.Warn("⚠️  Catalog index truncated by upstream",
			zap.Int("count", list.Count),
			zap.Int("received", len(stubs)))
	}
	s.logger.Info("📦 Catalog loaded", zap.Int("stubs", len(stubs)))
	return stubs, nil
}

// Stubs returns the session's catalog, loading it on first use.
// Failed loads are not remembered, so the next call retries.
func (s *CatalogService) Stubs(ctx context.Context) ([]models.CatalogStub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stubs != nil {
		return s.stubs, nil
	}
	stubs, err := s.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.stubs = stubs
	return stubs, nil
}
