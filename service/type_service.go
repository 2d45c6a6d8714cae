package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokedex-catalog/models"
)

// TypeService answers category (type) membership and damage-relation questions
type TypeService struct {
	api         PokeAPIServiceInterface
	concurrency int
	logger      *zap.Logger
}

// NewTypeService creates a new TypeService
func NewTypeService(api PokeAPIServiceInterface, concurrency int, logger *zap.Logger) *TypeService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeService{
		api:         api,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (s *TypeService) fetchType(ctx context.Context, label string) (*models.TypeResponse, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil, &NotFoundError{Kind: "type", Name: label}
	}

	var typ models.TypeResponse
	if err := s.api.GetJSON(ctx, s.api.ResourceURL("type/"+url.PathEscape(label), nil), &typ); err != nil {
		return nil, asNotFound(err, "type", label)
	}
	return &typ, nil
}

// ResolveByCategory returns the names of every entity in the given category
func (s *TypeService) ResolveByCategory(ctx context.Context, label string) (map[string]struct{}, error) {
	typ, err := s.fetchType(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve type %q: %w", label, err)
	}

	members := make(map[string]struct{}, len(typ.Pokemon))
	for _, p := range typ.Pokemon {
		members[p.Pokemon.Name] = struct{}{}
	}
	s.logger.Debug("🏷️  Type resolved", zap.String("type", typ.Name), zap.Int("members", len(members)))
	return members, nil
}

// Members returns the category's member names in alphabetical order
func (s *TypeService) Members(ctx context.Context, label string) ([]string, error) {
	set, err := s.ResolveByCategory(ctx, label)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// ResolveWeaknesses unions the "double damage from" list of every category.
// The result is deduplicated and sorted.
func (s *TypeService) ResolveWeaknesses(ctx context.Context, categories []string) ([]string, error) {
	if len(categories) == 0 {
		return []string{}, nil
	}

	var (
		mu   sync.Mutex
		weak = make(map[string]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			typ, err := s.fetchType(gctx, category)
			if err != nil {
				return fmt.Errorf("failed to resolve weaknesses of %q: %w", category, err)
			}
			mu.Lock()
			for _, r := range typ.DamageRelations.DoubleDamageFrom {
				weak[r.Name] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]string, 0, len(weak))
	for name := range weak {
		result = append(result, name)
	}
	slices.Sort(result)
	return result, nil
}
