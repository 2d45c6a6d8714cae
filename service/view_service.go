package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pokedex-catalog/models"
)

// DefaultConcurrency bounds the parallel upstream requests of one pipeline step
const DefaultConcurrency = 8

// ViewService derives one page of resolved records from the catalog and a ViewState
type ViewService struct {
	resolver    DetailResolverInterface
	categories  CategoryIndexInterface
	collation   language.Tag
	concurrency int
	logger      *zap.Logger
}

// NewViewService creates a new ViewService
// collation is the language used for alphabetical ordering
func NewViewService(
	resolver DetailResolverInterface,
	categories CategoryIndexInterface,
	collation language.Tag,
	concurrency int,
	logger *zap.Logger,
) *ViewService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		resolver:    resolver,
		categories:  categories,
		collation:   collation,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ComputePage filters, sorts and windows the catalog, applies the category
// filter to the window, then resolves the remaining stubs concurrently.
// Any resolution failure fails the whole page.
func (s *ViewService) ComputePage(ctx context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error) {
	state, err := normalizeViewState(state)
	if err != nil {
		return models.Page{}, err
	}

	matched := filterStubs(stubs, state.SearchText)
	s.sortStubs(matched, state.SortMode)

	page := models.Page{
		PageNumber: state.PageNumber,
		TotalPages: totalPages(len(matched)),
		MatchCount: len(matched),
	}

	window := windowStubs(matched, state.PageNumber)

	// Category filtering runs on the window, so a page may come back short
	if state.CategoryFilter != "" && len(window) > 0 {
		members, err := s.categories.ResolveByCategory(ctx, state.CategoryFilter)
		if err != nil {
			return models.Page{}, err
		}
		window = slices.DeleteFunc(slices.Clone(window), func(st models.CatalogStub) bool {
			_, ok := members[st.Name]
			return !ok
		})
	}

	records, err := s.resolveAll(ctx, window)
	if err != nil {
		return models.Page{}, err
	}
	page.Records = records

	s.logger.Debug("📄 Page computed",
		zap.String("search", state.SearchText),
		zap.String("sort", string(state.SortMode)),
		zap.String("type", state.CategoryFilter),
		zap.Int("page", page.PageNumber),
		zap.Int("totalPages", page.TotalPages),
		zap.Int("records", len(records)))
	return page, nil
}

// resolveAll resolves every stub in parallel; records keep the input order
func (s *ViewService) resolveAll(ctx context.Context, stubs []models.CatalogStub) ([]models.DetailRecord, error) {
	records := make([]models.DetailRecord, len(stubs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, stub := range stubs {
		i, stub := i, stub
		g.Go(func() error {
			rec, err := s.resolver.ResolveDetail(gctx, stub)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve page: %w", err)
	}
	return records, nil
}

func normalizeViewState(state models.ViewState) (models.ViewState, error) {
	mode, err := models.ParseSortMode(string(state.SortMode))
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrInvalidViewState, err)
	}
	state.SortMode = mode
	if state.PageNumber < 1 {
		state.PageNumber = 1
	}
	state.CategoryFilter = strings.ToLower(strings.TrimSpace(state.CategoryFilter))
	return state, nil
}

// filterStubs keeps the stubs whose name contains search, ignoring case.
// The result is a new slice.
func filterStubs(stubs []models.CatalogStub, search string) []models.CatalogStub {
	needle := strings.ToLower(search)
	out := make([]models.CatalogStub, 0, len(stubs))
	for _, st := range stubs {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			out = append(out, st)
		}
	}
	return out
}

// sortStubs orders stubs in place
func (s *ViewService) sortStubs(stubs []models.CatalogStub, mode models.SortMode) {
	switch mode {
	case models.SortIndexAsc:
		slices.SortStableFunc(stubs, func(a, b models.CatalogStub) int {
			return cmp.Compare(a.SequenceIndex, b.SequenceIndex)
		})
	case models.SortIndexDesc:
		slices.SortStableFunc(stubs, func(a, b models.CatalogStub) int {
			return cmp.Compare(b.SequenceIndex, a.SequenceIndex)
		})
	case models.SortAlphaAsc, models.SortAlphaDesc:
		// Collators keep internal buffers and must not be shared between goroutines
		col := collate.New(s.collation)
		sign := 1
		if mode == models.SortAlphaDesc {
			sign = -1
		}
		slices.SortStableFunc(stubs, func(a, b models.CatalogStub) int {
			return sign * col.CompareString(a.Name, b.Name)
		})
	}
}

func totalPages(matched int) int {
	return (matched + models.PageSize - 1) / models.PageSize
}

// windowStubs returns the slice of stubs visible on the given 1-based page
func windowStubs(stubs []models.CatalogStub, pageNumber int) []models.CatalogStub {
	// Compare page counts first so huge page numbers cannot overflow the offset
	if pageNumber < 1 || pageNumber > totalPages(len(stubs)) {
		return nil
	}
	start := (pageNumber - 1) * models.PageSize
	end := min(start+models.PageSize, len(stubs))
	return stubs[start:end]
}
