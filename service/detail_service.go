package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokedex-catalog/models"
	"pokedex-catalog/utils"
)

// DefaultLanguage is the language used for genus and flavor text
const DefaultLanguage = "es"

// maxVersions caps the game versions listed in a species descriptor
const maxVersions = 2

// DetailService resolves stubs into records and assembles detail views
type DetailService struct {
	api        PokeAPIServiceInterface
	types      *TypeService
	evolutions *EvolutionService
	language   string
	logger     *zap.Logger
}

// NewDetailService creates a new DetailService
func NewDetailService(
	api PokeAPIServiceInterface,
	types *TypeService,
	evolutions *EvolutionService,
	language string,
	logger *zap.Logger,
) *DetailService {
	if language == "" {
		language = DefaultLanguage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailService{
		api:        api,
		types:      types,
		evolutions: evolutions,
		language:   language,
		logger:     logger,
	}
}

// ResolveDetail fetches the record behind a stub's locator
func (s *DetailService) ResolveDetail(ctx context.Context, stub models.CatalogStub) (models.DetailRecord, error) {
	var p models.PokemonResponse
	if err := s.api.GetJSON(ctx, stub.Locator, &p); err != nil {
		return models.DetailRecord{}, fmt.Errorf("failed to resolve %q: %w", stub.Name, err)
	}

	return models.DetailRecord{
		SequenceIndex: stub.SequenceIndex,
		Name:          stub.Name,
		Categories:    categoriesOf(&p),
		ImageURL:      deref(p.Sprites.FrontDefault),
		Weight:        p.Weight,
	}, nil
}

// GetPokemonDetail assembles the full detail view of one entity.
// lang overrides the service language when not empty.
func (s *DetailService) GetPokemonDetail(ctx context.Context, name, lang string) (*models.PokemonDetail, error) {
	if lang == "" {
		lang = s.language
	}

	p, err := fetchPokemon(ctx, s.api, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}
	if p.Species == nil || p.Species.URL == "" {
		return nil, &MalformedChainError{URL: s.api.ResourceURL("pokemon/"+p.Name, nil), Reason: "pokemon has no species reference"}
	}

	species, err := fetchSpecies(ctx, s.api, p.Species.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load species of %q: %w", name, err)
	}

	detail := &models.PokemonDetail{
		ID:         p.ID,
		Name:       p.Name,
		Height:     p.Height,
		Weight:     p.Weight,
		Categories: categoriesOf(p),
		ImageURL:   deref(p.Sprites.Other.OfficialArtwork.FrontDefault),
		Abilities:  make([]models.Ability, 0, len(p.Abilities)),
		Stats:      make([]models.Stat, 0, len(p.Stats)),
		Species:    describeSpecies(species, p, lang),
	}
	if detail.ImageURL == "" {
		detail.ImageURL = deref(p.Sprites.FrontDefault)
	}
	for _, a := range p.Abilities {
		detail.Abilities = append(detail.Abilities, models.Ability{Name: a.Ability.Name, Hidden: a.IsHidden})
	}
	for _, st := range p.Stats {
		detail.Stats = append(detail.Stats, models.Stat{Name: st.Stat.Name, BaseStat: st.BaseStat})
	}

	// Weaknesses and evolutions are independent of each other
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weak, err := s.types.ResolveWeaknesses(gctx, detail.Categories)
		if err != nil {
			return err
		}
		detail.Weaknesses = weak
		return nil
	})
	g.Go(func() error {
		line, err := s.evolutions.ResolveSpeciesLine(gctx, species, p.Species.URL)
		if err != nil {
			return err
		}
		detail.Evolutions = line
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble detail of %q: %w", name, err)
	}

	s.logger.Info("🔎 Detail assembled",
		zap.String("name", detail.Name),
		zap.Int("weaknesses", len(detail.Weaknesses)),
		zap.Int("evolutions", len(detail.Evolutions)))
	return detail, nil
}

// describeSpecies picks the localized texts of a species.
// Genus falls back to the first entry, flavor text to empty.
func describeSpecies(sp *models.SpeciesResponse, p *models.PokemonResponse, lang string) models.SpeciesDescriptor {
	desc := models.SpeciesDescriptor{
		GenderRate: sp.GenderRate,
		Gender:     utils.GenderFromRate(sp.GenderRate),
		Versions:   make([]string, 0, maxVersions),
	}

	for _, g := range sp.Genera {
		if g.Language.Name == lang {
			desc.Genus = g.Genus
			break
		}
	}
	if desc.Genus == "" && len(sp.Genera) > 0 {
		desc.Genus = sp.Genera[0].Genus
	}

	for _, e := range sp.FlavorTextEntries {
		if e.Language.Name == lang {
			desc.FlavorText = utils.CleanFlavorText(e.FlavorText)
			break
		}
	}

	for _, gi := range p.GameIndices[:min(len(p.GameIndices), maxVersions)] {
		desc.Versions = append(desc.Versions, gi.Version.Name)
	}
	return desc
}
