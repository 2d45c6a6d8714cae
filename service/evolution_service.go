package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pokedex-catalog/models"
)

// EvolutionService flattens upstream evolution chains into a single line
type EvolutionService struct {
	api    PokeAPIServiceInterface
	logger *zap.Logger
}

// NewEvolutionService creates a new EvolutionService
func NewEvolutionService(api PokeAPIServiceInterface, logger *zap.Logger) *EvolutionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvolutionService{
		api:    api,
		logger: logger,
	}
}

// ResolveEvolutionLine walks pokemon -> species -> evolution chain and returns
// the first-branch path from the base form. Sibling branches are not followed.
func (s *EvolutionService) ResolveEvolutionLine(ctx context.Context, name string) ([]models.EvolutionStub, error) {
	p, err := fetchPokemon(ctx, s.api, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve evolution line of %q: %w", name, err)
	}
	if p.Species == nil || p.Species.URL == "" {
		return nil, &MalformedChainError{URL: s.api.ResourceURL("pokemon/"+name, nil), Reason: "pokemon has no species reference"}
	}

	species, err := fetchSpecies(ctx, s.api, p.Species.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve evolution line of %q: %w", name, err)
	}
	return s.ResolveSpeciesLine(ctx, species, p.Species.URL)
}

// ResolveSpeciesLine resolves the evolution line of an already fetched species
func (s *EvolutionService) ResolveSpeciesLine(ctx context.Context, species *models.SpeciesResponse, speciesURL string) ([]models.EvolutionStub, error) {
	if species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return nil, &MalformedChainError{URL: speciesURL, Reason: "species has no evolution chain reference"}
	}
	return s.ResolveChain(ctx, species.EvolutionChain.URL)
}

// ResolveChain fetches one evolution chain and flattens it
func (s *EvolutionService) ResolveChain(ctx context.Context, chainURL string) ([]models.EvolutionStub, error) {
	var chain models.EvolutionChainResponse
	if err := s.api.GetJSON(ctx, chainURL, &chain); err != nil {
		return nil, fmt.Errorf("failed to fetch evolution chain: %w", err)
	}

	line, err := flattenChain(chain.Chain)
	if err != nil {
		var mce *MalformedChainError
		if errors.As(err, &mce) {
			mce.URL = chainURL
		}
		return nil, err
	}

	s.logger.Debug("🧬 Evolution line resolved", zap.String("chain", chainURL), zap.Int("stages", len(line)))
	return line, nil
}

// flattenChain follows evolves_to[0] from the root until a final stage
func flattenChain(root *models.ChainLinkNode) ([]models.EvolutionStub, error) {
	if root == nil {
		return nil, &MalformedChainError{Reason: "chain has no root node"}
	}

	var line []models.EvolutionStub
	for node := root; ; node = &node.EvolvesTo[0] {
		if node.Species == nil || node.Species.Name == "" {
			return nil, &MalformedChainError{Reason: fmt.Sprintf("stage %d has no species", len(line)+1)}
		}
		if node.EvolvesTo == nil {
			return nil, &MalformedChainError{Reason: fmt.Sprintf("stage %d (%s) has no evolves_to list", len(line)+1, node.Species.Name)}
		}
		line = append(line, models.EvolutionStub{
			Name:    node.Species.Name,
			Locator: node.Species.URL,
		})
		if len(node.EvolvesTo) == 0 {
			return line, nil
		}
	}
}
