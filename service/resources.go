package service

import (
	"context"
	"net/url"
	"strings"

	"pokedex-catalog/models"
)

// fetchPokemon loads /pokemon/{name}; an unknown name becomes a NotFoundError
func fetchPokemon(ctx context.Context, api PokeAPIServiceInterface, name string) (*models.PokemonResponse, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, &NotFoundError{Kind: "pokemon", Name: name}
	}

	var p models.PokemonResponse
	if err := api.GetJSON(ctx, api.ResourceURL("pokemon/"+url.PathEscape(name), nil), &p); err != nil {
		return nil, asNotFound(err, "pokemon", name)
	}
	return &p, nil
}

func fetchSpecies(ctx context.Context, api PokeAPIServiceInterface, locator string) (*models.SpeciesResponse, error) {
	var sp models.SpeciesResponse
	if err := api.GetJSON(ctx, locator, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func categoriesOf(p *models.PokemonResponse) []string {
	categories := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		categories = append(categories, t.Type.Name)
	}
	return categories
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
