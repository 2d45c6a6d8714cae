package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pokedex-catalog/models"
	"pokedex-catalog/service"
	"pokedex-catalog/utils"
)

// PokemonController handles HTTP requests for the catalog and detail views
type PokemonController struct {
	catalog    service.CatalogProviderInterface
	views      service.PageComputerInterface
	details    *service.DetailService
	evolutions *service.EvolutionService
	types      *service.TypeService
	sprites    *service.SpriteService
	logger     *zap.Logger
}

// NewPokemonController creates a new PokemonController
func NewPokemonController(
	catalog service.CatalogProviderInterface,
	views service.PageComputerInterface,
	details *service.DetailService,
	evolutions *service.EvolutionService,
	types *service.TypeService,
	sprites *service.SpriteService,
	logger *zap.Logger,
) *PokemonController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PokemonController{
		catalog:    catalog,
		views:      views,
		details:    details,
		evolutions: evolutions,
		types:      types,
		sprites:    sprites,
		logger:     logger,
	}
}

// viewStateFromQuery reads ?search=&sort=&type=&page=
func viewStateFromQuery(r *http.Request) (models.ViewState, error) {
	q := r.URL.Query()
	state := models.DefaultViewState()
	state.SearchText = q.Get("search")
	state.CategoryFilter = strings.TrimSpace(q.Get("type"))

	mode, err := models.ParseSortMode(q.Get("sort"))
	if err != nil {
		return state, fmt.Errorf("%w: %v", service.ErrInvalidViewState, err)
	}
	state.SortMode = mode

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return state, fmt.Errorf("%w: page must be a positive integer", service.ErrInvalidViewState)
		}
		state.PageNumber = page
	}
	return state, nil
}

// ListPokemon handles GET /pokemon?search=&sort=&type=&page=
func (c *PokemonController) ListPokemon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := viewStateFromQuery(r)
	if err != nil {
		writeError(w, c.logger, "ListPokemon", err)
		return
	}

	ctx := r.Context()
	stubs, err := c.catalog.Stubs(ctx)
	if err != nil {
		writeError(w, c.logger, "ListPokemon", err)
		return
	}

	page, err := c.views.ComputePage(ctx, stubs, state)
	if err != nil {
		writeError(w, c.logger, "ListPokemon", err)
		return
	}

	writeJSON(w, c.logger, http.StatusOK, page)
}

// GetPokemon handles GET /pokemon/{name}?lang=
func (c *PokemonController) GetPokemon(w http.ResponseWriter, r *http.Request, name string) {
	detail, err := c.details.GetPokemonDetail(r.Context(), name, r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, c.logger, "GetPokemon", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, detail)
}

// GetEvolutions handles GET /pokemon/{name}/evolutions
func (c *PokemonController) GetEvolutions(w http.ResponseWriter, r *http.Request, name string) {
	line, err := c.evolutions.ResolveEvolutionLine(r.Context(), name)
	if err != nil {
		writeError(w, c.logger, "GetEvolutions", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, line)
}

// GetSprite handles GET /pokemon/{name}/sprite?size=thumb|medium|large
func (c *PokemonController) GetSprite(w http.ResponseWriter, r *http.Request, name string) {
	data, err := c.sprites.GetSprite(r.Context(), name, r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, c.logger, "GetSprite", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		c.logger.Error("❌ GetSprite: Error writing response", zap.Error(err))
	}
}

// GetTypeMembers handles GET /types/{name}
func (c *PokemonController) GetTypeMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/types/"), "/")
	if name == "" {
		http.Error(w, "type name is required", http.StatusBadRequest)
		return
	}

	members, err := c.types.Members(r.Context(), name)
	if err != nil {
		writeError(w, c.logger, "GetTypeMembers", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, members)
}

// GetWeaknesses handles GET /weaknesses?types=fire,flying
func (c *PokemonController) GetWeaknesses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories := utils.SplitList(r.URL.Query().Get("types"))
	if len(categories) == 0 {
		http.Error(w, "types parameter is required", http.StatusBadRequest)
		return
	}

	weak, err := c.types.ResolveWeaknesses(r.Context(), categories)
	if err != nil {
		writeError(w, c.logger, "GetWeaknesses", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, weak)
}
