package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"pokedex-catalog/app/controller"
	"pokedex-catalog/app/router"
	"pokedex-catalog/config"
	"pokedex-catalog/service"
)

// Services bundles the catalog services shared by the HTTP server and the CLI
type Services struct {
	API        *service.PokeAPIService
	Catalog    *service.CatalogService
	Types      *service.TypeService
	Evolutions *service.EvolutionService
	Details    *service.DetailService
	Views      *service.ViewService
	Sessions   *service.SessionService
	Sprites    *service.SpriteService
}

// NewServices wires every service from the configuration
func NewServices(cfg config.Config, logger *zap.Logger) (*Services, error) {
	collation, err := cfg.CollationTag()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	api := service.NewPokeAPIService(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, logger.Named("pokeapi"))
	catalog := service.NewCatalogService(api, cfg.PokeAPI.CatalogLimit, logger.Named("catalog"))
	types := service.NewTypeService(api, cfg.PokeAPI.MaxConcurrency, logger.Named("types"))
	evolutions := service.NewEvolutionService(api, logger.Named("evolutions"))
	details := service.NewDetailService(api, types, evolutions, cfg.Language, logger.Named("details"))
	views := service.NewViewService(details, types, collation, cfg.PokeAPI.MaxConcurrency, logger.Named("views"))

	return &Services{
		API:        api,
		Catalog:    catalog,
		Types:      types,
		Evolutions: evolutions,
		Details:    details,
		Views:      views,
		Sessions:   service.NewSessionService(catalog, views, cfg.SessionTTL, logger.Named("sessions")),
		Sprites:    service.NewSpriteService(api, logger.Named("sprites")),
	}, nil
}

// NewHandler builds the HTTP handler for the JSON API
func NewHandler(svc *Services, logger *zap.Logger) http.Handler {
	controllers := &router.Controllers{
		Pokemon: controller.NewPokemonController(
			svc.Catalog, svc.Views, svc.Details, svc.Evolutions, svc.Types, svc.Sprites, logger.Named("http")),
		Session: controller.NewSessionController(svc.Sessions, logger.Named("http")),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux
}

// Initialize initializes the application and returns its HTTP handler
func Initialize(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	svc, err := NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewHandler(svc, logger), nil
}
