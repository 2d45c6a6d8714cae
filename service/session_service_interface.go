package service

import (
	"context"

	"pokedex-catalog/models"
)

// CatalogProviderInterface supplies the session's catalog stubs
type CatalogProviderInterface interface {
	Stubs(ctx context.Context) ([]models.CatalogStub, error)
}

// PageComputerInterface derives a page from the catalog and a view state
type PageComputerInterface interface {
	ComputePage(ctx context.Context, stubs []models.CatalogStub, state models.ViewState) (models.Page, error)
}

var (
	_ CatalogProviderInterface = (*CatalogService)(nil)
	_ PageComputerInterface    = (*ViewService)(nil)
)
