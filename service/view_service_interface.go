package service

import (
	"context"

	"pokedex-catalog/models"
)

// DetailResolverInterface resolves one stub into its display record
type DetailResolverInterface interface {
	ResolveDetail(ctx context.Context, stub models.CatalogStub) (models.DetailRecord, error)
}

// CategoryIndexInterface returns the member names of a category
type CategoryIndexInterface interface {
	ResolveByCategory(ctx context.Context, label string) (map[string]struct{}, error)
}

// Ensure the concrete services satisfy the pipeline's collaborators
var (
	_ DetailResolverInterface = (*DetailService)(nil)
	_ CategoryIndexInterface  = (*TypeService)(nil)
)
