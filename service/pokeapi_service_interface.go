package service

import (
	"context"
	"net/url"
)

// PokeAPIServiceInterface defines the contract for upstream API access
type PokeAPIServiceInterface interface {
	ResourceURL(path string, query url.Values) string
	GetJSON(ctx context.Context, rawURL string, out any) error
	GetBytes(ctx context.Context, rawURL string) ([]byte, error)
}
