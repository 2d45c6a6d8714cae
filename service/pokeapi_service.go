package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "pokedex-catalog/1.0"

// PokeAPIService performs the raw HTTP calls against the PokéAPI
type PokeAPIService struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewPokeAPIService creates a new PokeAPIService
// baseURL is the API root, e.g. "https://pokeapi.co/api/v2"
func NewPokeAPIService(baseURL string, timeout time.Duration, logger *zap.Logger) *PokeAPIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PokeAPIService{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Ensure PokeAPIService implements PokeAPIServiceInterface
var _ PokeAPIServiceInterface = (*PokeAPIService)(nil)

// Close releases idle upstream connections
func (s *PokeAPIService) Close() {
	s.client.CloseIdleConnections()
}

// ResourceURL builds an absolute URL for a path under the API root
func (s *PokeAPIService) ResourceURL(path string, query url.Values) string {
	u := s.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// GetJSON fetches a URL and decodes the JSON body into out
func (s *PokeAPIService) GetJSON(ctx context.Context, rawURL string, out any) error {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &NetworkError{URL: rawURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// GetBytes fetches a URL and returns the raw body
func (s *PokeAPIService) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return data, nil
}

func (s *PokeAPIService) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("❌ Upstream request failed", zap.String("url", rawURL), zap.Error(err))
		return nil, &NetworkError{URL: rawURL, Err: err}
	}

	s.logger.Debug("🌐 Upstream request",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
