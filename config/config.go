package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the catalog server and CLI.
type Config struct {
	// Network
	Port string `yaml:"port"`

	// Upstream
	PokeAPI PokeAPIConfig `yaml:"pokeapi"`

	// Localization
	Language  string `yaml:"language"`  // language of genus and flavor text
	Collation string `yaml:"collation"` // BCP 47 tag used for alphabetical sorting

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	SessionTTL time.Duration `yaml:"session_ttl"`
}

// PokeAPIConfig holds upstream API parameters.
type PokeAPIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	CatalogLimit   int           `yaml:"catalog_limit"`
	MaxConcurrency int           `yaml:"max_concurrency"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		Port: "8080",
		PokeAPI: PokeAPIConfig{
			BaseURL:        "https://pokeapi.co/api/v2",
			Timeout:        15 * time.Second,
			CatalogLimit:   1025,
			MaxConcurrency: 8,
		},
		Language:   "es",
		Collation:  "en",
		LogLevel:   "info",
		SessionTTL: 30 * time.Minute,
	}
}

// Load reads config from a YAML file and applies environment overrides.
// If path is empty or the file doesn't exist, defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		// PORT from hosting platforms sometimes carries a leading colon
		cfg.Port = strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("POKEAPI_BASE_URL"); v != "" {
		cfg.PokeAPI.BaseURL = v
	}
	if v := os.Getenv("POKEAPI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing POKEAPI_TIMEOUT: %w", err)
		}
		cfg.PokeAPI.Timeout = d
	}
	if v := os.Getenv("POKEDEX_CATALOG_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing POKEDEX_CATALOG_LIMIT: %w", err)
		}
		cfg.PokeAPI.CatalogLimit = n
	}
	if v := os.Getenv("POKEDEX_MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing POKEDEX_MAX_CONCURRENCY: %w", err)
		}
		cfg.PokeAPI.MaxConcurrency = n
	}
	if v := os.Getenv("POKEDEX_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("POKEDEX_COLLATION"); v != "" {
		cfg.Collation = v
	}
	if v := os.Getenv("POKEDEX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("pokeapi.base_url must not be empty")
	}
	if c.PokeAPI.CatalogLimit <= 0 {
		return fmt.Errorf("pokeapi.catalog_limit must be positive, got %d", c.PokeAPI.CatalogLimit)
	}
	if c.PokeAPI.MaxConcurrency <= 0 {
		return fmt.Errorf("pokeapi.max_concurrency must be positive, got %d", c.PokeAPI.MaxConcurrency)
	}
	if _, err := c.CollationTag(); err != nil {
		return err
	}
	return nil
}

// CollationTag parses the collation language.
func (c Config) CollationTag() (language.Tag, error) {
	tag, err := language.Parse(c.Collation)
	if err != nil {
		return language.Und, fmt.Errorf("parsing collation %q: %w", c.Collation, err)
	}
	return tag, nil
}
