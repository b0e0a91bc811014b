package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api"`
		Token   string        `envconfig:"API_TOKEN"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Collections struct {
		PageSize    int           `envconfig:"PAGE_SIZE" default:"10"`
		SearchLimit int           `envconfig:"SEARCH_LIMIT" default:"1000"`
		Debounce    time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	FakeAPI struct {
		Port           int      `envconfig:"FAKEAPI_PORT" default:"8080"`
		AllowedOrigins []string `envconfig:"FAKEAPI_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
		Seed           bool     `envconfig:"FAKEAPI_SEED" default:"true"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}

	if c.Collections.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Collections.PageSize)
	}

	if c.Collections.SearchLimit < c.Collections.PageSize {
		return fmt.Errorf("SEARCH_LIMIT (%d) must not be below PAGE_SIZE (%d)", c.Collections.SearchLimit, c.Collections.PageSize)
	}

	return nil
}

// ListenAddr is the address the fake API binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.FakeAPI.Port)
}
