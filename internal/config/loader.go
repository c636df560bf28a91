package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/salesdash/internal/warehouse"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SALESDASH_CONFIG is set
//  3. env (prefix SALESDASH_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SALESDASH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SALESDASH_ADDR, SALESDASH_WAREHOUSE_DRIVER, ...
	// Map env keys like SALESDASH_LOG_LEVEL -> log_level (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SALESDASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "salesdash_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch warehouse.Driver(cfg.WarehouseDriver) {
	case warehouse.DriverSnowflake, warehouse.DriverMySQL:
	default:
		return nil, fmt.Errorf("%w: unknown warehouse_driver %q", ErrInvalidConfig, cfg.WarehouseDriver)
	}

	// Resolve container detection once, here, and never again.
	_, err := os.Stat(cfg.TokenPath)
	cfg.Containerized = err == nil

	return &cfg, nil
}
