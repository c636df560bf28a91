// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"strconv"
	"strings"

	"github.com/okian/salesdash/internal/provision"
	"github.com/okian/salesdash/internal/warehouse"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// Environment is the free-form deployment label reported by
	// GET /api/health, e.g. "production" or "development".
	Environment string `koanf:"environment"`

	// WarehouseDriver selects the SQL driver: "snowflake" (default) or
	// "mysql" as an explicit local-development escape hatch.
	WarehouseDriver string `koanf:"warehouse_driver"`

	// TokenPath is the well-known session token location used to detect the
	// managed container platform and to read the token in token mode.
	TokenPath string `koanf:"token_path"`

	// CredentialFile is the optional per-user credential file consulted in
	// credential mode. Explicit environment values override it.
	CredentialFile string `koanf:"credential_file"`

	// Containerized is resolved exactly once at load time from TokenPath
	// existence and passed down from there; nothing re-probes the
	// filesystem per request.
	Containerized bool `koanf:"-"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":3000",
		Environment:     "development",
		WarehouseDriver: string(warehouse.DriverSnowflake),
		TokenPath:       provision.DefaultTokenPath,
	}
}

// Port extracts the numeric listen port from Addr, or 0 when Addr carries
// no port.
func (c *Config) Port() int {
	idx := strings.LastIndex(c.Addr, ":")
	if idx < 0 {
		return 0
	}
	port, err := strconv.Atoi(c.Addr[idx+1:])
	if err != nil {
		return 0
	}
	return port
}
