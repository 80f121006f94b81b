// apps/go-server/internal/config/config.go
//
// Environment-driven configuration for the Bingo server.
// Values are read once at startup; main loads .env beforehand so local
// development picks up the same variables as production.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads from the environment.
type Config struct {
	// Port is the listen port for the HTTP API.
	Port string `env:"PORT" envDefault:"8000"`

	// DBPath locates the SQLite results database. A path containing
	// ":memory:" keeps everything in process for throwaway runs.
	DBPath string `env:"BINGO_DB_PATH" envDefault:"data/bingo.db"`

	// ClientOrigin is the single origin allowed by credentialed CORS.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// LogLevel matches zerolog level names (trace, debug, info, warn,
	// error). Unknown values leave the global level untouched.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// PersistenceURL points client wrappers at a results API. The
	// bundled client falls back to this when given no base URL.
	PersistenceURL string `env:"PERSISTENCE_URL" envDefault:"http://localhost:8000"`

	// DailySalt keys the daily round schedule. Rotate it to reroll
	// every future daily board.
	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}
