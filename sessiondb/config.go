package sessiondb

import (
	"log/slog"

	"github.com/Gift-726/Bus-Routing/internal/appconf"
)

// Config holds configuration options for the Client
type Config struct {
	// Database configuration
	DBPath  string              // Path to SQLite database file, or ":memory:"
	Env     appconf.Environment // Test requires an in-memory database
	Logger  *slog.Logger
	verbose bool
}

func NewConfig(dbPath string, env appconf.Environment, logger *slog.Logger, verbose bool) Config {
	return Config{
		DBPath:  dbPath,
		Env:     env,
		Logger:  logger,
		verbose: verbose,
	}
}

func (c Config) inMemory() bool {
	return c.DBPath == ":memory:"
}
