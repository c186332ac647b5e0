package appconf

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all the configuration settings for the Application. Values come
// from defaults, an optional YAML file, BUSDIR_* environment variables and
// command-line flags, in that order of precedence (lowest first).
type Config struct {
	Port             int           `yaml:"port" validate:"gt=0,lte=65535"`
	Env              Environment   `yaml:"env"`
	DataSource       string        `yaml:"dataSource" validate:"required"`
	StrictValidation bool          `yaml:"strictValidation"`
	DataTimeout      time.Duration `yaml:"dataTimeout" validate:"gt=0"`
	RateLimit        int           `yaml:"rateLimit" validate:"gte=0"`
	AllowedOrigins   []string      `yaml:"allowedOrigins" validate:"dive,required"`
	SessionDBPath    string        `yaml:"sessionDBPath" validate:"required"`
	SessionIdleTTL   time.Duration `yaml:"sessionIdleTTL" validate:"gt=0"`
	SearchCacheSize  int           `yaml:"searchCacheSize" validate:"gte=0"`
	LogLevel         string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
	TileURL          string        `yaml:"tileURL" validate:"required"`
	TileAttribution  string        `yaml:"tileAttribution"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		Port:            4000,
		Env:             Development,
		DataSource:      "data/bus-data.json",
		DataTimeout:     15 * time.Second,
		RateLimit:       100,
		AllowedOrigins:  []string{"*"},
		SessionDBPath:   ":memory:",
		SessionIdleTTL:  24 * time.Hour,
		SearchCacheSize: 256,
		LogLevel:        "info",
		TileURL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttribution: "© OpenStreetMap contributors",
	}
}

// UnmarshalYAML lets the env key be written as a plain string in config files.
func (e *Environment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*e = EnvFlagToEnvironment(s)
	return nil
}

// LoadFile reads a YAML config file over cfg. Keys missing from the file keep
// their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with BUSDIR_* variables found through lookup
// (normally os.LookupEnv).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("BUSDIR_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v, ok := lookup("BUSDIR_ENV"); ok {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := lookup("BUSDIR_DATA_SOURCE"); ok {
		cfg.DataSource = v
	}
	if v, ok := lookup("BUSDIR_STRICT_VALIDATION"); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_STRICT_VALIDATION: %w", err)
		}
		cfg.StrictValidation = strict
	}
	if v, ok := lookup("BUSDIR_DATA_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_DATA_TIMEOUT: %w", err)
		}
		cfg.DataTimeout = d
	}
	if v, ok := lookup("BUSDIR_RATE_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}
	if v, ok := lookup("BUSDIR_ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = SplitList(v)
	}
	if v, ok := lookup("BUSDIR_SESSION_DB"); ok {
		cfg.SessionDBPath = v
	}
	if v, ok := lookup("BUSDIR_SESSION_IDLE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_SESSION_IDLE_TTL: %w", err)
		}
		cfg.SessionIdleTTL = d
	}
	if v, ok := lookup("BUSDIR_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("BUSDIR_SEARCH_CACHE_SIZE"); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUSDIR_SEARCH_CACHE_SIZE: %w", err)
		}
		cfg.SearchCacheSize = size
	}
	if v, ok := lookup("BUSDIR_TILE_URL"); ok {
		cfg.TileURL = v
	}
	if v, ok := lookup("BUSDIR_TILE_ATTRIBUTION"); ok {
		cfg.TileAttribution = v
	}
	return nil
}

// Validate checks the final configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
