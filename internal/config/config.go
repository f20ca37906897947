package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"lexgen/internal/regexlib"
)

// EnvLogLevel overrides LogLevel from the file when set.
const EnvLogLevel = "LEXGEN_LOG_LEVEL"

// Config configures the lexgen command.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level"`

	// LogJSON switches log output from text to JSON lines.
	LogJSON bool `json:"log_json"`

	// CacheSize bounds the number of compiled patterns kept by the REPL.
	CacheSize int `json:"cache_size"`

	// Ignored lists kinds that are never emitted, on top of the ones a rule
	// file marks with !.
	Ignored []string `json:"ignored"`

	// Priorities ranks kinds for single-pattern compiles.
	Priorities []string `json:"priorities"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:   "info",
		CacheSize:  128,
		Ignored:    append([]string(nil), regexlib.DefaultIgnored...),
		Priorities: append([]string(nil), regexlib.DefaultPriorities...),
	}
}

// Load reads a YAML or JSON file over the defaults. An empty path yields the
// defaults. The environment override is applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("config: cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
