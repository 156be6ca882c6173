package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
	Puzzle    PuzzleConfig    `yaml:"puzzle"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig contains history database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GeneratorConfig contains candidate generation settings.
type GeneratorConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
	Model  string `yaml:"model"`
}

// PuzzleConfig tunes the selection pipeline.
type PuzzleConfig struct {
	RoundsPerDay   int      `yaml:"rounds_per_day"`
	BatchSize      int      `yaml:"batch_size"`
	MaxAttempts    int      `yaml:"max_attempts"`
	MaxHistoryDays int      `yaml:"max_history_days"`
	RecentSample   int      `yaml:"recent_sample"`
	BackoffBase    Duration `yaml:"backoff_base"`
	BackoffCap     Duration `yaml:"backoff_cap"`
}

// AuthConfig contains authentication settings for admin endpoints.
type AuthConfig struct {
	APIKey string `yaml:"-"` // env-only, never in YAML
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// DevMode reports whether the service runs without an OpenAI key,
// serving from the static candidate table.
func DevMode() bool {
	return os.Getenv("BETWEEN_DEV_MODE") == "true"
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("BETWEEN_CONFIG_PATH", "config/between.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			ReadTimeout: Duration(30 * time.Second),
			// Generation can span several model calls plus backoff.
			WriteTimeout:    Duration(2 * time.Minute),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Path: "data/between.db",
		},
		Generator: GeneratorConfig{
			Model: "gpt-4o-mini",
		},
		Puzzle: PuzzleConfig{
			RoundsPerDay:   5,
			BatchSize:      30,
			MaxAttempts:    5,
			MaxHistoryDays: 90,
			RecentSample:   50,
			BackoffBase:    Duration(1 * time.Second),
			BackoffCap:     Duration(5 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("BETWEEN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BETWEEN_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("BETWEEN_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("BETWEEN_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}

	// Database
	if v := os.Getenv("BETWEEN_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Generator (OPENAI_API_KEY is industry convention)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Generator.APIKey = v
	}
	if v := os.Getenv("BETWEEN_GENERATOR_MODEL"); v != "" {
		cfg.Generator.Model = v
	}

	// Auth
	if v := os.Getenv("BETWEEN_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}

	// Puzzle pipeline
	if v := os.Getenv("BETWEEN_ROUNDS_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Puzzle.RoundsPerDay = n
		}
	}
	if v := os.Getenv("BETWEEN_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Puzzle.BatchSize = n
		}
	}
	if v := os.Getenv("BETWEEN_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Puzzle.MaxAttempts = n
		}
	}
	if v := os.Getenv("BETWEEN_MAX_HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Puzzle.MaxHistoryDays = n
		}
	}
	if v := os.Getenv("BETWEEN_RECENT_SAMPLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Puzzle.RecentSample = n
		}
	}
	if v := os.Getenv("BETWEEN_BACKOFF_BASE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Puzzle.BackoffBase = Duration(d)
		}
	}
	if v := os.Getenv("BETWEEN_BACKOFF_CAP"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Puzzle.BackoffCap = Duration(d)
		}
	}

	// Log
	if v := os.Getenv("BETWEEN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BETWEEN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks that required configuration values are set.
// In dev mode (BETWEEN_DEV_MODE=true), API key validation is skipped.
func (c *Config) validate() error {
	if c.Puzzle.RoundsPerDay <= 0 {
		return errors.New("puzzle.rounds_per_day must be positive")
	}
	if c.Puzzle.BatchSize < c.Puzzle.RoundsPerDay {
		return errors.New("puzzle.batch_size must be at least puzzle.rounds_per_day")
	}

	// Dev mode serves static candidates and needs no keys
	if DevMode() {
		return nil
	}

	if c.Generator.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.Auth.APIKey == "" {
		return errors.New("BETWEEN_API_KEY is required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
