package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Helper to clear all config-related env vars
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"BETWEEN_PORT",
		"BETWEEN_READ_TIMEOUT",
		"BETWEEN_WRITE_TIMEOUT",
		"BETWEEN_SHUTDOWN_TIMEOUT",
		"BETWEEN_DB_PATH",
		"OPENAI_API_KEY",
		"BETWEEN_GENERATOR_MODEL",
		"BETWEEN_API_KEY",
		"BETWEEN_ROUNDS_PER_DAY",
		"BETWEEN_BATCH_SIZE",
		"BETWEEN_MAX_ATTEMPTS",
		"BETWEEN_MAX_HISTORY_DAYS",
		"BETWEEN_RECENT_SAMPLE",
		"BETWEEN_BACKOFF_BASE",
		"BETWEEN_BACKOFF_CAP",
		"BETWEEN_LOG_LEVEL",
		"BETWEEN_LOG_FORMAT",
		"BETWEEN_CONFIG_PATH",
		"BETWEEN_DEV_MODE",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func setDevModeEnv(t *testing.T) {
	t.Helper()
	os.Setenv("BETWEEN_DEV_MODE", "true")
}

func setProdEnv(t *testing.T) {
	t.Helper()
	os.Setenv("OPENAI_API_KEY", "sk-test-openai-key")
	os.Setenv("BETWEEN_API_KEY", "test-api-key")
}

// dur converts Duration to time.Duration for comparison
func dur(d Duration) time.Duration {
	return time.Duration(d)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	setDevModeEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if dur(cfg.Server.WriteTimeout) != 2*time.Minute {
		t.Errorf("Server.WriteTimeout = %v, want 2m", dur(cfg.Server.WriteTimeout))
	}
	if cfg.Database.Path != "data/between.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("Generator.Model = %q", cfg.Generator.Model)
	}
	if cfg.Puzzle.RoundsPerDay != 5 {
		t.Errorf("Puzzle.RoundsPerDay = %d, want 5", cfg.Puzzle.RoundsPerDay)
	}
	if cfg.Puzzle.BatchSize != 30 {
		t.Errorf("Puzzle.BatchSize = %d, want 30", cfg.Puzzle.BatchSize)
	}
	if cfg.Puzzle.MaxAttempts != 5 {
		t.Errorf("Puzzle.MaxAttempts = %d, want 5", cfg.Puzzle.MaxAttempts)
	}
	if cfg.Puzzle.MaxHistoryDays != 90 {
		t.Errorf("Puzzle.MaxHistoryDays = %d, want 90", cfg.Puzzle.MaxHistoryDays)
	}
	if cfg.Puzzle.RecentSample != 50 {
		t.Errorf("Puzzle.RecentSample = %d, want 50", cfg.Puzzle.RecentSample)
	}
	if dur(cfg.Puzzle.BackoffBase) != time.Second {
		t.Errorf("Puzzle.BackoffBase = %v, want 1s", dur(cfg.Puzzle.BackoffBase))
	}
	if dur(cfg.Puzzle.BackoffCap) != 5*time.Second {
		t.Errorf("Puzzle.BackoffCap = %v, want 5s", dur(cfg.Puzzle.BackoffCap))
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	setDevModeEnv(t)
	os.Setenv("BETWEEN_PORT", "9090")
	os.Setenv("BETWEEN_DB_PATH", "/tmp/puzzles.db")
	os.Setenv("BETWEEN_GENERATOR_MODEL", "gpt-4o")
	os.Setenv("BETWEEN_MAX_ATTEMPTS", "3")
	os.Setenv("BETWEEN_BACKOFF_BASE", "500ms")
	os.Setenv("BETWEEN_LOG_LEVEL", "debug")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/puzzles.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Generator.Model != "gpt-4o" {
		t.Errorf("Generator.Model = %q", cfg.Generator.Model)
	}
	if cfg.Puzzle.MaxAttempts != 3 {
		t.Errorf("Puzzle.MaxAttempts = %d, want 3", cfg.Puzzle.MaxAttempts)
	}
	if dur(cfg.Puzzle.BackoffBase) != 500*time.Millisecond {
		t.Errorf("Puzzle.BackoffBase = %v, want 500ms", dur(cfg.Puzzle.BackoffBase))
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	clearEnv(t)
	setDevModeEnv(t)
	defer clearEnv(t)

	path := filepath.Join(t.TempDir(), "between.yaml")
	yaml := `
server:
  port: 7070
  write_timeout: 90s
puzzle:
  rounds_per_day: 4
  batch_size: 20
  backoff_cap: 10s
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if dur(cfg.Server.WriteTimeout) != 90*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 90s", dur(cfg.Server.WriteTimeout))
	}
	if cfg.Puzzle.RoundsPerDay != 4 {
		t.Errorf("Puzzle.RoundsPerDay = %d, want 4", cfg.Puzzle.RoundsPerDay)
	}
	if dur(cfg.Puzzle.BackoffCap) != 10*time.Second {
		t.Errorf("Puzzle.BackoffCap = %v, want 10s", dur(cfg.Puzzle.BackoffCap))
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	// Untouched sections keep defaults.
	if cfg.Puzzle.MaxHistoryDays != 90 {
		t.Errorf("Puzzle.MaxHistoryDays = %d, want default 90", cfg.Puzzle.MaxHistoryDays)
	}
}

func TestLoadFromFile_InvalidDuration(t *testing.T) {
	clearEnv(t)
	setDevModeEnv(t)
	defer clearEnv(t)

	path := filepath.Join(t.TempDir(), "between.yaml")
	if err := os.WriteFile(path, []byte("server:\n  read_timeout: nonsense\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoad_RequiresKeysOutsideDevMode(t *testing.T) {
	clearEnv(t)
	defer clearEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("error = %v, want missing OPENAI_API_KEY", err)
	}

	os.Setenv("OPENAI_API_KEY", "sk-test")
	_, err = Load()
	if err == nil || !strings.Contains(err.Error(), "BETWEEN_API_KEY") {
		t.Fatalf("error = %v, want missing BETWEEN_API_KEY", err)
	}

	setProdEnv(t)
	if _, err := Load(); err != nil {
		t.Fatalf("Load() with prod env error = %v", err)
	}
}

func TestLoad_RejectsBadPipelineShape(t *testing.T) {
	clearEnv(t)
	setDevModeEnv(t)
	os.Setenv("BETWEEN_BATCH_SIZE", "3") // below rounds_per_day
	defer clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when batch_size < rounds_per_day")
	}
}
