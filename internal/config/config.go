// Package config loads CLI defaults from an optional fuzzpatch.toml file,
// with environment variables taking precedence. The engine itself never reads
// configuration; everything here only shapes how the CLI presents results.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "fuzzpatch.toml"

// Config carries presentation defaults for the CLI.
type Config struct {
	// ContextLines is the number of unchanged lines rendered around each
	// change in generated diffs.
	ContextLines int `toml:"context_lines"`
	// Color controls diff colorization: "auto", "on" or "off".
	Color string `toml:"color"`
	// LogLevel is the zap level for CLI diagnostics (debug, info, warn, ...).
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		ContextLines: 3,
		Color:        "auto",
		LogLevel:     "warn",
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// path (or DefaultFileName when path is empty; a missing file is fine), then
// FUZZPATCH_* environment variables. A .env file in the working directory is
// loaded first so the variables it defines participate like real ones.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced
		// to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("FUZZPATCH_CONTEXT_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FUZZPATCH_CONTEXT_LINES %q: %w", v, err)
		}
		cfg.ContextLines = n
	}
	if v := os.Getenv("FUZZPATCH_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("FUZZPATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate checks the configuration for values no command can work with.
func (c Config) Validate() error {
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must be non-negative, got %d", c.ContextLines)
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("color must be auto, on or off, got %q", c.Color)
	}
	return nil
}
