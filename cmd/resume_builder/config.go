package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/section"
)

// loadConfig reads --config when given, fills defaults, applies the
// environment and then the global flags.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Default())
	merged.ApplyEnv()
	if logLevel != "" {
		merged.LogLevel = logLevel
	}
	if verbose {
		merged.Verbose = true
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger builds the process logger. Verbose forces debug level.
func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logging.New(level, cfg.LogFile)
}

// loadRegistry returns the configured section schemas.
func loadRegistry(cfg *config.Config) (*section.Registry, error) {
	if cfg.SectionsFile == "" {
		return section.DefaultRegistry(), nil
	}
	f, err := os.Open(cfg.SectionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open sections file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return section.LoadSchemas(f)
}
