package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/suggest"
)

var (
	serveAddr    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the draft editing endpoints backed by PostgreSQL.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config and ADDR)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmdContext(cmd)

	if serveMigrate {
		version, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		logger.Info().Uint("version", version).Msg("migrations applied")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}
	if jwtCfg == nil {
		logger.Warn().Msg("JWT_SECRET not set; trusting the X-Owner header")
	}

	gen, closeGen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeGen()

	srv, err := server.New(server.Options{
		Addr:   cfg.Addr,
		Drafts: database,
		Preferences: func(owner string) settings.Backend {
			return database.PreferenceBackend(owner)
		},
		Registry:       registry,
		Generator:      gen,
		JWT:            jwtCfg,
		RateLimit:      ratelimit.LoadConfig(),
		Entitled:       cfg.IsEntitled,
		NudgeThreshold: cfg.NudgeThreshold,
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// newGenerator returns the suggestion generator for cfg, or nil when no API
// key is configured.
func newGenerator(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (suggest.Generator, func(), error) {
	if cfg.APIKey == "" {
		logger.Warn().Str("provider", cfg.LLMProvider).Msg("no API key configured; suggestion generation disabled")
		return nil, func() {}, nil
	}
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closer := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing LLM client")
		}
	}
	return suggest.NewLLMGenerator(client, suggest.WithLogger(logger)), closer, nil
}
