package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kingdomworks/dominion-engine-go/internal/config"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/tournament"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting dominion simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Cancel the tournament on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("cards", len(catalog.Infos())),
	)

	if cfg.Simulation.ReplayDir != "" {
		if err := os.MkdirAll(cfg.Simulation.ReplayDir, 0o755); err != nil {
			logger.Fatal("failed to create replay directory", zap.Error(err))
		}
	}

	tournamentMgr := tournament.NewManager(logger)
	t, err := tournamentMgr.CreateTournament(tournament.Options{
		Name:      "simulation",
		Kingdom:   cfg.Kingdom(),
		Catalog:   catalog,
		Players:   cfg.Game.Players,
		Games:     cfg.Simulation.Games,
		Seed:      cfg.Game.Seed,
		MaxTurns:  cfg.Simulation.MaxTurns,
		ReplayDir: cfg.Simulation.ReplayDir,
	}, cfg.Simulation.Strategies...)
	if err != nil {
		logger.Fatal("failed to create tournament", zap.Error(err))
	}

	if err := t.Run(ctx, logger.Named("arena")); err != nil {
		logger.Error("tournament stopped", zap.Error(err))
	}

	for rank, e := range t.Standings() {
		logger.Info("standing",
			zap.Int("rank", rank+1),
			zap.String("strategy", e.Name),
			zap.Int("points", e.Points),
			zap.Int("wins", e.Wins),
			zap.Int("draws", e.Draws),
			zap.Int("losses", e.Losses),
			zap.Int("victory_points", e.VP),
			zap.Int("cards_bought", e.Bought),
			zap.Int("curses_received", e.Curses),
			zap.Int("attacks_blocked", e.Blocked),
		)
	}

	logger.Info("dominion simulator stopped", zap.String("state", t.GetState().String()))
}

// loadCatalog reads the card catalog from the configured source.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*cards.Catalog, error) {
	switch cfg.Source {
	case config.SourceFile:
		f, err := os.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return cards.LoadYAML(f)
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()
		return cards.LoadPostgres(ctx, pool)
	default:
		return cards.Default(), nil
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
