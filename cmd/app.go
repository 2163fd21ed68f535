package cmd

import (
	"context"
	"fmt"

	"scouting-hub/core/cache"
	"scouting-hub/core/config"
	"scouting-hub/core/database"
	"scouting-hub/core/logger"
	"scouting-hub/core/probe"
	"scouting-hub/core/storage"
	"scouting-hub/feature/scouting"
	"scouting-hub/feature/scouting/drivesync"

	"go.uber.org/zap"
)

// runtime holds the components shared by every command.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *storage.AssetStore
	cache   *cache.Cache
	feature *scouting.Feature
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The journal is optional
	journal := database.NewJournal(nil)
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		j := database.NewJournal(conn)
		if err := j.Migrate(); err != nil {
			logg.Warn("Sync journal migration failed", zap.Error(err))
		} else {
			journal = j
			logg.Debug("Sync journal enabled", zap.String("driver", cfg.Database.Driver))
		}
	}

	store := storage.Open(ctx, cfg.Storage, logg)

	c, err := cache.New(cfg.Cache, logg)
	if err != nil {
		return nil, err
	}

	o := drivesync.New(store, c, drivesync.Config{
		RosterPath: cfg.Roster.Path,
		Images:     probe.New(cfg.Probe, nil, logg),
		Journal:    journal,
	}, logg)

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		store:   store,
		cache:   c,
		feature: scouting.NewFeature(o, c, cfg.Team.Name, logg),
	}, nil
}

// teamArg returns the first argument or "" for the configured team.
func teamArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
