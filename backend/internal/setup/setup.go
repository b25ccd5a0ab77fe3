package setup

import (
	"context"
	"fmt"

	"github.com/adivinatobi/adivinatobi/backend/internal/handler"
	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/backend/internal/storage"
	"github.com/adivinatobi/adivinatobi/backend/internal/storage/fs"
	"github.com/adivinatobi/adivinatobi/backend/internal/storage/pg"
	"github.com/adivinatobi/adivinatobi/backend/internal/utils"
	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/markdown"
	"github.com/adivinatobi/adivinatobi/shared/middleware/ratelimiter"
)

// Store is a document store that can also report its health.
type Store interface {
	service.DocumentStore
	handler.HealthChecker
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config      *config.Config
	Store       Store
	Handler     *handler.Handler
	Leaderboard service.LeaderboardService
	RateLimiter *ratelimiter.UserRateLimiter

	closeStore func() error
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	validator := utils.NewTextValidator(cfg.Public.Limits)

	thread := service.NewThread(store, validator)
	prediction := service.NewPrediction(store, validator)
	user := service.NewUser(store, validator)
	leaderboard := service.NewLeaderboard(store)

	renderer := markdown.New(cfg.Public.MarkdownCacheSize)

	h := handler.New(thread, prediction, user, leaderboard, store, renderer, cfg)

	rl := cfg.Public.RateLimit
	return &Dependencies{
		Config:      cfg,
		Store:       store,
		Handler:     h,
		Leaderboard: leaderboard,
		RateLimiter: ratelimiter.PerMinute(rl.MutationsPerMinute, rl.Burst, rl.Expiration),
		closeStore:  closeStore,
	}, nil
}

// Cleanup releases the store and stops background timers.
func (d *Dependencies) Cleanup() {
	if d.RateLimiter != nil {
		d.RateLimiter.Stop()
	}
	if d.closeStore != nil {
		if err := d.closeStore(); err != nil {
			logger.Log.Error("failed to close store", "error", err)
		}
	}
}

// OpenStore builds the configured document store. With the postgres backend and
// fallback enabled, the local file backs up the database, and a database that
// cannot be reached at startup leaves the file as the only store.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	store := cfg.Public.Store
	noop := func() error { return nil }

	openFile := func() (*fs.Storage, error) {
		s, err := fs.New(store.DataFile, cfg.Public.DefaultUsers)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return s, nil
	}

	if store.Backend == config.StoreBackendFile {
		file, err := openFile()
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Info("using file store", "path", file.Path())
		return file, noop, nil
	}

	db, err := pg.New(ctx, cfg.Private.Pg, cfg.Public.DefaultUsers)
	if err != nil {
		if !store.Fallback {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		logger.Log.Warn("postgres unreachable, using file store only", "error", err, "path", store.DataFile)
		file, fileErr := openFile()
		if fileErr != nil {
			return nil, nil, fileErr
		}
		return file, noop, nil
	}

	if !store.Fallback {
		return db, db.Cleanup, nil
	}
	file, err := openFile()
	if err != nil {
		db.Cleanup()
		return nil, nil, err
	}
	logger.Log.Info("using postgres store with file fallback", "path", file.Path())
	return storage.NewFallback(db, file), db.Cleanup, nil
}
