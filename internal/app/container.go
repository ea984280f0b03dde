package app

import (
	"context"
	"fmt"

	"cobible/internal/adapter"
	"cobible/internal/cache"
	"cobible/internal/config"
	"cobible/internal/database"
	"cobible/internal/dataset"
	"cobible/internal/domain"
	"cobible/internal/logger"
	"cobible/internal/repository"
	"cobible/internal/sampler"
	"cobible/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container aggregates the dependencies shared by every host.
type Container struct {
	Config *config.Config

	DB    *sqlx.DB      // nil without a configured store
	Redis *redis.Client // nil without redis.address
	Cache domain.Cache  // nil without redis.address

	Source    domain.ContentSource
	Content   service.ContentService
	Favorites service.FavoriteService
	Results   service.ResultService
	Sessions  service.SessionService
}

// NewContainer connects the configured backends and builds the services.
// Content is not loaded; callers run Content.Load when they need it.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.Redis = client
		c.Cache = adapter.NewRedisCacheAdapter(client)
	}

	source, err := newContentSource(cfg.Content, c.Cache)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Source = source

	var (
		shortcuts domain.ShortcutStore      = repository.NewMemoryShortcutRepository()
		favorites domain.FavoriteRepository = repository.NewMemoryFavoriteRepository()
		results   domain.ResultRepository   = repository.NewMemoryResultRepository()
		txManager domain.TransactionManager = repository.NopTransactionManager{}
	)
	if cfg.StoreEnabled() {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.DB = db

		// The embedded store is created on first use; server stores are migrated by cmd/migrate.
		if cfg.DB.Driver == config.DriverSQLite {
			if err := database.MigrateUp(db.DB, cfg.DB.Driver); err != nil {
				c.Close()
				return nil, err
			}
		}

		shortcuts = repository.NewShortcutDatabaseAdapter(db)
		favorites = repository.NewFavoriteDatabaseAdapter(db)
		results = repository.NewResultDatabaseAdapter(db)
		txManager = repository.NewTransactionManagerAdapter(db)
	}

	c.Content = service.NewContentService(source, shortcuts, txManager, c.Cache)
	c.Favorites = service.NewFavoriteService(favorites)
	c.Results = service.NewResultService(results)
	c.Sessions = service.NewSessionService(c.Content, c.Results, sampler.New(), cfg.Quiz)

	logger.Get().Info("Container initialized",
		zap.String("content_source", cfg.Content.Source),
		zap.String("store_driver", cfg.DB.Driver),
		zap.Bool("redis", c.Redis != nil))
	return c, nil
}

func newContentSource(cfg config.ContentConfig, store domain.Cache) (domain.ContentSource, error) {
	switch cfg.Source {
	case config.SourceFile:
		return dataset.NewFileSource(cfg.Dir), nil
	case config.SourceRedis:
		if store == nil {
			return nil, fmt.Errorf("content source %q requires a redis connection", cfg.Source)
		}
		return adapter.NewCacheContentSource(store), nil
	default:
		return dataset.NewEmbeddedSource(), nil
	}
}

// Close stops every session and releases the backends.
func (c *Container) Close() {
	if c.Sessions != nil {
		c.Sessions.Shutdown()
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
