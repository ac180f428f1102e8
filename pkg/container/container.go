package container

import (
	"context"
	"fmt"
	"time"

	"gutenberg-catalog/internal/config"
	"gutenberg-catalog/internal/domains/catalog/handler"
	"gutenberg-catalog/internal/domains/catalog/repository"
	"gutenberg-catalog/internal/domains/catalog/service"
	infraCache "gutenberg-catalog/internal/infrastructure/cache"
	"gutenberg-catalog/internal/infrastructure/database"
	"gutenberg-catalog/pkg/cache"
	"gutenberg-catalog/pkg/logger"
)

// Container holds every dependency of the application and wires them
// together in order: config, infrastructure, repositories, services,
// handlers. All components are singletons for the process lifetime.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	CatalogRepo    repository.RepositoryInterface
	CatalogService service.ServiceInterface
	CatalogHandler *handler.Handler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// A cache outage must not prevent serving the catalog: handlers
	// nil-check the cache and fall through to the database.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			logger.Warn("Redis connection failed, running without cache", err)
			redisCache = nil
		} else {
			logger.Info("Redis connected", nil)
		}
	}
	c.Cache = redisCache

	c.CatalogRepo = repository.NewPostgresRepository(c.DB.Pool)
	c.CatalogService = service.NewCatalogService(c.CatalogRepo)
	c.CatalogHandler = handler.NewHandler(c.CatalogService, c.Cache)

	return c, nil
}

// Cleanup releases infrastructure resources. Call on shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("Failed to close Redis connection", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
