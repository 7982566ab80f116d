package container

import (
	"context"
	"fmt"
	"time"

	"realestate-backend/internal/config"
	"realestate-backend/internal/domains/auth"
	authHandler "realestate-backend/internal/domains/auth/handler"
	propertyHandler "realestate-backend/internal/domains/property/handler"
	propertyRepo "realestate-backend/internal/domains/property/repository"
	propertyService "realestate-backend/internal/domains/property/service"
	infraCache "realestate-backend/internal/infrastructure/cache"
	"realestate-backend/internal/infrastructure/database"
	"realestate-backend/internal/shared/middleware"
	"realestate-backend/pkg/cache"
	"realestate-backend/pkg/jwt"
	"realestate-backend/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi STORAGE_DRIVER=sqlite
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Registry   *prometheus.Registry
	Metrics    *middleware.HTTPMetrics

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	PropertyStore propertyRepo.Store

	// ========================================
	// SERVICE LAYER
	// ========================================
	PropertyService propertyService.Service
	TokenService    *auth.TokenService

	// ========================================
	// HANDLER LAYER
	// ========================================
	PropertyHandler *propertyHandler.PropertyHandler
	OwnerHandler    *propertyHandler.OwnerHandler
	AuthHandler     *authHandler.AuthHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (storage, cache, metrics)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = middleware.NewHTTPMetrics(c.Registry)

	// ========================================
	// STEP 1: STORAGE
	// ========================================
	if err := c.initStorage(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 3: AUTH
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)
	credentials, err := auth.NewCredentialStore(cfg.Auth.Users, cfg.Auth.BcryptCost)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init credentials: %w", err)
	}
	if credentials.Len() == 0 {
		logger.Warn("AUTH_USERS is empty, write endpoints are unreachable", nil)
	}

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.PropertyService = propertyService.NewPropertyService(c.PropertyStore, c.PropertyStore, c.Cache, cfg.Cache.ListTTL)
	c.TokenService = auth.NewTokenService(credentials, c.JWTManager)

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.PropertyHandler = propertyHandler.NewPropertyHandler(c.PropertyService)
	c.OwnerHandler = propertyHandler.NewOwnerHandler(c.PropertyService)
	c.AuthHandler = authHandler.NewAuthHandler(c.TokenService)

	logger.Info("DI container initialized", map[string]interface{}{
		"storage": cfg.Storage.Driver,
		"redis":   c.Redis != nil,
	})
	return c, nil
}

// initStorage chọn adapter theo STORAGE_DRIVER
func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case config.DriverSQLite:
		store, err := propertyRepo.OpenSQLite(ctx, c.Config.Storage.SQLitePath)
		if err != nil {
			return err
		}
		c.PropertyStore = store
		logger.Info("SQLite storage opened", map[string]interface{}{"path": c.Config.Storage.SQLitePath})
		return nil

	default:
		dbConfig := c.Config.Storage.Postgres
		if dbConfig == nil {
			return fmt.Errorf("postgres storage selected without database config")
		}

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
		c.Registry.MustRegister(database.NewPoolCollector(db))
		c.PropertyStore = propertyRepo.NewPostgresRepository(db.Pool)
		return nil
	}
}

// initCache - Redis khi REDIS_ENABLED, ngược lại dùng in-process LRU.
// Redis không kết nối được không phải lỗi critical.
func (c *Container) initCache(ctx context.Context) {
	cfg := c.Config
	if cfg.Redis.Enabled {
		client := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		err := client.Connect(ctx)
		if err == nil {
			c.Redis = client
			c.Cache = infraCache.NewRedisCache(client.Client)
			return
		}
		logger.Error("Redis connection failed, falling back to memory cache", err)
		_ = client.Close()
	}
	c.Cache = infraCache.NewMemoryCache(cfg.Cache.MemorySize, cfg.Cache.ListTTL)
}

// HealthCheck - storage + cache status cho /health
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"storage": "ok", "cache": "ok"}

	if c.PropertyStore == nil {
		status["storage"] = "disconnected"
	} else if err := c.PropertyStore.Ping(ctx); err != nil {
		status["storage"] = fmt.Sprintf("error: %v", err)
	}

	if c.Cache == nil {
		status["cache"] = "disabled"
	} else if err := c.Cache.Ping(ctx); err != nil {
		status["cache"] = fmt.Sprintf("error: %v", err)
	}
	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.PropertyStore != nil {
		if err := c.PropertyStore.Close(); err != nil {
			logger.Error("Failed to close property store", err)
		}
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	logger.Info("Container cleanup completed", nil)
}
