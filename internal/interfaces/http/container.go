package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	moderationApp "github.com/orris-inc/moderation/internal/application/moderation"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/config"
	"github.com/orris-inc/moderation/internal/infrastructure/metrics"
	"github.com/orris-inc/moderation/internal/infrastructure/pubsub"
	"github.com/orris-inc/moderation/internal/infrastructure/repository"
	"github.com/orris-inc/moderation/internal/infrastructure/scheduler"
	"github.com/orris-inc/moderation/internal/infrastructure/snapshot"
	"github.com/orris-inc/moderation/internal/interfaces/http/handlers"
	moderationHandlers "github.com/orris-inc/moderation/internal/interfaces/http/handlers/moderation"
	"github.com/orris-inc/moderation/internal/interfaces/http/middleware"
	"github.com/orris-inc/moderation/internal/shared/logger"
	"github.com/orris-inc/moderation/internal/shared/services/markdown"
)

// Container holds every long-lived component of the server and wires them
// together. The moderation service is built exactly once here and shared by
// all requests.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  redis.UniversalClient

	snapshots     domain.SnapshotStore
	closeSnapshot func() error
	publisher     domain.EventPublisher
	metrics       *metrics.Recorder

	service   *moderationApp.Service
	scheduler *scheduler.SchedulerManager

	moderationHandler *moderationHandlers.ModerationHandler
	systemHandler     *handlers.SystemHandler
	rateLimiter       *middleware.RateLimiter
}

// NewContainer wires the server. db may be nil when neither the SQL
// repositories nor the SQL snapshot store are configured.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, snapshot store, metrics, events
	if err := c.initInfrastructure(); err != nil {
		c.closeInfrastructure()
		return nil, err
	}

	// Section 2: Moderation service and repositories
	if err := c.initModeration(); err != nil {
		c.closeInfrastructure()
		return nil, err
	}

	// Section 3: Handlers and middlewares
	c.initHandlers()

	// Section 4: Background jobs
	if err := c.initScheduler(); err != nil {
		c.closeInfrastructure()
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	store, closeStore, err := snapshot.NewStore(&cfg.Snapshot, snapshot.Backends{DB: c.db, Redis: c.redis})
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}
	c.snapshots = store
	c.closeSnapshot = closeStore
	c.log.Infow("snapshot store ready", "driver", cfg.Snapshot.Driver, "enabled", store.Enabled())

	if cfg.Metrics.Enabled {
		c.metrics = metrics.NewRecorder()
	}

	if c.redis != nil {
		c.publisher = pubsub.NewRedisModerationEventBus(c.redis, cfg.Moderation.EventsChannel, c.log.Named("events"))
	} else {
		c.publisher = pubsub.NopPublisher{}
	}
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return client, nil
}

func (c *Container) initModeration() error {
	cfg := c.cfg.Moderation

	policy := moderationApp.DefaultPolicy()
	policy.WarningThreshold = cfg.AutoBan.WarningThreshold
	policy.WarningWindow = time.Duration(cfg.AutoBan.WindowDays) * 24 * time.Hour
	policy.DefaultPageLimit = cfg.Page.DefaultLimit
	policy.MaxPageLimit = cfg.Page.MaxLimit

	opts := []moderationApp.Option{
		moderationApp.WithPolicy(policy),
		moderationApp.WithSeedDemoData(cfg.SeedDemoData),
		moderationApp.WithEventPublisher(c.publisher),
		moderationApp.WithMarkdownService(markdown.NewMarkdownService()),
	}
	if c.metrics != nil {
		opts = append(opts, moderationApp.WithMetrics(c.metrics))
	}

	if cfg.SQLRepositories {
		if c.db == nil {
			return fmt.Errorf("sql repositories are enabled but no database is configured")
		}
		opts = append(opts,
			moderationApp.WithAppealRepository(repository.NewAppealRepository(c.db)),
			moderationApp.WithContentRepository(repository.NewContentRepository(c.db)),
			moderationApp.WithTicketRepository(repository.NewTicketRepository(c.db)),
			moderationApp.WithUserRepository(repository.NewUserRepository(c.db, c.log.Named("users"))),
		)
		c.log.Infow("sql repositories enabled")
	}

	c.service = moderationApp.NewService(c.snapshots, c.log.Named("moderation"), opts...)
	return nil
}

func (c *Container) initHandlers() {
	c.moderationHandler = moderationHandlers.NewModerationHandler(c.service, c.log.Named("http"))

	probes := map[string]handlers.HealthProbe{}
	if c.db != nil {
		probes["database"] = func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if c.redis != nil {
		probes["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	c.systemHandler = handlers.NewSystemHandler(probes)

	if c.redis != nil && c.cfg.Server.RateLimit > 0 {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, c.cfg.Server.RateLimit, time.Minute)
	}
}

func (c *Container) initScheduler() error {
	interval := time.Duration(c.cfg.Snapshot.FlushInterval) * time.Second
	if interval <= 0 || !c.snapshots.Enabled() {
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterSnapshotFlushJob(c.service, interval); err != nil {
		return fmt.Errorf("failed to register snapshot flush job: %w", err)
	}
	manager.Start()
	c.scheduler = manager
	return nil
}

// Service returns the shared moderation service.
func (c *Container) Service() *moderationApp.Service {
	return c.service
}

// Shutdown flushes pending state and releases infrastructure.
func (c *Container) Shutdown(ctx context.Context) {
	c.stopScheduler()
	if c.service != nil {
		c.service.Flush(ctx)
	}
	c.closeInfrastructure()
}

// Close releases infrastructure without flushing the moderation graph.
func (c *Container) Close() {
	c.stopScheduler()
	c.closeInfrastructure()
}

func (c *Container) stopScheduler() {
	if c.scheduler == nil {
		return
	}
	if err := c.scheduler.Stop(); err != nil {
		c.log.Errorw("failed to stop scheduler", "error", err)
	}
	c.scheduler = nil
}

func (c *Container) closeInfrastructure() {
	if c.closeSnapshot != nil {
		if err := c.closeSnapshot(); err != nil {
			c.log.Errorw("failed to close snapshot store", "error", err)
		}
		c.closeSnapshot = nil
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
		c.redis = nil
	}
}
