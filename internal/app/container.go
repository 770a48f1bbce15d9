// Package app wires configuration, persistence, the event bus, and the
// workitems command/query handlers into a single Container, grounded
// on the teacher's internal/app.Container: one constructor per
// deployment mode (NewContainer for Postgres, NewLocalContainer for
// SQLite), both producing the same handler surface for the adapters.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sharedapp "github.com/donow-app/donow/internal/shared/application"
	"github.com/donow-app/donow/internal/shared/infrastructure/database"
	_ "github.com/donow-app/donow/internal/shared/infrastructure/database/postgres"
	_ "github.com/donow-app/donow/internal/shared/infrastructure/database/sqlite"
	"github.com/donow-app/donow/internal/shared/infrastructure/eventbus"
	"github.com/donow-app/donow/internal/shared/infrastructure/migrations"
	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/donow-app/donow/internal/shared/infrastructure/persistence"
	"github.com/donow-app/donow/internal/workitems/application/commands"
	"github.com/donow-app/donow/internal/workitems/application/queries"
	"github.com/donow-app/donow/internal/workitems/domain"
	workitemsCache "github.com/donow-app/donow/internal/workitems/infrastructure/cache"
	workitemsEventbus "github.com/donow-app/donow/internal/workitems/infrastructure/eventbus"
	"github.com/donow-app/donow/internal/workitems/infrastructure/persistence"
	"github.com/donow-app/donow/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds every dependency the adapters (CLI/MCP) need.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	DBConn database.Connection
	DB     *pgxpool.Pool // nil in local (SQLite) mode

	RedisClient *redis.Client

	ItemRepo       domain.ItemRepository
	EventRepo      domain.EventRepository
	TimeSpentRepo  domain.TimeSpentRepository
	PriorityRepo   domain.InTheMomentPriorityRepository
	OutboxRepo     outbox.Repository
	EventPublisher eventbus.Publisher
	UnitOfWork     sharedapp.UnitOfWork

	NewItemHandler         *commands.NewItemHandler
	FinishItemHandler      *commands.FinishItemHandler
	FieldHandler           *commands.FieldHandler
	ParentItemHandler      *commands.ParentItemHandler
	CoverItemHandler       *commands.CoverItemHandler
	DependencyHandler      *commands.DependencyHandler
	EventHandler           *commands.EventHandler
	RecordTimeSpentHandler *commands.RecordTimeSpentHandler
	DeclarePriorityHandler *commands.DeclarePriorityHandler

	GetItemHandler      *queries.GetItemHandler
	ListItemsHandler     *queries.ListItemsHandler
	GetDoNowListHandler doNowListHandler

	DoNowListCache *workitemsCache.DoNowListCache

	OutboxProcessor *outbox.Processor

	CurrentUserID uuid.UUID
}

// doNowListHandler is satisfied by both *queries.GetDoNowListHandler
// and its cache-wrapped decorator, so adapters don't need to know
// whether caching is enabled.
type doNowListHandler interface {
	Handle(ctx context.Context, query queries.GetDoNowListQuery) ([]queries.ActionDTO, error)
}

// Close releases every held resource.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		_ = c.EventPublisher.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DBConn != nil {
		_ = c.DBConn.Close()
	}
}

// NewContainer wires a production container backed by PostgreSQL and,
// when configured, RabbitMQ and Redis.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid DONOW_USER_ID: %w", err)
	}
	c.CurrentUserID = userID

	conn, err := database.NewConnection(ctx, database.Config{Driver: database.DriverPostgres, URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn

	type pooler interface{ Pool() *pgxpool.Pool }
	pgConn, ok := conn.(pooler)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("expected PostgreSQL connection, got %T", conn)
	}
	pool := pgConn.Pool()
	c.DB = pool

	c.ItemRepo = persistence.NewPostgresItemRepository(pool)
	c.EventRepo = persistence.NewPostgresEventRepository(pool)
	c.TimeSpentRepo = persistence.NewPostgresTimeSpentRepository(pool)
	c.PriorityRepo = persistence.NewPostgresInTheMomentPriorityRepository(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)

	if err := c.wireEventbus(ctx, cfg, logger); err != nil {
		conn.Close()
		return nil, err
	}
	c.wireHandlers(logger)

	logger.Info("container initialized", "driver", "postgres")
	return c, nil
}

// NewLocalContainer wires a single-user container backed by an
// auto-migrated SQLite file, with a no-op publisher and optional Redis
// cache, for the CLI's zero-setup local mode.
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid DONOW_USER_ID: %w", err)
	}
	c.CurrentUserID = userID

	conn, err := database.NewConnection(ctx, database.Config{Driver: database.DriverSQLite, SQLitePath: cfg.SQLitePath})
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite connection: %w", err)
	}

	type sqliteConn interface{ DB() *sql.DB }
	sconn, ok := conn.(sqliteConn)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("expected SQLite connection, got %T", conn)
	}
	db := sconn.DB()

	logger.Info("running SQLite migrations")
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DBConn = conn
	c.ItemRepo = persistence.NewSQLiteItemRepository(db)
	c.EventRepo = persistence.NewSQLiteEventRepository(db)
	c.TimeSpentRepo = persistence.NewSQLiteTimeSpentRepository(db)
	c.PriorityRepo = persistence.NewSQLiteInTheMomentPriorityRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
	c.EventPublisher = eventbus.NewNoopPublisher(logger)

	if cfg.CacheEnabled && cfg.RedisURL != "" {
		if err := c.wireRedis(ctx, cfg, logger); err != nil {
			logger.Warn("redis unavailable, do-now list cache disabled", "error", err)
		}
	}
	c.wireHandlers(logger)

	logger.Info("local container initialized", "path", cfg.SQLitePath)
	return c, nil
}

func (c *Container) wireRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	c.RedisClient = client
	logger.Info("connected to redis")
	return nil
}

func (c *Container) wireEventbus(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		if err := c.wireRedis(ctx, cfg, logger); err != nil {
			logger.Warn("redis unavailable, do-now list cache disabled", "error", err)
		}
	}

	if cfg.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
		return nil
	}
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.EventPublisher = publisher

	if cfg.OutboxProcessorEnabled {
		procCfg := outbox.ProcessorConfig{
			PollInterval: cfg.OutboxPollInterval,
			BatchSize:    cfg.OutboxBatchSize,
			MaxRetries:   cfg.OutboxMaxRetries,
		}
		c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, procCfg, logger)
		if err := c.OutboxProcessor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start outbox processor: %w", err)
		}
	}
	return nil
}

func (c *Container) wireHandlers(logger *slog.Logger) {
	c.NewItemHandler = commands.NewNewItemHandler(c.ItemRepo, c.EventRepo, c.OutboxRepo, c.UnitOfWork)
	c.FinishItemHandler = commands.NewFinishItemHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.FieldHandler = commands.NewFieldHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.ParentItemHandler = commands.NewParentItemHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.CoverItemHandler = commands.NewCoverItemHandler(c.ItemRepo, c.OutboxRepo, c.UnitOfWork)
	c.DependencyHandler = commands.NewDependencyHandler(c.ItemRepo, c.EventRepo, c.OutboxRepo, c.UnitOfWork)
	c.EventHandler = commands.NewEventHandler(c.EventRepo, c.OutboxRepo, c.UnitOfWork)
	c.RecordTimeSpentHandler = commands.NewRecordTimeSpentHandler(c.TimeSpentRepo, c.UnitOfWork)
	c.DeclarePriorityHandler = commands.NewDeclarePriorityHandler(c.PriorityRepo, c.OutboxRepo, c.UnitOfWork)

	c.GetItemHandler = queries.NewGetItemHandler(c.ItemRepo)
	c.ListItemsHandler = queries.NewListItemsHandler(c.ItemRepo)

	base := queries.NewGetDoNowListHandler(c.ItemRepo, c.EventRepo, c.TimeSpentRepo, c.PriorityRepo, time.Now)

	if c.RedisClient != nil {
		cache := workitemsCache.NewDoNowListCache(c.RedisClient, base, c.Config.SnapshotTTL)
		c.DoNowListCache = cache
		c.GetDoNowListHandler = cache

		registry := eventbus.NewConsumerRegistry(logger)
		registry.Register(workitemsEventbus.NewCacheInvalidationConsumer(cache))
	} else {
		c.GetDoNowListHandler = base
	}
}
