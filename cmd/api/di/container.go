package di

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-records/cmd/api/infrastructure"
	"student-records/internal/adapter/cache"
	"student-records/internal/adapter/db/gormdb"
	"student-records/internal/adapter/db/mongodb"
	ginhandler "student-records/internal/adapter/gin/handler"
	"student-records/internal/adapter/repository/cached"
	"student-records/internal/config"
	domain "student-records/internal/domain/student"
	usecase "student-records/internal/usecase/student"
	redisclient "student-records/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Mongo       *mongo.Client
	RedisClient *redisclient.Client
	StudentUC   usecase.Usecase
	GinHandler  *ginhandler.StudentHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	store, err := c.newStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		studentCache := cache.NewRedisStudentCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		store = cached.NewStudentRepository(store, studentCache, l)
	}

	c.StudentUC = usecase.New(store, l)
	c.GinHandler = ginhandler.NewStudentHandler(c.StudentUC, l)

	return c, nil
}

// newStore opens the storage handle selected by STORE_DRIVER.
func (c *Container) newStore(ctx context.Context) (domain.Store, error) {
	switch c.Config.Store.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := infrastructure.NewDatabase(c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return gormdb.NewStudentRepo(db, c.Logger), nil
	default:
		client, err := infrastructure.NewMongoClient(ctx, c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
		}
		c.Mongo = client
		return mongodb.NewStudentRepo(infrastructure.MongoCollection(client, c.Config), c.Logger), nil
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.Mongo != nil {
		if err := infrastructure.DisconnectMongo(c.Mongo, 5*time.Second); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect mongodb: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
