package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"resume-review/internal/config"
	"resume-review/internal/database"
	"resume-review/internal/database/migration"
	dbpostgres "resume-review/internal/database/postgres"
	"resume-review/internal/infrastructure/cache"
	"resume-review/internal/infrastructure/persistence/postgres"
	"resume-review/internal/infrastructure/sessionstore"
	"resume-review/internal/infrastructure/sheetapi"
	"resume-review/internal/infrastructure/storage"
	"resume-review/internal/pkg/jwt"
	"resume-review/internal/review"
	"resume-review/internal/usecase"
	"resume-review/internal/worker"
	"resume-review/internal/ws"
)

// Container owns every long-lived dependency and wires the layers together.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Queue *worker.Queue
	Hub   *ws.Hub

	JWT     jwt.Service
	Manager *review.Manager

	Auth     usecase.AuthUsecase
	Decision usecase.DecisionUsecase
	Admin    usecase.AdminUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := (migration.Runner{}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	queue := worker.NewQueue(cfg.Import.Workers, cfg.Import.Buffer, logger)
	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	profileRepo := postgres.NewProfileRepository(db)
	userRepo := postgres.NewUserRepository(db)

	sheets := sheetapi.NewClient(cfg.Sheet, logger)
	source := usecase.NewFallbackSource(profileRepo, sheets, queue, redis, logger)
	manager := review.NewManager(source, sessionstore.NewRedisStore(redis), logger)

	files, err := storage.NewDisk(cfg.Storage)
	if err != nil {
		_ = redis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    redis,
		Queue:    queue,
		Hub:      hub,
		JWT:      jwtSvc,
		Manager:  manager,
		Auth:     usecase.NewAuthUsecase(userRepo, jwtSvc),
		Decision: usecase.NewDecisionUsecase(profileRepo, notifier, logger),
		Admin:    usecase.NewAdminUsecase(profileRepo, files, notifier, logger),
	}, nil
}

// Start launches the background machinery: the import worker pool and the
// WebSocket hub loop.
func (c *Container) Start(ctx context.Context) {
	if c == nil {
		return
	}
	c.Queue.Start(ctx)
	go c.Hub.Run()
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Queue != nil {
		c.Queue.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
