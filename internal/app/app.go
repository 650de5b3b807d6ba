package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/db"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/http"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/realtime"
	"github.com/yungbote/coursehub-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    repos.Set
	Services Services
	Metrics  *observability.Metrics
	Events   bus.Bus

	store        *db.Service
	redis        *goredis.Client
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, cfg.otelConfig())
	metrics := observability.Init(log, cfg.metricsConfig())

	store, err := db.Open(cfg.dbConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := store.AutoMigrateAll(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	theDB := store.DB()

	rdb, events, err := wireEvents(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, metrics, events)
	if err != nil {
		_ = events.Close()
		_ = store.Close()
		return nil, err
	}

	sqlDB, err := theDB.DB()
	if err != nil {
		_ = events.Close()
		_ = store.Close()
		return nil, fmt.Errorf("sql db handle: %w", err)
	}
	handlerset := wireHandlers(log, serviceset, sqlDB)
	middleware := wireMiddleware(log, serviceset)
	server := http.NewServer(log, routerConfig(log, cfg, metrics, handlerset, middleware))

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		Events:       events,
		store:        store,
		redis:        rdb,
		otelShutdown: otelShutdown,
	}, nil
}

// wireEvents uses redis pub/sub when REDIS_ADDR is set and an in-process bus otherwise.
func wireEvents(ctx context.Context, log *logger.Logger, cfg Config) (*goredis.Client, bus.Bus, error) {
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set, using in-process enrollment bus")
		return nil, bus.NewMemoryBus(), nil
	}
	rdb, err := bus.DialRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}
	events, err := bus.NewRedisBus(log, rdb, cfg.Redis.Channel, false)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return rdb, events, nil
}

// Start launches the background collectors and the enrollment event forwarder.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.Metrics.Addr)
		a.Metrics.StartDBPoolCollector(ctx, a.Log, a.DB)
		if a.redis != nil {
			a.Metrics.StartRedisCollector(ctx, a.Log, a.redis)
		}
	}

	eventLog := a.Log.With("component", "EnrollmentEventForwarder")
	return a.Events.StartForwarder(ctx, func(ev realtime.Event) {
		eventLog.Debug("enrollment event",
			"type", ev.Type,
			"enrollment_id", ev.EnrollmentID,
			"course_id", ev.CourseID,
			"progress", ev.Progress,
		)
	})
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, ":"+a.Cfg.Port, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Events != nil {
		_ = a.Events.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
