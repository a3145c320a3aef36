package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/db"
	httpsrv "github.com/careerpath/careerpath-backend/internal/http"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	store      *db.Service
	clients    Clients
	middleware Middleware
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	store, err := db.NewService(log, db.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := store.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients)

	sqlDB, err := theDB.DB()
	if err != nil {
		clients.Close()
		_ = store.Close()
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	handlerset := wireHandlers(log, serviceset, sqlDB)
	middleware := wireMiddleware(log, cfg, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:        log,
		DB:         theDB,
		Router:     router,
		Cfg:        cfg,
		Repos:      reposet,
		Services:   serviceset,
		store:      store,
		clients:    clients,
		middleware: middleware,
	}, nil
}

// Start launches background maintenance. Safe to call once.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.middleware.RateLimiter != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.middleware.RateLimiter.Run(ctx)
		}()
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("HTTP server listening", "addr", addr)
	return (&httpsrv.Server{Engine: a.Router}).Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.wg.Wait()
	a.clients.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("close database", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
