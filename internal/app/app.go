package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/config"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/middleware"
	pkgcron "github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/cron"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/jwt"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	st     *store.Store
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → store → routes → scheduler.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	jwt.SetSecret(cfg.JWTSecret)

	st, err := store.Open(cfg.DataDir, store.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	registerCronJobs(sched, st, cfg, logger)
	sched.Start(ctx)

	app := &App{cfg: cfg, router: router, st: st, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines and the store watcher.
func (a *App) Shutdown() {
	a.cancel()
	if err := a.st.Close(); err != nil {
		a.logger.Warn("store close", zap.Error(err))
	}
}
