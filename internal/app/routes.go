package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/middleware"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/modules/auth"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/modules/chatbot"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/modules/health"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/modules/notes"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/modules/wellness"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth(a.st)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	limitMW := middleware.RateLimit(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)

	authSvc := auth.NewService(a.st, a.cfg)
	auth.NewHandler(authSvc).RegisterRoutes(&r.RouterGroup, limitMW, authMW)

	api := r.Group("/api", authMW)
	notes.NewHandler(notes.NewService(a.st)).RegisterRoutes(api)
	chatbot.NewHandler().RegisterRoutes(api)
	wellness.NewHandler().RegisterRoutes(api)

	admin := api.Group("/admin")
	health.RegisterRoutes(r, admin, a.sched)
}
