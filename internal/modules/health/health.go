// Package health exposes the liveness endpoint that offline clients probe,
// plus admin access to the background job scheduler.
package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/cron"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
)

// RegisterRoutes mounts GET /health on the engine root and the cron admin
// group under /api/admin.
func RegisterRoutes(r *gin.Engine, admin *gin.RouterGroup, sched *cron.Scheduler) {
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	cronGroup := admin.Group("/cron")
	{
		cronGroup.GET("", func(c *gin.Context) {
			items := sched.List()
			byName := make(map[string]cron.ListItem, len(items))
			for _, item := range items {
				byName[item.Name] = item
			}
			response.OK(c, byName)
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Param("name")); err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})

		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := sched.GetTask(c.Param("name"))
			if err != nil {
				response.NotFoundMsg(c, err.Error())
				return
			}
			response.OK(c, result)
		})
	}
}
