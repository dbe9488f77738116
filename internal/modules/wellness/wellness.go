// Package wellness serves the tip corpus behind the client's reminder
// notifications.
package wellness

import (
	"math/rand/v2"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
)

var tips = []string{
	"Stand up and stretch for a minute.",
	"Drink a glass of water.",
	"Look at something 20 feet away for 20 seconds.",
	"Take three slow, deep breaths.",
	"Roll your shoulders back and relax your jaw.",
	"Step outside for some fresh air if you can.",
	"Check your posture. Sit back and unclench.",
	"Give your eyes a short break from the screen.",
}

// Tip returns a random wellness tip.
func Tip() string {
	return tips[rand.IntN(len(tips))]
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wellness/tip", h.tip)
}

func (h *Handler) tip(c *gin.Context) {
	response.OK(c, gin.H{"tip": Tip()})
}
