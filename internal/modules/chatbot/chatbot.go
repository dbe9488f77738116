// Package chatbot is the scripted companion bot. It matches keywords against
// a fixed rule table; there is no model behind it and no state between
// messages.
package chatbot

import (
	"math/rand/v2"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
)

type rule struct {
	keywords []string
	replies  []string
}

var rules = []rule{
	{
		keywords: []string{"hello", "hi", "hey"},
		replies: []string{
			"Hey! How is your day going?",
			"Hello! Ready to plan something?",
		},
	},
	{
		keywords: []string{"tired", "exhausted", "sleepy"},
		replies: []string{
			"Sounds like you could use a break. Even five minutes helps.",
			"Rest is part of the work. Step away from the screen for a bit.",
		},
	},
	{
		keywords: []string{"stress", "stressed", "anxious", "overwhelmed"},
		replies: []string{
			"Take a slow breath. Pick the one smallest task and start there.",
			"You do not have to do everything today. What matters most right now?",
		},
	},
	{
		keywords: []string{"note", "notes", "remember"},
		replies: []string{
			"You can pin a note to any calendar day. Future you will thank you.",
			"Write it down before it slips away. The calendar is right there.",
		},
	},
	{
		keywords: []string{"water", "thirsty"},
		replies: []string{
			"Good call. A glass of water works wonders.",
		},
	},
	{
		keywords: []string{"bye", "goodbye", "goodnight"},
		replies: []string{
			"See you! I will be here when you are back.",
			"Good night! Tomorrow is a fresh page.",
		},
	},
	{
		keywords: []string{"thank", "thanks"},
		replies: []string{
			"Anytime!",
			"Happy to help.",
		},
	},
}

var fallbacks = []string{
	"I am a simple bot, but I am listening. Tell me more?",
	"Not sure I follow. Try asking about notes, breaks, or how you feel.",
	"Hmm. Maybe jot that down as a note so it does not get lost?",
}

// Reply produces the scripted answer for one message. First matching rule
// wins; unmatched messages get a random fallback.
func Reply(message string) string {
	msg := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if containsWord(msg, kw) {
				return r.replies[rand.IntN(len(r.replies))]
			}
		}
	}
	return fallbacks[rand.IntN(len(fallbacks))]
}

// containsWord matches kw on word boundaries so "hi" does not fire on
// "this".
func containsWord(msg, kw string) bool {
	fields := strings.FieldsFunc(msg, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, f := range fields {
		if f == kw {
			return true
		}
	}
	return false
}

type ChatDTO struct {
	Message string `json:"message" binding:"required"`
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var dto ChatDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"reply": Reply(dto.Message)})
}
