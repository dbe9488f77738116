package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/middleware"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts /register, /login and /logout on the root group.
// The credential endpoints take the rate limiter; /logout carries a valid
// session and is not throttled.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limitMW, authMW gin.HandlerFunc) {
	rg.POST("/register", limitMW, h.register)
	rg.POST("/login", limitMW, h.login)
	rg.POST("/logout", authMW, h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	_, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			response.Conflict(c, "username already taken")
			return
		}
		if errors.Is(err, errInvalidInput) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "registered"})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.svc.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.UnauthorizedMsg(c, "invalid credentials")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"message": "logged in",
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "logged out"})
}
