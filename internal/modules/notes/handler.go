package notes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/middleware"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the note CRUD surface under /notes. Every mutating
// endpoint responds with the full refreshed note list, which lets offline
// clients overwrite their cache from a single response.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notes")
	g.GET("", h.list)
	g.POST("", h.upsert)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/render", h.render)
}

func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.svc.List(middleware.CurrentUserID(c)))
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := h.svc.Upsert(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, errBadDate) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, list)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, found, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}
	response.OK(c, list)
}

func (h *Handler) delete(c *gin.Context) {
	list, found, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}
	response.OK(c, list)
}

func (h *Handler) render(c *gin.Context) {
	note, ok := h.svc.Get(middleware.CurrentUserID(c), c.Param("id"))
	if !ok {
		response.NotFound(c)
		return
	}
	html, err := RenderMarkdown(note.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"html": html})
}
