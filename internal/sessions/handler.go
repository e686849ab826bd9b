package sessions

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

// Handler exposes session lifecycle routes.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/sessions/:id", h.deleteSession)
}

func (h *Handler) deleteSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "session id is required", nil)
		return
	}
	c.Set(middleware.SessionIDKey, id)

	deleted := h.Store.Delete(id)
	metrics.SetSessionsActive(h.Store.Len())
	respond.Success(c, gin.H{
		"deleted": deleted,
	})
}
