package chatbot

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

const msgChatFailed = "Failed to generate response from chatbot."

// Handler wires HTTP handlers to the chatbot service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chatbot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chatbot", h.chat)
}

// chat keeps the 500 status for invalid messages; existing clients depend on it.
func (h *Handler) chat(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncChatbotFailed()
		if messageTypeMismatch(err) {
			err = ErrInvalidMessage
		}
		respond.Failure(c, http.StatusInternalServerError, msgChatFailed, err.Error())
		return
	}
	if req.SessionID != "" {
		c.Set(middleware.SessionIDKey, req.SessionID)
	}

	reply, err := h.Svc.Reply(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidMessage) {
			metrics.IncChatbotFailed()
		}
		respond.Failure(c, http.StatusInternalServerError, msgChatFailed, err.Error())
		return
	}

	respond.Success(c, gin.H{
		"data": reply,
	})
}

// messageTypeMismatch reports whether the body carried a non-string message.
func messageTypeMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == "message"
}
