package respond

import (
	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/telemetry"
)

// ErrorResponse is the error body returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// FailureResponse is ErrorResponse with an explicit success flag, used by the chatbot route.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Error logs and sends {error, details}.
func Error(c *gin.Context, status int, message string, details any) {
	logError(c, status, message, details)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}

// Failure logs and sends {success:false, error, details}.
func Failure(c *gin.Context, status int, message string, details any) {
	logError(c, status, message, details)
	c.AbortWithStatusJSON(status, FailureResponse{Success: false, Error: message, Details: details})
}

func logError(c *gin.Context, status int, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if details != nil {
		fields["details"] = details
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	telemetry.Error("http.error", fields)
}
