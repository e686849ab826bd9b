package analyses

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/shared/util"
)

const (
	msgRequired      = "Both job description and resume file are required"
	msgInvalidType   = "Invalid file type. Only PDF, DOC, DOCX, and TXT files are allowed."
	msgTooLarge      = "File too large. Maximum size is 5MB."
	msgAnalyzeFailed = "Failed to analyze resume"

	// multipart framing and the job description field ride on top of the file itself
	formOverheadBytes = 1 << 20
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-resume", h.analyzeResume)
}

func (h *Handler) analyzeResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+formOverheadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, msgTooLarge, nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, msgRequired, nil)
		return
	}

	jobDescription := firstValue(form.Value["jobDescription"])
	fileHeader := firstFile(form.File["resume"])
	if strings.TrimSpace(jobDescription) == "" || fileHeader == nil {
		respond.Error(c, http.StatusBadRequest, msgRequired, nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, msgTooLarge, nil)
		return
	}

	mimeType := extract.DetectMimeType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if !extract.IsAllowedUploadType(mimeType) {
		respond.Error(c, http.StatusBadRequest, msgInvalidType, nil)
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, msgAnalyzeFailed, err.Error())
		return
	}

	ctx := c.Request.Context()
	resumeText, err := extract.ExtractText(ctx, data, mimeType)
	if err != nil {
		fileName, _ := util.SanitizeFileName(fileHeader.Filename)
		telemetry.Warn("analysis.extract_failed", map[string]any{
			"file_name": telemetry.Truncate(fileName, 120),
			"mime_type": mimeType,
			"size":      fileHeader.Size,
			"error":     err,
		})
		respond.Error(c, http.StatusInternalServerError, msgAnalyzeFailed, err.Error())
		return
	}

	result, sessionID, err := h.Svc.Analyze(ctx, jobDescription, resumeText)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, msgRequired, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, msgAnalyzeFailed, err.Error())
		return
	}

	c.Set(middleware.SessionIDKey, sessionID)
	respond.Success(c, gin.H{
		"analysis":  result,
		"sessionId": sessionID,
	})
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstFile(files []*multipart.FileHeader) *multipart.FileHeader {
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
