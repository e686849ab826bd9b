package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedUploadTypes lists the media types accepted at the upload boundary.
// Word types are accepted there only to be rejected here with ErrUnsupportedFormat.
var AllowedUploadTypes = []string{MimePDF, MimeDOC, MimeDOCX, MimeText}

// ExtractText converts an uploaded payload into plain text based on its declared media type.
// Libraries used: github.com/ledongthuc/pdf (PDF).
func ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := NormalizeMimeType(mimeType)
	switch {
	case normalized == MimeText:
		return string(data), nil
	case normalized == MimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil
	case strings.Contains(normalized, "word"):
		return "", ErrUnsupportedFormat
	default:
		return string(data), nil
	}
}

// NormalizeMimeType lowercases the media type and drops parameters such as charset.
func NormalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// DetectMimeType returns the declared media type, falling back to the file extension
// when the client did not send one.
func DetectMimeType(declared, fileName string) string {
	clean := NormalizeMimeType(declared)
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return MimeText
	case ".pdf":
		return MimePDF
	case ".doc":
		return MimeDOC
	case ".docx":
		return MimeDOCX
	}
	if byExt := NormalizeMimeType(mime.TypeByExtension(filepath.Ext(fileName))); byExt != "" {
		return byExt
	}
	return clean
}

// IsAllowedUploadType reports whether the media type passes the upload filter.
func IsAllowedUploadType(mimeType string) bool {
	normalized := NormalizeMimeType(mimeType)
	for _, allowed := range AllowedUploadTypes {
		if normalized == allowed {
			return true
		}
	}
	return false
}

func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed streams.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf data")
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
