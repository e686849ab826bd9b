package extract

import "errors"

var (
	// ErrUnsupportedFormat is returned for word-processor documents, which are not parsed.
	ErrUnsupportedFormat = errors.New("DOC/DOCX text extraction not implemented. Please convert to TXT format")
	// ErrExtractionFailed collapses every PDF parsing failure; no partial text is returned.
	ErrExtractionFailed = errors.New("failed to extract text from PDF")
)
