package analyses

import "errors"

var (
	// ErrValidation means a required input was missing or blank.
	ErrValidation = errors.New("job description and resume text are required")
	// ErrAnalysisFailed wraps model and decode failures.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrSchemaViolation means the model reply parsed but broke the response contract.
	ErrSchemaViolation = errors.New("analysis response violates schema")
)
