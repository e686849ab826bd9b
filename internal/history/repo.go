package history

import "context"

// DefaultListLimit applies when callers pass a non-positive limit.
const DefaultListLimit = 20

// MaxListLimit caps a single ListRecent call.
const MaxListLimit = 100

// Repo archives analysis outcomes.
type Repo interface {
	Record(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
