package history

import "time"

// Entry is an archived analysis outcome. It never carries resume or job text.
type Entry struct {
	SessionID    string    `json:"sessionId"`
	MatchScore   float64   `json:"matchScore"`
	Summary      string    `json:"summary"`
	MissingCount int       `json:"missingCount"`
	PresentCount int       `json:"presentCount"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"createdAt"`
}
