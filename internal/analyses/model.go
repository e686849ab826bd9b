package analyses

import "resume-analyzer/internal/sessions"

// Result is the structured analysis returned to clients.
type Result struct {
	MissingKeywords []string `json:"missing_keywords"`
	PresentKeywords []string `json:"present_keywords"`
	Recommendations []string `json:"recommendations"`
	MatchScore      float64  `json:"match_score"`
	Summary         string   `json:"summary"`
}

func (r Result) toSession() sessions.Analysis {
	return sessions.Analysis{
		MissingKeywords: append([]string(nil), r.MissingKeywords...),
		PresentKeywords: append([]string(nil), r.PresentKeywords...),
		Recommendations: append([]string(nil), r.Recommendations...),
		MatchScore:      r.MatchScore,
		Summary:         r.Summary,
	}
}
