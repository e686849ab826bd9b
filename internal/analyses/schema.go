package analyses

import "resume-analyzer/internal/llm"

const (
	fieldMissingKeywords = "missing_keywords"
	fieldPresentKeywords = "present_keywords"
	fieldRecommendations = "recommendations"
	fieldMatchScore      = "match_score"
	fieldSummary         = "summary"

	MinMatchScore = 1.0
	MaxMatchScore = 100.0
)

var requiredFields = []string{
	fieldMissingKeywords,
	fieldPresentKeywords,
	fieldRecommendations,
	fieldMatchScore,
	fieldSummary,
}

// ResponseSchema returns the structured-output contract sent with every analysis request.
// A fresh value is built per call so callers may not mutate a shared schema.
func ResponseSchema() *llm.Schema {
	minScore, maxScore := MinMatchScore, MaxMatchScore
	stringList := func(desc string) *llm.Schema {
		return &llm.Schema{
			Type:        llm.TypeArray,
			Description: desc,
			Items:       &llm.Schema{Type: llm.TypeString},
		}
	}
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			fieldMissingKeywords: stringList("Essential job description keywords missing from the resume"),
			fieldPresentKeywords: stringList("Job description keywords present in the resume"),
			fieldRecommendations: stringList("Actionable advice to improve keyword alignment"),
			fieldMatchScore: {
				Type:        llm.TypeNumber,
				Description: "Keyword match score from 1 to 100",
				Minimum:     &minScore,
				Maximum:     &maxScore,
			},
			fieldSummary: {
				Type:        llm.TypeString,
				Description: "Two-sentence ATS-friendliness summary",
			},
		},
		Required:         append([]string(nil), requiredFields...),
		PropertyOrdering: append([]string(nil), requiredFields...),
	}
}
