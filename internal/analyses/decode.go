package analyses

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"resume-analyzer/internal/shared/telemetry"
)

// DecodeResult parses a model reply into a Result and enforces the response contract.
// Every required field must be present and match_score must be finite; a score outside
// [1,100] is clamped rather than rejected. Missing lists come back empty, never nil.
func DecodeResult(raw string) (Result, error) {
	clean := stripCodeFence(raw)
	if clean == "" {
		return Result{}, fmt.Errorf("%w: empty response", ErrSchemaViolation)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return Result{}, fmt.Errorf("parse analysis json: %w", err)
	}
	for _, name := range requiredFields {
		value, ok := fields[name]
		if !ok || string(value) == "null" {
			return Result{}, fmt.Errorf("%w: missing %s", ErrSchemaViolation, name)
		}
	}

	var wire struct {
		MissingKeywords []string `json:"missing_keywords"`
		PresentKeywords []string `json:"present_keywords"`
		Recommendations []string `json:"recommendations"`
		MatchScore      float64  `json:"match_score"`
		Summary         string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if math.IsNaN(wire.MatchScore) || math.IsInf(wire.MatchScore, 0) {
		return Result{}, fmt.Errorf("%w: match_score is not finite", ErrSchemaViolation)
	}
	score := clampScore(wire.MatchScore)
	if score != wire.MatchScore {
		telemetry.Warn("analysis.score_clamped", map[string]any{
			"reported": wire.MatchScore,
			"clamped":  score,
		})
	}

	return Result{
		MissingKeywords: nonNil(wire.MissingKeywords),
		PresentKeywords: nonNil(wire.PresentKeywords),
		Recommendations: nonNil(wire.Recommendations),
		MatchScore:      score,
		Summary:         wire.Summary,
	}, nil
}

func clampScore(score float64) float64 {
	return math.Min(MaxMatchScore, math.Max(MinMatchScore, score))
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// stripCodeFence removes a ```json fence some model versions wrap around structured output.
func stripCodeFence(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
