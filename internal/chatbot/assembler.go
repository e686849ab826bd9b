package chatbot

import (
	"fmt"
	"strconv"
	"strings"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/sessions"
)

const personaPreamble = "You are a helpful AI assistant for a resume analysis application. \n" +
	"- Keep responses concise (2-3 sentences)\n" +
	"- Be professional\n" +
	"- You can help with any questions, resume-related or not"

var groundingInstructions = []string{
	"If asked about match score, explain based on the actual score",
	"If asked about missing keywords, provide specific suggestions",
	"If asked about improvements, reference the actual recommendations",
	"If asked about skills, suggest adding the missing keywords",
	"If asked about specific content, reference the actual resume text",
	"If asked about job requirements, reference the actual job description",
	"Always be specific and actionable based on the analysis data",
}

// SessionReader resolves a session id to its stored analysis context.
type SessionReader interface {
	Get(id string) (sessions.Record, bool)
}

// Turn is an assembled model request for one chatbot reply.
type Turn struct {
	SystemInstruction string
	Messages          []llm.Message
	// Grounded reports whether the session context was found and included.
	Grounded bool
}

// Assembler builds chatbot turns, grounding them in a stored analysis when one is referenced.
type Assembler struct {
	Sessions SessionReader
}

// BuildTurn maps history to model roles, appends message as the final user turn and
// builds the system instruction. An unknown or expired sessionID yields the persona alone.
func (a *Assembler) BuildTurn(message string, history []Message, sessionID string) (Turn, error) {
	if strings.TrimSpace(message) == "" {
		return Turn{}, ErrInvalidMessage
	}

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, h := range history {
		role := llm.RoleModel
		if h.Sender == SenderUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Text: h.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Text: message})

	turn := Turn{SystemInstruction: personaPreamble, Messages: msgs}
	if sessionID != "" && a.Sessions != nil {
		if rec, ok := a.Sessions.Get(sessionID); ok {
			turn.SystemInstruction = SystemInstruction(&rec)
			turn.Grounded = true
		}
	}
	return turn, nil
}

// SystemInstruction renders the persona and, when rec is non-nil, the analysis context block.
func SystemInstruction(rec *sessions.Record) string {
	if rec == nil {
		return personaPreamble
	}

	var b strings.Builder
	b.WriteString(personaPreamble)
	b.WriteString("\n\n**Current Resume Analysis Context:**\n")
	fmt.Fprintf(&b, "- Match Score: %s/100\n", formatScore(rec.Analysis.MatchScore))
	fmt.Fprintf(&b, "- Missing Keywords: %s\n", joinOrNone(rec.Analysis.MissingKeywords))
	fmt.Fprintf(&b, "- Present Keywords: %s\n", joinOrNone(rec.Analysis.PresentKeywords))
	summary := rec.Analysis.Summary
	if summary == "" {
		summary = "No summary available"
	}
	fmt.Fprintf(&b, "- Summary: %s\n", summary)
	b.WriteString("\n**Job Description:**\n")
	b.WriteString(rec.JobDescription)
	b.WriteString("\n\n**Resume Content:**\n")
	b.WriteString(rec.ResumeText)
	b.WriteString("\n\n**Instructions for Resume-Related Questions:**")
	for _, line := range groundingInstructions {
		b.WriteString("\n- ")
		b.WriteString(line)
	}
	return b.String()
}

func joinOrNone(list []string) string {
	if len(list) == 0 {
		return "None"
	}
	return strings.Join(list, ", ")
}

// formatScore prints whole scores without a decimal point (72, not 72.0).
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
