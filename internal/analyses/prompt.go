package analyses

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/analysis.tmpl
var analysisPromptText string

var analysisPrompt = template.Must(template.New("analysis").Parse(analysisPromptText))

type promptInput struct {
	JobDescription string
	ResumeText     string
}

// BuildPrompt renders the analysis instruction with both texts embedded verbatim.
func BuildPrompt(jobDescription, resumeText string) (string, error) {
	var b strings.Builder
	if err := analysisPrompt.Execute(&b, promptInput{
		JobDescription: jobDescription,
		ResumeText:     resumeText,
	}); err != nil {
		return "", err
	}
	return b.String(), nil
}
