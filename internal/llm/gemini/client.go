package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/telemetry"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Client on top of the Google GenAI SDK.
type Client struct {
	models       contentGenerator
	defaultModel string
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, defaultModel string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, defaultModel), nil
}

func newClient(models contentGenerator, defaultModel string) *Client {
	return &Client{models: models, defaultModel: strings.TrimSpace(defaultModel)}
}

// Generate sends the request to Gemini and returns the response text.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	if c == nil || c.models == nil {
		return "", errors.New("gemini client is not initialized")
	}
	if len(req.Messages) == 0 {
		return "", errors.New("at least one message is required")
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.defaultModel
	}
	if model == "" {
		return "", errors.New("gemini model is required")
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	promptLen := 0
	for _, m := range req.Messages {
		contents = append(contents, genai.NewContentFromText(m.Text, toRole(m.Role)))
		promptLen += len(m.Text)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, model, contents, buildConfig(req))
	latency := time.Since(start)
	if err != nil {
		telemetry.Warn("gemini.generate.failed", map[string]any{
			"model":      model,
			"latency_ms": latency.Milliseconds(),
			"error":      err,
		})
		return "", classify(err)
	}

	text := responseText(resp)
	telemetry.Debug("gemini.generate", map[string]any{
		"model":           model,
		"messages":        len(contents),
		"prompt_length":   promptLen,
		"response_length": len(text),
		"structured":      req.ResponseSchema != nil,
		"latency_ms":      latency.Milliseconds(),
	})
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func buildConfig(req llm.Request) *genai.GenerateContentConfig {
	var cfg *genai.GenerateContentConfig
	if instr := strings.TrimSpace(req.SystemInstruction); instr != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		}
	}
	if req.ResponseSchema != nil {
		if cfg == nil {
			cfg = &genai.GenerateContentConfig{}
		}
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(req.ResponseSchema)
	}
	return cfg
}

func toRole(role string) genai.Role {
	if role == llm.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             genai.Type(s.Type),
		Description:      s.Description,
		Items:            toGenaiSchema(s.Items),
		Required:         append([]string(nil), s.Required...),
		PropertyOrdering: append([]string(nil), s.PropertyOrdering...),
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		builder.WriteString(part.Text)
	}
	return builder.String()
}

// classify tags rate-limit and server errors as transient so the retry wrapper can act on them.
func classify(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code = apiErrPtr.Code
	}
	if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
		return fmt.Errorf("gemini generate content: %w: %w", llm.ErrTransient, err)
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

var _ llm.Client = (*Client)(nil)
