package llm

import (
	"context"
	"errors"
)

// Role names follow the Gemini content roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Client abstracts the text generation provider.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single generation call.
// ResponseSchema is set for structured (JSON) output and left nil for free-form text.
type Request struct {
	Model             string
	SystemInstruction string
	Messages          []Message
	ResponseSchema    *Schema
}

// Message is one conversation turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// SchemaType enumerates the field shapes a response schema may declare.
type SchemaType string

const (
	TypeObject  SchemaType = "OBJECT"
	TypeArray   SchemaType = "ARRAY"
	TypeString  SchemaType = "STRING"
	TypeNumber  SchemaType = "NUMBER"
	TypeInteger SchemaType = "INTEGER"
	TypeBoolean SchemaType = "BOOLEAN"
)

// Schema is a provider-neutral response shape contract.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	// PropertyOrdering keeps generated JSON keys in a stable order.
	PropertyOrdering []string
	Minimum          *float64
	Maximum          *float64
}

var (
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("llm returned empty response")
	// ErrNotConfigured is returned by PlaceholderClient.
	ErrNotConfigured = errors.New("llm client not configured")
)

// PlaceholderClient fails every call; it stands in when no API key is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// UserText builds a single-turn user message list.
func UserText(text string) []Message {
	return []Message{{Role: RoleUser, Text: text}}
}
