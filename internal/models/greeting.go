// Package models contains data models for the greeting service.
package models

// Mode selects how a greeting is produced.
type Mode string

const (
	// ModeRule uses the fixed greeting templates.
	ModeRule Mode = "rule"
	// ModeLLM asks the external generation service first.
	ModeLLM Mode = "llm"
)

// Request defaults applied when fields are left empty.
const (
	DefaultName  = "Customer"
	DefaultStyle = "Formal"
)

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	return m == ModeRule || m == ModeLLM
}

// GenerationRequest is the body of POST /generate_message.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
	Mode   Mode   `json:"mode"`
	Name   string `json:"name,omitempty"`
	Style  string `json:"style,omitempty"`
}

// WithDefaults fills in the name, style and mode defaults.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	if r.Name == "" {
		r.Name = DefaultName
	}
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	if r.Mode == "" {
		r.Mode = ModeRule
	}
	return r
}

// GenerationResult is the response body of POST /generate_message.
type GenerationResult struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
}
