package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// DefaultHuggingFaceBaseURL is the hosted inference API.
const DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFace generates text through the Hugging Face inference API.
type HuggingFace struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

// NewHuggingFace creates a client for model. An empty baseURL uses the hosted
// API and a nil client uses DefaultTimeout.
func NewHuggingFace(baseURL, apiKey, model string, client *http.Client) *HuggingFace {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	return &HuggingFace{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: 150,
		client:    newHTTPClient(client),
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type hfGeneration struct {
	GeneratedText *string `json:"generated_text"`
}

// GenerateText implements TextGenerator.
func (h *HuggingFace) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	payload := hfRequest{
		Inputs: "Write a " + req.Style + " message for the following prompt: " + req.Prompt +
			". Address the customer as " + req.Name + ".",
		Parameters: hfParameters{MaxNewTokens: h.maxTokens},
	}

	var out []hfGeneration
	if err := postJSON(ctx, h.client, "huggingface", "text generation", h.baseURL+"/models/"+h.model, h.apiKey, payload, &out); err != nil {
		return "", err
	}
	if len(out) == 0 || out[0].GeneratedText == nil {
		return "", &ServiceError{Provider: "huggingface", Op: "text generation", StatusCode: http.StatusOK, Err: errors.New("response could not be parsed")}
	}
	text := strings.TrimSpace(*out[0].GeneratedText)
	if text == "" {
		return "", &ServiceError{Provider: "huggingface", Op: "text generation", StatusCode: http.StatusOK, Err: errors.New("empty generated text")}
	}
	return text, nil
}
