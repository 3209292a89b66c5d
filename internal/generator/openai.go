package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"image"
	"net/http"
	"strings"

	"github.com/sebasr/greeting-service/internal/assets"
)

const (
	// DefaultOpenAIBaseURL is the public OpenAI API. Any compatible endpoint works.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAITextModel is used when no text model is configured.
	DefaultOpenAITextModel = "gpt-4o-mini"
	// DefaultOpenAIImageModel is used when no image model is configured.
	DefaultOpenAIImageModel = "gpt-image-1"
	// OpenAIImageSize is the requested image resolution.
	OpenAIImageSize = "512x512"
)

// OpenAI talks to an OpenAI-compatible chat completions and images API.
type OpenAI struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	client     *http.Client
}

// NewOpenAI creates a client. Empty values use the package defaults.
func NewOpenAI(baseURL, apiKey, textModel, imageModel string, client *http.Client) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if textModel == "" {
		textModel = DefaultOpenAITextModel
	}
	if imageModel == "" {
		imageModel = DefaultOpenAIImageModel
	}
	return &OpenAI{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		client:     newHTTPClient(client),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GenerateText implements TextGenerator.
func (o *OpenAI) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	payload := chatRequest{
		Model: o.textModel,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(req.Style)},
			{Role: "user", Content: UserPrompt(req)},
		},
	}

	var out chatResponse
	if err := postJSON(ctx, o.client, "openai", "chat completion", o.baseURL+"/chat/completions", o.apiKey, payload, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", &ServiceError{Provider: "openai", Op: "chat completion", StatusCode: http.StatusOK, Err: errors.New("no choices in response")}
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", &ServiceError{Provider: "openai", Op: "chat completion", StatusCode: http.StatusOK, Err: errors.New("empty message content")}
	}
	return text, nil
}

// GenerateImage implements ImageGenerator. URL responses are downloaded,
// base64 responses are decoded in place.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (image.Image, error) {
	payload := imageRequest{
		Model:  o.imageModel,
		Prompt: prompt,
		Size:   OpenAIImageSize,
		N:      1,
	}

	var out imageResponse
	if err := postJSON(ctx, o.client, "openai", "image generation", o.baseURL+"/images/generations", o.apiKey, payload, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, &ServiceError{Provider: "openai", Op: "image generation", StatusCode: http.StatusOK, Err: errors.New("no image in response")}
	}

	item := out.Data[0]
	switch {
	case item.URL != "":
		return fetchImage(ctx, o.client, "openai", item.URL)
	case item.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, &ServiceError{Provider: "openai", Op: "image generation", StatusCode: http.StatusOK, Err: err}
		}
		img, err := assets.Decode(data)
		if err != nil {
			return nil, &ServiceError{Provider: "openai", Op: "image generation", StatusCode: http.StatusOK, Err: err}
		}
		return img, nil
	default:
		return nil, &ServiceError{Provider: "openai", Op: "image generation", StatusCode: http.StatusOK, Err: errors.New("image has neither url nor b64_json")}
	}
}
