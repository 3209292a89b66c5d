package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/sebasr/greeting-service/internal/assets"
)

const (
	// DefaultGeminiTextModel is used when no text model is configured.
	DefaultGeminiTextModel = "gemini-2.0-flash"
	// DefaultGeminiImageModel is used when no image model is configured.
	DefaultGeminiImageModel = "gemini-2.5-flash-image"
)

// Gemini generates text and images with the Google GenAI SDK.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGemini creates a Gemini API client. A nil httpClient uses DefaultTimeout.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel string, httpClient *http.Client) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(httpClient),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if textModel == "" {
		textModel = DefaultGeminiTextModel
	}
	if imageModel == "" {
		imageModel = DefaultGeminiImageModel
	}
	return &Gemini{client: client, textModel: textModel, imageModel: imageModel}, nil
}

// GenerateText implements TextGenerator.
func (g *Gemini) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(req.Style), genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(UserPrompt(req)), config)
	if err != nil {
		return "", geminiError("text generation", err)
	}
	text, err := textFromResponse(result)
	if err != nil {
		return "", geminiError("text generation", err)
	}
	return text, nil
}

// GenerateImage implements ImageGenerator.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (image.Image, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, geminiError("image generation", err)
	}
	img, err := imageFromResponse(result)
	if err != nil {
		return nil, geminiError("image generation", err)
	}
	return img, nil
}

// geminiError wraps err, keeping the HTTP status of an API error.
func geminiError(op string, err error) *ServiceError {
	se := &ServiceError{Provider: "gemini", Op: op, Err: err}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		se.StatusCode = apiErr.Code
	}
	return se
}

func firstParts(result *genai.GenerateContentResponse) ([]*genai.Part, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, errors.New("no candidates in response")
	}
	return result.Candidates[0].Content.Parts, nil
}

func textFromResponse(result *genai.GenerateContentResponse) (string, error) {
	parts, err := firstParts(result)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, part := range parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no text in response")
	}
	return text, nil
}

func imageFromResponse(result *genai.GenerateContentResponse) (image.Image, error) {
	parts, err := firstParts(result)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return assets.Decode(part.InlineData.Data)
	}
	return nil, errors.New("no image data found in response")
}
