// Package generator provides clients for external text and image generation services.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/sebasr/greeting-service/internal/assets"
)

// DefaultTimeout bounds a single outbound call when no client is supplied.
const DefaultTimeout = 60 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// TextRequest carries the inputs for a greeting message.
type TextRequest struct {
	Prompt string
	Name   string
	Style  string
}

// TextGenerator produces greeting text.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// ImageGenerator produces a greeting image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (image.Image, error)
}

// ServiceError describes a failed call to an external generation service.
type ServiceError struct {
	Provider   string
	Op         string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed with status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ImagePrompt turns a user prompt into an image prompt.
func ImagePrompt(prompt string) string {
	return prompt + ", professional festive greeting card design"
}

// SystemPrompt is the instruction given to chat models.
func SystemPrompt(style string) string {
	return "You are a professional communication assistant. " +
		"Generate polished, customer-friendly messages in a " + style + " tone. " +
		"Keep messages clear, positive, and appropriate for business or customer communication."
}

// UserPrompt is the user turn given to chat models.
func UserPrompt(req TextRequest) string {
	return "Prompt: " + req.Prompt + ". Address the customer as " + req.Name + "."
}

func newHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// postJSON sends payload with bearer auth and decodes a 2xx JSON response into out.
func postJSON(ctx context.Context, client *http.Client, provider, op, url, apiKey string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ServiceError{Provider: provider, Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &ServiceError{Provider: provider, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &ServiceError{Provider: provider, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ServiceError{Provider: provider, Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Provider: provider, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("response: %s", truncate(data, 200))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ServiceError{Provider: provider, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

// fetchImage downloads and decodes the image at url.
func fetchImage(ctx context.Context, client *http.Client, provider, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ServiceError{Provider: provider, Op: "image download", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &ServiceError{Provider: provider, Op: "image download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Provider: provider, Op: "image download", StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ServiceError{Provider: provider, Op: "image download", StatusCode: resp.StatusCode, Err: err}
	}
	img, err := assets.Decode(data)
	if err != nil {
		return nil, &ServiceError{Provider: provider, Op: "image download", StatusCode: resp.StatusCode, Err: err}
	}
	return img, nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
