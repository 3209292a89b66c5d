package generator

import (
	"context"
	"image"
	"sync"
)

// Mock is a scripted TextGenerator and ImageGenerator for tests.
// It records every call it receives.
type Mock struct {
	mu sync.Mutex

	Text     string
	TextErr  error
	Image    image.Image
	ImageErr error

	TextCalls  []TextRequest
	ImageCalls []string
}

// NewMock creates a mock that returns text and img.
func NewMock(text string, img image.Image) *Mock {
	return &Mock{Text: text, Image: img}
}

// GenerateText records the request and returns the scripted text or error.
func (m *Mock) GenerateText(_ context.Context, req TextRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextCalls = append(m.TextCalls, req)
	if m.TextErr != nil {
		return "", m.TextErr
	}
	return m.Text, nil
}

// GenerateImage records the prompt and returns the scripted image or error.
func (m *Mock) GenerateImage(_ context.Context, prompt string) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageCalls = append(m.ImageCalls, prompt)
	if m.ImageErr != nil {
		return nil, m.ImageErr
	}
	return m.Image, nil
}

// GetTextCalls returns a copy of the recorded text requests.
func (m *Mock) GetTextCalls() []TextRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]TextRequest, len(m.TextCalls))
	copy(calls, m.TextCalls)
	return calls
}

// GetImageCalls returns a copy of the recorded image prompts.
func (m *Mock) GetImageCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.ImageCalls))
	copy(calls, m.ImageCalls)
	return calls
}
