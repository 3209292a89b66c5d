// Package assets stores the static images served to clients.
package assets

import (
	"context"
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// GeneratedPrefix starts the name of every AI-generated image.
const GeneratedPrefix = "generated-"

var (
	// ErrNotFound is returned when an asset does not exist.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidName is returned for names that escape the store root.
	ErrInvalidName = errors.New("invalid asset name")
)

// Store is a blob store keyed by slash-separated file names.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Exists(ctx context.Context, name string) (bool, error)
}

// CleanName validates a client- or code-supplied asset name and returns its
// canonical form.
func CleanName(name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return "", ErrInvalidName
	}
	cleaned := path.Clean(name)
	if !filepath.IsLocal(filepath.FromSlash(cleaned)) {
		return "", ErrInvalidName
	}
	return cleaned, nil
}

// URL returns the public URL for an asset. baseURL may be empty, in which
// case a root-relative path is returned.
func URL(baseURL, name string) string {
	p := "/static/" + (&url.URL{Path: name}).EscapedPath()
	return strings.TrimSuffix(baseURL, "/") + p
}
