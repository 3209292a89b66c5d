package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	_ "golang.org/x/image/webp" // register decoder
)

// JPEGQuality is used for every image written by this package.
const JPEGQuality = 90

// Decode decodes JPEG, PNG, GIF or WebP bytes.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG encodes img as JPEG. Any alpha channel is dropped.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadImage reads and decodes the named asset.
func LoadImage(ctx context.Context, store Store, name string) (image.Image, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// SaveJPEG encodes img as JPEG and writes it under name.
func SaveJPEG(ctx context.Context, store Store, name string, img image.Image) error {
	data, err := EncodeJPEG(img)
	if err != nil {
		return err
	}
	return store.Write(ctx, name, data)
}
