package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderSize is the edge length of seeded placeholder images.
const PlaceholderSize = 512

// Placeholder renders a gradient card with a small label strip.
func Placeholder(width, height int, label string) *image.RGBA {
	if width <= 0 {
		width = PlaceholderSize
	}
	if height <= 0 {
		height = PlaceholderSize
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8((x + y) % 255)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	if label != "" && height > 40 && width > 40 {
		strip := image.Rect(20, height-40, width-20, height-16)
		draw.Draw(img, strip, image.NewUniform(color.RGBA{R: 12, G: 14, B: 18, A: 200}), image.Point{}, draw.Over)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{R: 240, G: 196, B: 120, A: 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(28, height-23),
		}
		d.DrawString(label)
	}
	return img
}

// EnsurePlaceholders writes a placeholder JPEG for every name that is not yet
// in the store and returns the names it created.
func EnsurePlaceholders(ctx context.Context, store Store, names []string) ([]string, error) {
	var created []string
	for _, name := range names {
		ok, err := store.Exists(ctx, name)
		if err != nil {
			return created, fmt.Errorf("failed to check asset %s: %w", name, err)
		}
		if ok {
			continue
		}
		if err := SaveJPEG(ctx, store, name, Placeholder(PlaceholderSize, PlaceholderSize, name)); err != nil {
			return created, err
		}
		created = append(created, name)
	}
	return created, nil
}
