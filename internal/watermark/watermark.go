// Package watermark stamps a rotated, semi-transparent text overlay onto images.
package watermark

import (
	"errors"
	"image"
	"image/color"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultAngle is the counter-clockwise overlay rotation in degrees.
	DefaultAngle = 30.0
	// DefaultOpacity is the alpha of the text fill.
	DefaultOpacity = 100
)

// ErrEmptyImage is returned when the source image has no pixels.
var ErrEmptyImage = errors.New("watermark: source image is empty")

// Options controls how the overlay is drawn.
type Options struct {
	// FontPath points at a TTF/OTF file. Empty or unreadable paths fall back
	// to the embedded Go Bold font.
	FontPath string
	// Angle in degrees, counter-clockwise. Zero means DefaultAngle.
	Angle float64
	// Opacity of the white text fill. Zero means DefaultOpacity.
	Opacity uint8
	// Background is painted under everything when flattening. Nil means black.
	Background color.Color
	// KeepSize crops the result back to the source dimensions.
	KeepSize bool
}

func (o Options) angle() float64 {
	if o.Angle == 0 {
		return DefaultAngle
	}
	return o.Angle
}

func (o Options) opacity() uint8 {
	if o.Opacity == 0 {
		return DefaultOpacity
	}
	return o.Opacity
}

func (o Options) background() color.Color {
	if o.Background == nil {
		return color.Black
	}
	return o.Background
}

// Apply draws text centered on src, rotates the text layer and composites it
// over src. The returned image is fully opaque: src alpha is discarded, not
// blended with the background. Unless KeepSize is set its bounds grow to fit
// the rotated overlay, and the margin is filled with the background.
func Apply(src image.Image, text string, opts Options) (*image.RGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	size := min(w, h) / 10
	if size < 1 {
		size = 1
	}
	face := LoadFace(opts.FontPath, float64(size))
	defer face.Close()

	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	if text != "" {
		drawCentered(overlay, face, text, color.NRGBA{R: 255, G: 255, B: 255, A: opts.opacity()})
	}

	rotated := rotate(overlay, opts.angle())
	rb := rotated.Bounds()

	cw, ch := max(w, rb.Dx()), max(h, rb.Dy())
	canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.background()), image.Point{}, draw.Src)
	draw.Draw(canvas, centeredRect(cw, ch, w, h), opaque(src), b.Min, draw.Src)
	draw.Draw(canvas, centeredRect(cw, ch, rb.Dx(), rb.Dy()), rotated, rb.Min, draw.Over)

	if !opts.KeepSize {
		return canvas, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), canvas, centeredRect(cw, ch, w, h).Min, draw.Src)
	return out, nil
}

// opaque returns src with its straight color channels kept and alpha set to 255.
func opaque(src image.Image) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// LoadFace opens the font at path at the given size. It never fails: an
// unusable path falls back to Go Bold and then to the fixed 7x13 face.
func LoadFace(path string, size float64) font.Face {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if face, err := parseFace(data, size); err == nil {
				return face
			}
		}
	}
	if face, err := parseFace(gobold.TTF, size); err == nil {
		return face
	}
	return basicfont.Face7x13
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawCentered places the text's bounding box in the middle of dst.
func drawCentered(dst draw.Image, face font.Face, text string, fill color.Color) {
	bounds, _ := font.BoundString(face, text)
	tw := (bounds.Max.X - bounds.Min.X).Ceil()
	th := (bounds.Max.Y - bounds.Min.Y).Ceil()

	db := dst.Bounds()
	x := db.Min.X + (db.Dx()-tw)/2
	y := db.Min.Y + (db.Dy()-th)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fill),
		Face: face,
		// Dot is the baseline origin; shift so the box's top-left lands on (x, y).
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(text)
}

// rotate turns src counter-clockwise by deg degrees around its center and
// expands the canvas so nothing is clipped.
func rotate(src image.Image, deg float64) *image.RGBA {
	sb := src.Bounds()
	rw, rh := RotatedSize(sb.Dx(), sb.Dy(), deg)
	dst := image.NewRGBA(image.Rect(0, 0, rw, rh))

	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	sx := float64(sb.Min.X) + float64(sb.Dx())/2
	sy := float64(sb.Min.Y) + float64(sb.Dy())/2
	dx, dy := float64(rw)/2, float64(rh)/2

	// Image y grows downward, so this matrix turns the picture counter-clockwise.
	m := f64.Aff3{
		cos, sin, dx - (cos*sx + sin*sy),
		-sin, cos, dy - (-sin*sx + cos*sy),
	}
	draw.BiLinear.Transform(dst, m, src, sb, draw.Over, nil)
	return dst
}

// RotatedSize returns the bounding box of a w x h rectangle rotated by deg degrees.
func RotatedSize(w, h int, deg float64) (int, int) {
	rad := deg * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	fw := float64(w)*cos + float64(h)*sin
	fh := float64(w)*sin + float64(h)*cos
	// Trim float noise so 0/90 degree rotations keep exact sizes.
	return int(math.Ceil(fw - 1e-9)), int(math.Ceil(fh - 1e-9))
}

func centeredRect(outerW, outerH, w, h int) image.Rectangle {
	x := (outerW - w) / 2
	y := (outerH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
