package tracer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/pt/pt"
	"github.com/nfnt/resize"
)

// Framebuffer holds unclamped radiance, one color per pixel, row major
type Framebuffer struct {
	Width  int
	Height int
	Pix    []pt.Color
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]pt.Color, width*height),
	}
}

// Row returns the pixels of row j. Writes through the slice land in the framebuffer.
func (fb *Framebuffer) Row(j int) []pt.Color {
	return fb.Pix[j*fb.Width : (j+1)*fb.Width]
}

func (fb *Framebuffer) At(i, j int) pt.Color {
	return fb.Pix[i+j*fb.Width]
}

func finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return 1
	case math.IsInf(v, -1):
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ToneMap brings radiance into [0, 1]. When the brightest channel exceeds 1 all three are scaled
// down together so the hue survives. NaN channels become 0.
func ToneMap(c pt.Color) pt.Color {
	c = C(finite(c.R), finite(c.G), finite(c.B))
	brightest := math.Max(c.R, math.Max(c.G, c.B))
	if brightest > 1 {
		c = c.MulScalar(1 / brightest)
	}
	return C(clamp01(c.R), clamp01(c.G), clamp01(c.B))
}

// Quantize tone maps c and converts it to 8 bit samples
func Quantize(c pt.Color) [3]uint8 {
	c = ToneMap(c)
	return [3]uint8{uint8(255 * c.R), uint8(255 * c.G), uint8(255 * c.B)}
}

// Image tone maps the framebuffer into an opaque 8 bit image
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			s := Quantize(fb.At(i, j))
			img.SetNRGBA(i, j, color.NRGBA{R: s[0], G: s[1], B: s[2], A: 255})
		}
	}
	return img
}

// Save encodes the framebuffer to path. The format follows the file extension; JPEGs are written
// at full quality.
func (fb *Framebuffer) Save(path string) error {
	if err := imaging.Save(fb.Image(), path, imaging.JPEGQuality(100)); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}
	return nil
}

// Thumbnail returns a preview no larger than maxWidth x maxHeight, preserving aspect ratio
func (fb *Framebuffer) Thumbnail(maxWidth, maxHeight int) image.Image {
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), fb.Image(), resize.Lanczos3)
}

// SaveThumbnail writes a preview whose longest side is at most maxSide pixels
func (fb *Framebuffer) SaveThumbnail(path string, maxSide int) error {
	if err := imaging.Save(fb.Thumbnail(maxSide, maxSide), path, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("saving thumbnail: %w", err)
	}
	return nil
}
