package tracer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

var ErrEnvironmentChannels = errors.New("environment map must have three color channels")

// EnvironmentMap is a latitude/longitude panorama sampled by rays that leave the scene
type EnvironmentMap struct {
	Width  int
	Height int
	// Row major, indexed x + y*Width, channels in [0, 1]
	Pixels []pt.Color
}

// LoadEnvironmentMap decodes an image file into an EnvironmentMap
func LoadEnvironmentMap(path string) (*EnvironmentMap, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("loading environment map: %w", err)
	}
	env, err := NewEnvironmentMap(img)
	if err != nil {
		return nil, fmt.Errorf("loading environment map %s: %w", path, err)
	}
	return env, nil
}

// NewEnvironmentMap copies img into an EnvironmentMap. Grayscale images are rejected.
func NewEnvironmentMap(img image.Image) (*EnvironmentMap, error) {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return nil, ErrEnvironmentChannels
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("environment map is empty")
	}
	env := &EnvironmentMap{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: make([]pt.Color, b.Dx()*b.Dy()),
	}
	for y := 0; y < env.Height; y++ {
		for x := 0; x < env.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			env.Pixels[x+y*env.Width] = C(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		}
	}
	return env, nil
}

// NewUniformEnvironment returns a 1x1 map that is c in every direction
func NewUniformEnvironment(c pt.Color) *EnvironmentMap {
	return &EnvironmentMap{Width: 1, Height: 1, Pixels: []pt.Color{c}}
}

// GradientStop pins the sky color at a colatitude, in degrees from straight up
type GradientStop struct {
	Colatitude float64
	Color      pt.Color
}

// NewGradientEnvironment builds a sky that varies only with colatitude, linearly between stops.
func NewGradientEnvironment(width, height int, stops []GradientStop) (*EnvironmentMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gradient size %dx%d must be positive", width, height)
	}
	if len(stops) == 0 {
		return nil, errors.New("gradient needs at least one stop")
	}
	sorted := append([]GradientStop(nil), stops...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Colatitude < sorted[j].Colatitude
	})

	if len(sorted) == 1 {
		return &EnvironmentMap{Width: 1, Height: 1, Pixels: []pt.Color{sorted[0].Color}}, nil
	}

	x := make([]float64, len(sorted))
	r := make([]float64, len(sorted))
	g := make([]float64, len(sorted))
	b := make([]float64, len(sorted))
	for i, stop := range sorted {
		x[i] = stop.Colatitude
		r[i], g[i], b[i] = stop.Color.R, stop.Color.G, stop.Color.B
	}
	red := lin.Function{X: x, Y: r}
	green := lin.Function{X: x, Y: g}
	blue := lin.Function{X: x, Y: b}

	env := &EnvironmentMap{Width: width, Height: height, Pixels: make([]pt.Color, width*height)}
	for y := 0; y < height; y++ {
		colatitude := (float64(y) + 0.5) / float64(height) * 180
		colatitude = math.Max(x[0], math.Min(x[len(x)-1], colatitude))
		c := C(red.At(colatitude), green.At(colatitude), blue.At(colatitude))
		for x := 0; x < width; x++ {
			env.Pixels[x+y*width] = c
		}
	}
	return env, nil
}

func (e *EnvironmentMap) At(x, y int) pt.Color {
	return e.Pixels[x+y*e.Width]
}

// Sample returns the radiance arriving from direction dir, which must be normalized
func (e *EnvironmentMap) Sample(dir pt.Vector) pt.Color {
	longitude := math.Atan2(dir.Z, dir.X)
	colatitude := math.Acos(math.Max(-1, math.Min(1, dir.Y)))
	x := pixelIndex((longitude/(2*math.Pi)+0.5)*float64(e.Width), e.Width)
	y := pixelIndex(colatitude/math.Pi*float64(e.Height), e.Height)
	return e.At(x, y)
}

func pixelIndex(f float64, size int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= float64(size-1) {
		return size - 1
	}
	return int(f)
}
