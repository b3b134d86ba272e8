package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Camera is a pinhole camera looking down -z
type Camera struct {
	Position pt.Vector
	Width    int
	Height   int
	// Vertical field of view in radians
	FOV float64
}

// DefaultCamera matches the reference scene: 1024x768, 60 degree field of view, eye at (0, 0, 3)
func DefaultCamera() Camera {
	return Camera{
		Position: V(0, 0, 3),
		Width:    1024,
		Height:   768,
		FOV:      math.Pi / 3,
	}
}

// Direction returns the normalized primary ray direction through the center of pixel (i, j).
// Row 0 is the top of the image.
func (c Camera) Direction(i, j int) pt.Vector {
	x := (float64(i) + 0.5) - float64(c.Width)/2
	y := -(float64(j) + 0.5) + float64(c.Height)/2
	z := -float64(c.Height) / (2 * math.Tan(c.FOV/2))
	return V(x, y, z).Normalize()
}
