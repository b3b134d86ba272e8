package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Checkerboard is a horizontal plane restricted to a rectangle, tiled in two colors.
type Checkerboard struct {
	// The plane is y = Height
	Height float64
	// Hits are kept when |x| < XExtent and ZFar < z < ZNear
	XExtent float64
	ZNear   float64
	ZFar    float64
	// Base supplies everything but the diffuse color, which is chosen per hit
	Base Material
	Even pt.Color
	Odd  pt.Color
}

// DefaultCheckerboard is the floor of the reference scene
func DefaultCheckerboard() *Checkerboard {
	base := DefaultMaterial
	base.Name = "checkerboard"
	return &Checkerboard{
		Height:  -4,
		XExtent: 10,
		ZNear:   -10,
		ZFar:    -30,
		Base:    base,
		Even:    C(0.3, 0.2, 0.1),
		Odd:     C(0.3, 0.3, 0.3),
	}
}

const parallelEpsilon = 1e-3

func (c *Checkerboard) ColorAt(p pt.Vector) pt.Color {
	if (int(math.Floor(0.5*p.X))+int(math.Floor(0.5*p.Z)))&1 == 1 {
		return c.Odd
	}
	return c.Even
}

// Hit implements Intersectable
func (c *Checkerboard) Hit(origin, dir pt.Vector) (Hit, bool) {
	if math.Abs(dir.Y) <= parallelEpsilon {
		return Hit{}, false
	}
	d := -(origin.Y - c.Height) / dir.Y
	p := origin.Add(dir.MulScalar(d))
	if d <= 0 || math.Abs(p.X) >= c.XExtent || p.Z >= c.ZNear || p.Z <= c.ZFar {
		return Hit{}, false
	}
	m := c.Base
	m.DiffuseColor = c.ColorAt(p)
	return Hit{
		T:        d,
		Point:    p,
		Normal:   V(0, 1, 0),
		Material: m,
		Category: CategoryPlane,
	}, true
}
