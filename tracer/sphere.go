package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

type Sphere struct {
	Center   pt.Vector
	Radius   float64
	Material Material
}

// Intersect2 returns both distances at which the ray crosses the sphere.
//
// dir must be normalized. t0 <= t1 always holds. The call only fails when the ray misses the
// sphere or when the sphere lies entirely behind the origin, so t0 may be negative.
func (s Sphere) Intersect2(origin, dir pt.Vector) (t0, t1 float64, ok bool) {
	l := s.Center.Sub(origin)
	tca := l.Dot(dir)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0 = tca - thc
	t1 = tca + thc
	if t0 < 0 && t1 < 0 {
		return 0, 0, false
	}
	return t0, t1, true
}

// Intersect returns the nearest non-negative distance at which the ray hits the sphere
func (s Sphere) Intersect(origin, dir pt.Vector) (float64, bool) {
	t0, t1, ok := s.Intersect2(origin, dir)
	if !ok {
		return 0, false
	}
	if t0 < 0 {
		t0 = t1
	}
	return t0, true
}

func (s Sphere) normalAt(p pt.Vector) pt.Vector {
	return p.Sub(s.Center).Normalize()
}

// Hit implements Intersectable
func (s Sphere) Hit(origin, dir pt.Vector) (Hit, bool) {
	t, ok := s.Intersect(origin, dir)
	if !ok {
		return Hit{}, false
	}
	p := origin.Add(dir.MulScalar(t))
	return Hit{
		T:        t,
		Point:    p,
		Normal:   s.normalAt(p),
		Material: s.Material,
		Category: CategorySphere,
	}, true
}

// CompositeSolid approximates sphere A with a bite taken out of it by sphere B.
//
// This is a visual carve-out rather than a boolean subtraction: the reported surface is chosen by
// comparing distances along the ray, and the surface always shades like A.
type CompositeSolid struct {
	A, B Sphere
}

func (c CompositeSolid) Intersect(origin, dir pt.Vector) (float64, bool) {
	t0a, t1a, ok := c.A.Intersect2(origin, dir)
	if !ok {
		return 0, false
	}
	if t0a < 0 {
		t0a = t1a
	}

	t0b, t1b, ok := c.B.Intersect2(origin, dir)
	if !ok {
		return t0a, true
	}

	t := t1b
	if t0b > t0a {
		t = t0b
	}
	// Falls outside A altogether, so A's own surface is what we see
	if t > t0a && t > t1a {
		t = t0a
	}
	return t, true
}

// Hit implements Intersectable
func (c CompositeSolid) Hit(origin, dir pt.Vector) (Hit, bool) {
	t, ok := c.Intersect(origin, dir)
	if !ok {
		return Hit{}, false
	}
	p := origin.Add(dir.MulScalar(t))
	return Hit{
		T:        t,
		Point:    p,
		Normal:   c.A.normalAt(p),
		Material: c.A.Material,
		Category: CategoryComposite,
	}, true
}
