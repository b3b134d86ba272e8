package tracer

import (
	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// C is a shorthand constructor for pt.Color
func C(R, G, B float64) pt.Color {
	return pt.Color{R: R, G: G, B: B}
}

// offset nudges p off a surface along n, towards the side dir points into.
func offset(p, dir, n pt.Vector) pt.Vector {
	if dir.Dot(n) < 0 {
		return p.Sub(n.MulScalar(surfaceEpsilon))
	}
	return p.Add(n.MulScalar(surfaceEpsilon))
}
