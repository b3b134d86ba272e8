package tracer

import (
	"github.com/fogleman/pt/pt"
)

// IntersectBox reports whether the line through origin along dir crosses the box [bmin, bmax].
//
// Zero direction components divide to ±Inf (or NaN when the origin sits on a slab plane). The
// comparisons below then fail in a well defined way, so no special casing is needed.
func IntersectBox(origin, dir, bmin, bmax pt.Vector) bool {
	txmin := (bmin.X - origin.X) / dir.X
	txmax := (bmax.X - origin.X) / dir.X
	if txmin > txmax {
		txmin, txmax = txmax, txmin
	}

	tymin := (bmin.Y - origin.Y) / dir.Y
	tymax := (bmax.Y - origin.Y) / dir.Y
	if tymin > tymax {
		tymin, tymax = tymax, tymin
	}

	if txmin > tymax || tymin > txmax {
		return false
	}
	if tymin > txmin {
		txmin = tymin
	}
	if tymax < txmax {
		txmax = tymax
	}

	tzmin := (bmin.Z - origin.Z) / dir.Z
	tzmax := (bmax.Z - origin.Z) / dir.Z
	if tzmin > tzmax {
		tzmin, tzmax = tzmax, tzmin
	}

	if txmin > tzmax || tzmin > txmax {
		return false
	}
	return true
}
