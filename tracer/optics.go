package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// totalInternalReflection is returned by Refract when no refracted ray exists. It has no physical
// meaning; it only keeps the ray tree well defined.
var totalInternalReflection = V(1, 0, 0)

// Reflect mirrors incident about normal
func Reflect(incident, normal pt.Vector) pt.Vector {
	return incident.Sub(normal.MulScalar(2 * incident.Dot(normal)))
}

// Refract bends incident through a surface into a medium of index etaT, coming from air.
func Refract(incident, normal pt.Vector, etaT float64) pt.Vector {
	return RefractFrom(incident, normal, etaT, 1)
}

// RefractFrom applies Snell's law for a ray leaving a medium of index etaI for one of index etaT.
//
// normal is the outward normal. A ray arriving from inside the object is handled by flipping the
// normal and swapping the indices.
func RefractFrom(incident, normal pt.Vector, etaT, etaI float64) pt.Vector {
	cosi := -math.Max(-1, math.Min(1, incident.Dot(normal)))
	if cosi < 0 {
		return RefractFrom(incident, normal.Negate(), etaI, etaT)
	}
	eta := etaI / etaT
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return totalInternalReflection
	}
	return incident.MulScalar(eta).Add(normal.MulScalar(eta*cosi - math.Sqrt(k)))
}
