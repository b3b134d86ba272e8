//go:build verify_optics
// +build verify_optics

package tracer

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

const angleEpsilon = 1e-6

func init() {
	fmt.Println("Optics verification enabled.")
}

// verifyReflection checks that reflecting the reflected ray gives back the incident ray
func verifyReflection(incident, normal, reflected pt.Vector) {
	back := Reflect(reflected, normal)
	if back.Sub(incident.Normalize()).Length() > angleEpsilon {
		panic(fmt.Sprintf("reflection is not its own inverse: %v -> %v -> %v", incident, reflected, back))
	}
}

func verifyRadiance(c pt.Color) {
	for _, v := range []float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			panic(fmt.Sprintf("non-finite radiance %v", c))
		}
	}
}
