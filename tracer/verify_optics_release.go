//go:build !verify_optics
// +build !verify_optics

package tracer

import "github.com/fogleman/pt/pt"

// Empty stubs that will be optimized out
func verifyReflection(incident, normal, reflected pt.Vector) {}

func verifyRadiance(c pt.Color) {}
