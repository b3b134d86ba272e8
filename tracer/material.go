package tracer

import (
	"github.com/fogleman/pt/pt"
)

// Albedo weights a surface's appearance across its four shading terms.
//
// The weights are not energy normalized; a mirror may well carry a specular weight of 10.
type Albedo struct {
	Diffuse  float64
	Specular float64
	Reflect  float64
	Refract  float64
}

type Material struct {
	// Only used for reporting
	Name             string
	RefractiveIndex  float64
	Albedo           Albedo
	DiffuseColor     pt.Color
	SpecularExponent float64
}

// DefaultMaterial is a purely diffuse black surface in air
var DefaultMaterial = Material{
	Name:            "default",
	RefractiveIndex: 1,
	Albedo:          Albedo{Diffuse: 1},
}

var (
	Ivory = Material{
		Name:             "ivory",
		RefractiveIndex:  1.0,
		Albedo:           Albedo{0.6, 0.3, 0.1, 0.0},
		DiffuseColor:     C(0.4, 0.4, 0.3),
		SpecularExponent: 50,
	}
	Glass = Material{
		Name:             "glass",
		RefractiveIndex:  1.5,
		Albedo:           Albedo{0.0, 0.5, 0.1, 0.8},
		DiffuseColor:     C(0.6, 0.7, 0.8),
		SpecularExponent: 125,
	}
	RedRubber = Material{
		Name:             "red_rubber",
		RefractiveIndex:  1.0,
		Albedo:           Albedo{0.9, 0.1, 0.0, 0.0},
		DiffuseColor:     C(0.3, 0.1, 0.1),
		SpecularExponent: 10,
	}
	Mirror = Material{
		Name:             "mirror",
		RefractiveIndex:  1.0,
		Albedo:           Albedo{0.0, 10.0, 0.8, 0.0},
		DiffuseColor:     C(1.0, 1.0, 1.0),
		SpecularExponent: 1425,
	}
)

// Presets maps preset names to the built in materials
var Presets = map[string]Material{
	Ivory.Name:     Ivory,
	Glass.Name:     Glass,
	RedRubber.Name: RedRubber,
	Mirror.Name:    Mirror,
}

// Light is a point light
type Light struct {
	Position  pt.Vector
	Intensity float64
}
