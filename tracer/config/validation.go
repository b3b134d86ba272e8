package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jdginn/go-raytracer/tracer"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateColor(field string, c [3]float64) []ValidationError {
	var errors []ValidationError
	for i, v := range c {
		errors = append(errors, validateInRange(fmt.Sprintf("%s[%d]", field, i), v, 0, 1)...)
	}
	return errors
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by top level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		category = strings.Split(category, "[")[0]
		categories[category] = append(categories[category], err)
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, category := range names {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *SceneConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Input.Validate(&c.Materials)...)
	errors = append(errors, c.Materials.Validate()...)
	errors = append(errors, c.Camera.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	for i, s := range c.Spheres {
		errors = append(errors, s.Validate(fmt.Sprintf("spheres[%d]", i), &c.Materials)...)
	}
	if c.Composite != nil {
		errors = append(errors, c.Composite.A.Validate("composite.a", &c.Materials)...)
		errors = append(errors, c.Composite.B.Validate("composite.b", &c.Materials)...)
	}
	if c.Checkerboard != nil {
		errors = append(errors, c.Checkerboard.Validate()...)
	}
	for i, l := range c.Lights {
		errors = append(errors, validateNonNegative(fmt.Sprintf("lights[%d].intensity", i), l.Intensity)...)
	}
	return errors
}

// HasMaterial reports whether name is defined inline or is a built in preset
func (m *Materials) HasMaterial(name string) bool {
	if _, exists := m.Inline[name]; exists {
		return true
	}
	_, exists := tracer.Presets[name]
	return exists
}

func (m *Materials) Validate() []ValidationError {
	var errors []ValidationError
	for name, material := range m.Inline {
		field := fmt.Sprintf("materials.inline.%s", name)
		errors = append(errors, validatePositive(field+".refractive_index", material.RefractiveIndex)...)
		errors = append(errors, validateNonNegative(field+".specular_exponent", material.SpecularExponent)...)
		errors = append(errors, validateColor(field+".diffuse_color", material.DiffuseColor)...)
		for i, w := range material.Albedo {
			errors = append(errors, validateNonNegative(fmt.Sprintf("%s.albedo[%d]", field, i), w)...)
		}
	}
	return errors
}

func (i *Input) Validate(materials *Materials) []ValidationError {
	var errors []ValidationError

	env := i.EnvironmentMap
	switch {
	case env.Path == "" && len(env.Gradient) == 0:
		errors = append(errors, ValidationError{
			Field:   "input.environment_map",
			Message: "either path or gradient must be specified",
		})
	case env.Path != "" && len(env.Gradient) > 0:
		errors = append(errors, ValidationError{
			Field:   "input.environment_map",
			Message: "path and gradient are mutually exclusive",
		})
	}
	for n, stop := range env.Gradient {
		field := fmt.Sprintf("input.environment_map.gradient[%d]", n)
		errors = append(errors, validateInRange(field+".colatitude", stop.Colatitude, 0, 180)...)
		errors = append(errors, validateColor(field+".color", stop.Color)...)
	}

	if i.Mesh != nil {
		if i.Mesh.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "input.mesh.path",
				Message: "mesh path is required",
			})
		}
		errors = append(errors, validateNonNegative("input.mesh.scale", i.Mesh.Scale)...)
		if i.Mesh.Material != "" && !materials.HasMaterial(i.Mesh.Material) {
			errors = append(errors, ValidationError{
				Field:   "input.mesh.material",
				Message: fmt.Sprintf("references undefined material '%s'", i.Mesh.Material),
			})
		}
		if box := i.Mesh.FitInside; box != nil {
			for axis := 0; axis < 3; axis++ {
				if box[0][axis] >= box[1][axis] {
					errors = append(errors, ValidationError{
						Field:   "input.mesh.fit_inside",
						Message: "min corner must be below max corner on every axis",
					})
					break
				}
			}
		}
	}

	return errors
}

func (c *Camera) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("camera.width", float64(c.Width))...)
	errors = append(errors, validatePositive("camera.height", float64(c.Height))...)
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		errors = append(errors, ValidationError{
			Field:   "camera.fov_degrees",
			Message: "must be between 0 and 180 exclusive",
		})
	}
	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("render.max_depth", float64(r.MaxDepth))...)
	errors = append(errors, validateNonNegative("render.workers", float64(r.Workers))...)
	errors = append(errors, validateNonNegative("render.thumbnail", float64(r.Thumbnail))...)
	if r.Output == "" {
		errors = append(errors, ValidationError{
			Field:   "render.output",
			Message: "output path is required",
		})
	}
	return errors
}

func (s *Sphere) Validate(field string, materials *Materials) []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive(field+".radius", s.Radius)...)
	if !materials.HasMaterial(s.Material) {
		errors = append(errors, ValidationError{
			Field:   field + ".material",
			Message: fmt.Sprintf("references undefined material '%s'", s.Material),
		})
	}
	return errors
}

func (cb *Checkerboard) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("checkerboard.x_extent", cb.XExtent)...)
	if cb.ZFar >= cb.ZNear {
		errors = append(errors, ValidationError{
			Field:   "checkerboard.z_far",
			Message: "must be below z_near",
		})
	}
	errors = append(errors, validateColor("checkerboard.even", cb.Even)...)
	errors = append(errors, validateColor("checkerboard.odd", cb.Odd)...)
	return errors
}
