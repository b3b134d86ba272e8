package config

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-raytracer/tracer"
)

func vec(v [3]float64) pt.Vector {
	return tracer.V(v[0], v[1], v[2])
}

func col(c [3]float64) pt.Color {
	return tracer.C(c[0], c[1], c[2])
}

// Create converts a config material to a tracer material
func (m Material) Create(name string) tracer.Material {
	return tracer.Material{
		Name:             name,
		RefractiveIndex:  m.RefractiveIndex,
		Albedo:           tracer.Albedo{Diffuse: m.Albedo[0], Specular: m.Albedo[1], Reflect: m.Albedo[2], Refract: m.Albedo[3]},
		DiffuseColor:     col(m.DiffuseColor),
		SpecularExponent: m.SpecularExponent,
	}
}

// Lookup resolves a material name, preferring inline definitions over presets
func (m *Materials) Lookup(name string) (tracer.Material, error) {
	if material, ok := m.Inline[name]; ok {
		return material.Create(name), nil
	}
	if material, ok := tracer.Presets[name]; ok {
		return material, nil
	}
	return tracer.Material{}, fmt.Errorf("undefined material '%s'", name)
}

func (s Sphere) Create(materials *Materials) (tracer.Sphere, error) {
	material, err := materials.Lookup(s.Material)
	if err != nil {
		return tracer.Sphere{}, err
	}
	return tracer.Sphere{Center: vec(s.Center), Radius: s.Radius, Material: material}, nil
}

func (c Camera) Create() tracer.Camera {
	return tracer.Camera{
		Position: vec(c.Position),
		Width:    c.Width,
		Height:   c.Height,
		FOV:      c.FOVDegrees * math.Pi / 180,
	}
}

func (cb Checkerboard) Create() *tracer.Checkerboard {
	floor := tracer.DefaultCheckerboard()
	floor.Height = cb.Height
	floor.XExtent = cb.XExtent
	floor.ZNear = cb.ZNear
	floor.ZFar = cb.ZFar
	floor.Even = col(cb.Even)
	floor.Odd = col(cb.Odd)
	return floor
}

// LoadEnvironment loads or generates the environment map
func (e EnvironmentMap) LoadEnvironment() (*tracer.EnvironmentMap, error) {
	if e.Path != "" {
		return tracer.LoadEnvironmentMap(e.Path)
	}
	stops := make([]tracer.GradientStop, len(e.Gradient))
	for i, stop := range e.Gradient {
		stops[i] = tracer.GradientStop{Colatitude: stop.Colatitude, Color: col(stop.Color)}
	}
	return tracer.NewGradientEnvironment(360, 180, stops)
}

// LoadMesh loads the mesh file, if any. A nil mesh means the scene has none.
func (m *Mesh) LoadMesh() (tracer.Mesh, error) {
	if m == nil {
		return nil, nil
	}
	opts := tracer.MeshOptions{Scale: m.Scale}
	if m.FitInside != nil {
		opts.FitInside = &pt.Box{Min: vec(m.FitInside[0]), Max: vec(m.FitInside[1])}
	}
	mesh, err := tracer.LoadMesh(m.Path, opts)
	if err != nil {
		return nil, err
	}
	return mesh, nil
}

// Build loads every external input and assembles the scene and camera. Any failure here is a setup
// failure and nothing should be rendered.
func (c *SceneConfig) Build() (*tracer.Scene, tracer.Camera, error) {
	params := tracer.SceneParams{
		MeshMaterial: tracer.Glass,
		MaxDepth:     c.Render.MaxDepth,
	}

	for i, s := range c.Spheres {
		sphere, err := s.Create(&c.Materials)
		if err != nil {
			return nil, tracer.Camera{}, fmt.Errorf("spheres[%d]: %w", i, err)
		}
		params.Spheres = append(params.Spheres, sphere)
	}

	if c.Composite != nil {
		a, err := c.Composite.A.Create(&c.Materials)
		if err != nil {
			return nil, tracer.Camera{}, fmt.Errorf("composite.a: %w", err)
		}
		b, err := c.Composite.B.Create(&c.Materials)
		if err != nil {
			return nil, tracer.Camera{}, fmt.Errorf("composite.b: %w", err)
		}
		params.Composite = &tracer.CompositeSolid{A: a, B: b}
	}

	if c.Input.Mesh != nil {
		mesh, err := c.Input.Mesh.LoadMesh()
		if err != nil {
			return nil, tracer.Camera{}, err
		}
		params.Mesh = mesh
		if c.Input.Mesh.Material != "" {
			params.MeshMaterial, err = c.Materials.Lookup(c.Input.Mesh.Material)
			if err != nil {
				return nil, tracer.Camera{}, fmt.Errorf("input.mesh.material: %w", err)
			}
		}
	}

	if c.Checkerboard != nil {
		params.Floor = c.Checkerboard.Create()
	}

	for _, l := range c.Lights {
		params.Lights = append(params.Lights, tracer.Light{Position: vec(l.Position), Intensity: l.Intensity})
	}

	env, err := c.Input.EnvironmentMap.LoadEnvironment()
	if err != nil {
		return nil, tracer.Camera{}, err
	}
	params.Environment = env

	scene, err := tracer.NewScene(params)
	if err != nil {
		return nil, tracer.Camera{}, err
	}
	return scene, c.Camera.Create(), nil
}
