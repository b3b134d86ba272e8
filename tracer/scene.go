package tracer

import (
	"errors"
)

const (
	// DefaultMaxDepth is the deepest recursion level that still intersects the scene
	DefaultMaxDepth = 4
	// surfaceEpsilon is how far secondary rays start from the surface that spawned them
	surfaceEpsilon = 1e-3
)

var ErrNoEnvironment = errors.New("scene has no environment map")

// SceneParams lists everything a Scene is built from
type SceneParams struct {
	Spheres   []Sphere
	Composite *CompositeSolid
	// Mesh may be nil
	Mesh Mesh
	// Every mesh triangle shades with this material, whatever the mesh file says
	MeshMaterial Material
	// Floor may be nil
	Floor       *Checkerboard
	Lights      []Light
	Environment *EnvironmentMap
	// Zero means DefaultMaxDepth
	MaxDepth int
}

// Scene is immutable once built and is shared by every render goroutine without locking.
type Scene struct {
	spheres    []Sphere
	lights     []Light
	env        *EnvironmentMap
	maxDepth   int
	candidates []Intersectable
}

// NewScene copies p into a Scene and fixes the order in which geometry is tested (see Precedence).
func NewScene(p SceneParams) (*Scene, error) {
	if p.Environment == nil {
		return nil, ErrNoEnvironment
	}
	s := &Scene{
		spheres:  append([]Sphere(nil), p.Spheres...),
		lights:   append([]Light(nil), p.Lights...),
		env:      p.Environment,
		maxDepth: p.MaxDepth,
	}
	if s.maxDepth == 0 {
		s.maxDepth = DefaultMaxDepth
	}

	for _, category := range Precedence {
		switch category {
		case CategorySphere:
			for _, sphere := range s.spheres {
				s.candidates = append(s.candidates, sphere)
			}
		case CategoryComposite:
			if p.Composite != nil {
				s.candidates = append(s.candidates, *p.Composite)
			}
		case CategoryMesh:
			if p.Mesh != nil && p.Mesh.NumTriangles() > 0 {
				s.candidates = append(s.candidates, meshIntersector{mesh: p.Mesh, material: p.MeshMaterial})
			}
		case CategoryPlane:
			if p.Floor != nil {
				floor := *p.Floor
				s.candidates = append(s.candidates, &floor)
			}
		}
	}
	return s, nil
}

func (s *Scene) Lights() []Light {
	return s.lights
}

func (s *Scene) Environment() *EnvironmentMap {
	return s.env
}

func (s *Scene) MaxDepth() int {
	return s.maxDepth
}

// Candidates returns the geometry in the order Intersect tests it
func (s *Scene) Candidates() []Intersectable {
	return s.candidates
}
