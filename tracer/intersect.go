package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// MaxDistance is the distance beyond which a hit is treated as a miss
const MaxDistance = 1000

// Category identifies the kind of geometry that produced a Hit
type Category int

const (
	CategorySphere Category = iota
	CategoryComposite
	CategoryMesh
	CategoryPlane
)

func (c Category) String() string {
	switch c {
	case CategorySphere:
		return "sphere"
	case CategoryComposite:
		return "composite"
	case CategoryMesh:
		return "mesh"
	case CategoryPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Precedence is the order in which categories are tested. When two candidates report the same
// distance, the one tested first is kept.
var Precedence = []Category{CategorySphere, CategoryComposite, CategoryMesh, CategoryPlane}

// Hit describes where a ray meets a surface
type Hit struct {
	// Distance along the ray
	T        float64
	Point    pt.Vector
	Normal   pt.Vector
	Material Material
	Category Category
}

// Intersectable is anything a ray can be tested against.
//
// dir must be normalized. Implementations are read-only and safe for concurrent use.
type Intersectable interface {
	Hit(origin, dir pt.Vector) (Hit, bool)
}

type meshIntersector struct {
	mesh     Mesh
	material Material
}

// Hit implements Intersectable
func (m meshIntersector) Hit(origin, dir pt.Vector) (Hit, bool) {
	box := m.mesh.BoundingBox()
	if !IntersectBox(origin, dir, box.Min, box.Max) {
		return Hit{}, false
	}

	best := Hit{T: math.MaxFloat64}
	found := false
	for i := 0; i < m.mesh.NumTriangles(); i++ {
		t, ok := m.mesh.IntersectTriangle(i, origin, dir)
		if !ok || t >= best.T {
			continue
		}
		a, b, c := m.mesh.Vertex(i, 0), m.mesh.Vertex(i, 1), m.mesh.Vertex(i, 2)
		best = Hit{
			T:        t,
			Point:    origin.Add(dir.MulScalar(t)),
			Normal:   a.Sub(b).Cross(a.Sub(c)).Normalize(),
			Material: m.material,
			Category: CategoryMesh,
		}
		found = true
	}
	return best, found
}

// Intersect finds the closest surface along the ray.
//
// Candidates are visited in Precedence order and one only replaces the running result when it is
// strictly closer. Hits at MaxDistance or beyond are reported as misses.
func (s *Scene) Intersect(origin, dir pt.Vector) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range s.candidates {
		hit, ok := c.Hit(origin, dir)
		if !ok {
			continue
		}
		if !found || hit.T < best.T {
			best = hit
			found = true
		}
	}
	if !found || best.T >= MaxDistance {
		return Hit{}, false
	}
	return best, true
}
