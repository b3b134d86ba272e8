package tracer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
)

// Mesh is read-only triangle geometry
type Mesh interface {
	NumTriangles() int
	// Vertex returns corner 0, 1 or 2 of triangle tri
	Vertex(tri, corner int) pt.Vector
	// IntersectTriangle returns the distance along the ray to triangle tri
	IntersectTriangle(tri int, origin, dir pt.Vector) (float64, bool)
	BoundingBox() pt.Box
}

var ErrEmptyMesh = errors.New("mesh has no triangles")

// TriangleMesh adapts a pt.Mesh to the Mesh interface
type TriangleMesh struct {
	m   *pt.Mesh
	box pt.Box
}

// NewTriangleMesh wraps m. The bounding box is computed once, so m must not be modified afterwards.
func NewTriangleMesh(m *pt.Mesh) (*TriangleMesh, error) {
	if m == nil || len(m.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	return &TriangleMesh{m: m, box: m.BoundingBox()}, nil
}

func (t *TriangleMesh) NumTriangles() int {
	return len(t.m.Triangles)
}

func (t *TriangleMesh) Vertex(tri, corner int) pt.Vector {
	triangle := t.m.Triangles[tri]
	switch corner {
	case 0:
		return triangle.V1
	case 1:
		return triangle.V2
	case 2:
		return triangle.V3
	}
	panic(fmt.Sprintf("triangle corner %d out of range", corner))
}

func (t *TriangleMesh) IntersectTriangle(tri int, origin, dir pt.Vector) (float64, bool) {
	hit := t.m.Triangles[tri].Intersect(pt.Ray{Origin: origin, Direction: dir})
	if !hit.Ok() {
		return 0, false
	}
	return hit.T, true
}

func (t *TriangleMesh) BoundingBox() pt.Box {
	return t.box
}

// MeshOptions controls how a mesh file is brought into world space
type MeshOptions struct {
	// Vertices are multiplied by Scale on load. Zero means 1.
	Scale float64
	// If non-nil, the mesh is uniformly scaled and moved to fit inside this box
	FitInside *pt.Box
}

// LoadMesh reads an .obj, .stl or .3mf file
func LoadMesh(path string, opts MeshOptions) (*TriangleMesh, error) {
	var (
		m   *pt.Mesh
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		m, err = pt.LoadOBJ(path, pt.Material{})
	case ".stl":
		m, err = pt.LoadSTL(path, pt.Material{})
	case ".3mf":
		m, err = load3MF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("loading mesh %s: %w", path, err)
	}
	if m == nil || len(m.Triangles) == 0 {
		return nil, fmt.Errorf("loading mesh %s: %w", path, ErrEmptyMesh)
	}

	if opts.Scale != 0 && opts.Scale != 1 {
		m.Transform(pt.Scale(V(opts.Scale, opts.Scale, opts.Scale)))
	}
	if opts.FitInside != nil {
		m.FitInside(*opts.FitInside, V(0.5, 0.5, 0.5))
	}
	return NewTriangleMesh(m)
}

func load3MF(path string) (*pt.Mesh, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, err
	}

	triangles := []*pt.Triangle{}
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		vertices := obj.Mesh.Vertices.Vertex
		for _, t := range obj.Mesh.Triangles.Triangle {
			tri := &pt.Triangle{Material: &pt.Material{}}
			tri.V1 = V(float64(vertices[t.V1].X()), float64(vertices[t.V1].Y()), float64(vertices[t.V1].Z()))
			tri.V2 = V(float64(vertices[t.V2].X()), float64(vertices[t.V2].Y()), float64(vertices[t.V2].Z()))
			tri.V3 = V(float64(vertices[t.V3].X()), float64(vertices[t.V3].Y()), float64(vertices[t.V3].Z()))
			tri.FixNormals()
			triangles = append(triangles, tri)
		}
	}
	return pt.NewMesh(triangles), nil
}
