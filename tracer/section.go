package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Slicing follows https://github.com/fogleman/choppy/tree/master with some modifications

type Point2D struct {
	X, Y float64
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

type Path2D []Point2D

// BoundingBox of an empty path is inverted (min = +Inf, max = -Inf)
func (p Path2D) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	XMin, YMin = math.Inf(1), math.Inf(1)
	XMax, YMax = math.Inf(-1), math.Inf(-1)
	for _, p := range p {
		XMin = math.Min(XMin, p.X)
		XMax = math.Max(XMax, p.X)
		YMin = math.Min(YMin, p.Y)
		YMax = math.Max(YMax, p.Y)
	}
	return
}

// SectionPlane cuts the scene for a 2D view. U and V span the plane and become the view's x and y
// axes.
type SectionPlane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

func NewSectionPlane(point, normal pt.Vector) SectionPlane {
	normal = normal.Normalize()
	u := perpendicular(normal).Normalize()
	v := u.Cross(normal).Normalize()
	return SectionPlane{point, normal, u, v}
}

// Project drops point orthogonally onto the plane and returns its plane coordinates
func (p SectionPlane) Project(point pt.Vector) Point2D {
	d := point.Sub(p.Point)
	return Point2D{d.Dot(p.U), d.Dot(p.V)}
}

// Distance is the signed distance from the plane, positive on the side the normal points to
func (p SectionPlane) Distance(point pt.Vector) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

func perpendicular(a pt.Vector) pt.Vector {
	if a.X == 0 && a.Y == 0 {
		if a.Z == 0 {
			return pt.Vector{}
		}
		return V(0, 1, 0)
	}
	return V(-a.Y, a.X, 0).Normalize()
}

type path3D []pt.Vector

func joinPaths(paths []path3D) []path3D {
	frontLookup := make(map[pt.Vector]path3D, len(paths))
	for _, path := range paths {
		frontLookup[path[0]] = path
	}
	var result []path3D
	for len(frontLookup) > 0 {
		var v pt.Vector
		for v = range frontLookup {
			break
		}
		var path path3D
	outer:
		for {
			path = append(path, v)
			if p, ok := frontLookup[v]; ok {
				delete(frontLookup, v)
				v = p[len(p)-1]
			} else {
				for k, thisPath := range frontLookup {
					if thisPath[len(thisPath)-1] == v {
						delete(frontLookup, k)
						v = k
						continue outer
					}
				}
				break
			}
		}
		result = append(result, path)
	}
	return result
}

func (p SectionPlane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-9 && d < 1e-9 {
		return pt.Vector{}, false
	}
	t := -p.Normal.Dot(w) / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// intersectTriangle returns the segment where the plane cuts triangle abc, oriented consistently
// with the triangle's winding so that neighbouring segments chain head to tail.
func (p SectionPlane) intersectTriangle(a, b, c pt.Vector) (pt.Vector, pt.Vector, bool) {
	v1, ok1 := p.intersectSegment(a, b)
	v2, ok2 := p.intersectSegment(b, c)
	v3, ok3 := p.intersectSegment(c, a)
	var p1, p2 pt.Vector
	switch {
	case ok1 && ok2:
		p1, p2 = v1, v2
	case ok1 && ok3:
		p1, p2 = v1, v3
	case ok2 && ok3:
		p1, p2 = v2, v3
	default:
		return pt.Vector{}, pt.Vector{}, false
	}
	if p1 == p2 {
		return pt.Vector{}, pt.Vector{}, false
	}
	normal := b.Sub(a).Cross(c.Sub(a))
	if p2.Sub(p1).Cross(p.Normal).Dot(normal) < 0 {
		return p1, p2, true
	}
	return p2, p1, true
}

func (p SectionPlane) slice(triangles [][3]pt.Vector) []Path2D {
	var paths []path3D
	for _, t := range triangles {
		if v1, v2, ok := p.intersectTriangle(t[0], t[1], t[2]); ok {
			paths = append(paths, path3D{v1, v2})
		}
	}
	result := []Path2D{}
	for _, path := range joinPaths(paths) {
		projected := make(Path2D, len(path))
		for i, v := range path {
			projected[i] = p.Project(v)
		}
		result = append(result, projected)
	}
	return result
}

// SliceMesh returns the outline of the mesh in the plane as chained polylines
func (p SectionPlane) SliceMesh(m Mesh) []Path2D {
	triangles := make([][3]pt.Vector, m.NumTriangles())
	for i := range triangles {
		triangles[i] = [3]pt.Vector{m.Vertex(i, 0), m.Vertex(i, 1), m.Vertex(i, 2)}
	}
	return p.slice(triangles)
}

// SliceSphere returns the circle where the plane cuts s, if it does
func (p SectionPlane) SliceSphere(s Sphere) (center Point2D, radius float64, ok bool) {
	d := p.Distance(s.Center)
	if math.Abs(d) >= s.Radius {
		return Point2D{}, 0, false
	}
	return p.Project(s.Center), math.Sqrt(s.Radius*s.Radius - d*d), true
}

// SliceCheckerboard returns the segment where the plane cuts the floor rectangle
func (p SectionPlane) SliceCheckerboard(c *Checkerboard) []Path2D {
	a := V(-c.XExtent, c.Height, c.ZNear)
	b := V(c.XExtent, c.Height, c.ZNear)
	d := V(c.XExtent, c.Height, c.ZFar)
	e := V(-c.XExtent, c.Height, c.ZFar)
	return p.slice([][3]pt.Vector{{a, b, d}, {a, d, e}})
}
