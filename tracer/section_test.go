package tracer

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionPlaneBasis(t *testing.T) {
	for _, n := range []pt.Vector{V(0, 1, 0), V(1, 0, 0), V(0, 0, 1), V(1, 1, 1)} {
		p := NewSectionPlane(V(0, 0, 0), n)
		assert.InDelta(t, 0, p.U.Dot(p.Normal), 1e-12)
		assert.InDelta(t, 0, p.V.Dot(p.Normal), 1e-12)
		assert.InDelta(t, 0, p.U.Dot(p.V), 1e-12)
		assert.InDelta(t, 1, p.U.Length(), 1e-12)
		assert.InDelta(t, 1, p.V.Length(), 1e-12)
	}
}

func TestSectionPlaneProject(t *testing.T) {
	p := NewSectionPlane(V(0, 2, 0), V(0, 1, 0))
	got := p.Project(V(3, 7, -4))
	assert.InDelta(t, 5, math.Hypot(got.X, got.Y), 1e-12)
	assert.InDelta(t, 5, p.Distance(V(3, 7, -4)), 1e-12)
	assert.InDelta(t, -2, p.Distance(V(0, 0, 0)), 1e-12)
}

func TestSliceSphere(t *testing.T) {
	p := NewSectionPlane(V(0, 0, 0), V(0, 1, 0))

	center, radius, ok := p.SliceSphere(Sphere{Center: V(1, 0, -5), Radius: 2})
	require.True(t, ok)
	assert.InDelta(t, 2, radius, 1e-12)
	assert.Equal(t, p.Project(V(1, 0, -5)), center)

	_, radius, ok = p.SliceSphere(Sphere{Center: V(0, 1.2, -5), Radius: 2})
	require.True(t, ok)
	assert.InDelta(t, 1.6, radius, 1e-12)

	_, _, ok = p.SliceSphere(Sphere{Center: V(0, 3, -5), Radius: 2})
	assert.False(t, ok)
}

func TestSliceMesh(t *testing.T) {
	// A closed tetrahedron straddling y = 0
	a, b, c, d := V(-1, -1, -1), V(1, -1, -1), V(0, -1, 1), V(0, 1, 0)
	m, err := NewTriangleMesh(pt.NewMesh([]*pt.Triangle{
		buildTri(a, c, b),
		buildTri(a, b, d),
		buildTri(b, c, d),
		buildTri(c, a, d),
	}))
	require.NoError(t, err)

	paths := NewSectionPlane(V(0, 0, 0), V(0, 1, 0)).SliceMesh(m)
	require.Len(t, paths, 1)
	// Three side faces give a closed triangle: four points with the first repeated
	require.Len(t, paths[0], 4)
	assert.Equal(t, paths[0][0], paths[0][3])

	XMin, XMax, _, _ := paths[0].BoundingBox()
	assert.InDelta(t, 1, XMax-XMin, 1e-12)

	assert.Empty(t, NewSectionPlane(V(0, 5, 0), V(0, 1, 0)).SliceMesh(m))
}

func TestSliceCheckerboard(t *testing.T) {
	floor := DefaultCheckerboard()

	paths := NewSectionPlane(V(0, 0, 0), V(1, 0, 0)).SliceCheckerboard(floor)
	require.Len(t, paths, 1)
	_, _, YMin, YMax := paths[0].BoundingBox()
	assert.InDelta(t, 20, YMax-YMin, 1e-9, "the cut spans z from -30 to -10")

	assert.Empty(t, NewSectionPlane(V(20, 0, 0), V(1, 0, 0)).SliceCheckerboard(floor))
}

func TestPath2DBoundingBox(t *testing.T) {
	XMin, XMax, YMin, YMax := Path2D{{2, 3}, {4, -1}, {3, 5}}.BoundingBox()
	assert.Equal(t, []float64{2, 4, -1, 5}, []float64{XMin, XMax, YMin, YMax})

	XMin, XMax, _, _ = Path2D{}.BoundingBox()
	assert.True(t, math.IsInf(XMin, 1))
	assert.True(t, math.IsInf(XMax, -1))
}

func TestSectionViewDraw(t *testing.T) {
	s := newTestScene(t, SceneParams{
		Spheres: []Sphere{
			{Center: V(-1, -1.5, -12), Radius: 2, Material: Glass},
			{Center: V(-3, 0, -16), Radius: 2, Material: Ivory},
		},
		Composite: &CompositeSolid{
			A: Sphere{Center: V(1.5, -0.5, -18), Radius: 3.5, Material: RedRubber},
			B: Sphere{Center: V(4, 2, -14.25), Radius: 2, Material: Ivory},
		},
		Floor:  DefaultCheckerboard(),
		Lights: []Light{{Position: V(-20, 20, 20), Intensity: 1.5}},
	})
	camera := V(0, 0, 3)
	view := SectionView{
		Scene:  s,
		Plane:  NewSectionPlane(V(0, 0, 0), V(1, 0, 0)),
		XSize:  200,
		YSize:  120,
		Camera: &camera,
	}

	tree := s.TraceRayTree(camera, V(-1, -1.5, -15).Normalize())
	img := view.Draw(tree)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
	assert.Greater(t, view.scale, 0.0)

	// Everything drawn must land inside the image
	for _, p := range hitPoints(tree, view.Plane, view.markers()) {
		q := view.toImage(p)
		assert.GreaterOrEqual(t, q.X, 0.0)
		assert.LessOrEqual(t, q.X, 200.0)
		assert.GreaterOrEqual(t, q.Y, 0.0)
		assert.LessOrEqual(t, q.Y, 120.0)
	}

	background := img.At(0, 0)
	drawn := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			if img.At(x, y) != background {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 100)
}

func TestSectionViewEmptyScene(t *testing.T) {
	view := SectionView{
		Scene: newTestScene(t, SceneParams{}),
		Plane: NewSectionPlane(V(0, 0, 0), V(0, 1, 0)),
		XSize: 10,
		YSize: 10,
	}
	assert.NotPanics(t, func() {
		img := view.Draw(nil)
		assert.Equal(t, 10, img.Bounds().Dx())
	})
}
