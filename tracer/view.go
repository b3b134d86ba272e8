package tracer

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

var (
	sectionBackground = C(0.08, 0.08, 0.1)
	lightColor        = C(1, 0.9, 0.3)
	cameraColor       = C(1, 0.3, 0.3)
	primaryRayColor   = C(1, 1, 1)
	reflectedRayColor = C(1, 0.7, 0.2)
	refractedRayColor = C(0.3, 0.8, 1)
)

// SectionView draws the geometry of a scene where a plane cuts it, seen along the plane normal.
// Lights, the camera and rays are projected onto the plane.
type SectionView struct {
	Scene  *Scene
	Plane  SectionPlane
	XSize  int
	YSize  int
	Camera *pt.Vector
	// These cache the values needed to scale and translate from the plane to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

type sectionCircle struct {
	center Point2D
	radius float64
	color  pt.Color
	dashed bool
}

type sectionOutline struct {
	path  Path2D
	color pt.Color
}

func (view *SectionView) slices() ([]sectionCircle, []sectionOutline) {
	var (
		circles  []sectionCircle
		outlines []sectionOutline
	)
	addSphere := func(s Sphere, dashed bool) {
		if center, radius, ok := view.Plane.SliceSphere(s); ok {
			circles = append(circles, sectionCircle{center, radius, s.Material.DiffuseColor, dashed})
		}
	}
	for _, candidate := range view.Scene.Candidates() {
		switch c := candidate.(type) {
		case Sphere:
			addSphere(c, false)
		case CompositeSolid:
			addSphere(c.A, false)
			addSphere(c.B, true)
		case meshIntersector:
			for _, path := range view.Plane.SliceMesh(c.mesh) {
				outlines = append(outlines, sectionOutline{path, c.material.DiffuseColor})
			}
		case *Checkerboard:
			for _, path := range view.Plane.SliceCheckerboard(c) {
				outlines = append(outlines, sectionOutline{path, c.Even})
			}
		}
	}
	return circles, outlines
}

func (view *SectionView) markers() []Point2D {
	var points []Point2D
	for _, light := range view.Scene.Lights() {
		points = append(points, view.Plane.Project(light.Position))
	}
	if view.Camera != nil {
		points = append(points, view.Plane.Project(*view.Camera))
	}
	return points
}

func (view *SectionView) computeScaleAndTranslation(circles []sectionCircle, outlines []sectionOutline, extra Path2D) {
	var all Path2D
	for _, c := range circles {
		all = append(all,
			c.center.Translate(-c.radius, -c.radius),
			c.center.Translate(c.radius, c.radius))
	}
	for _, o := range outlines {
		all = append(all, o.path...)
	}
	all = append(all, extra...)

	XMin, XMax, YMin, YMax := all.BoundingBox()
	if len(all) == 0 {
		XMin, XMax, YMin, YMax = -1, 1, -1, 1
	}
	// Leave a margin and avoid dividing by a zero span
	w := math.Max(XMax-XMin, 1e-6)
	h := math.Max(YMax-YMin, 1e-6)
	XMin, XMax = XMin-0.05*w, XMax+0.05*w
	YMin, YMax = YMin-0.05*h, YMax+0.05*h

	XScale := float64(view.XSize) / (XMax - XMin)
	YScale := float64(view.YSize) / (YMax - YMin)
	view.scale = math.Min(XScale, YScale)
	// Center the content in whichever direction has room to spare
	view.xTranslate = -XMin + (float64(view.XSize)/view.scale-(XMax-XMin))/2
	view.yTranslate = -YMin + (float64(view.YSize)/view.scale-(YMax-YMin))/2
}

// toImage maps plane coordinates to pixels, with V pointing up the image
func (view *SectionView) toImage(p Point2D) Point2D {
	p = p.Translate(view.xTranslate, view.yTranslate).Scale(view.scale)
	return Point2D{p.X, float64(view.YSize) - p.Y}
}

type raySegment struct {
	from, to Point2D
	color    pt.Color
	escaped  bool
}

func (view *SectionView) raySegments(n *RayNode, color pt.Color, escapeLength float64, out []raySegment) []raySegment {
	if n == nil {
		return out
	}
	end := n.Origin.Add(n.Direction.MulScalar(escapeLength))
	if n.Hit != nil {
		end = n.Hit.Point
	}
	out = append(out, raySegment{view.Plane.Project(n.Origin), view.Plane.Project(end), color, n.Hit == nil})
	out = view.raySegments(n.Reflected, reflectedRayColor, escapeLength, out)
	return view.raySegments(n.Refracted, refractedRayColor, escapeLength, out)
}

// hitPoints lists every ray origin and hit point so the rays stay in frame
func hitPoints(n *RayNode, plane SectionPlane, out Path2D) Path2D {
	if n == nil {
		return out
	}
	out = append(out, plane.Project(n.Origin))
	if n.Hit != nil {
		out = append(out, plane.Project(n.Hit.Point))
	}
	out = hitPoints(n.Reflected, plane, out)
	return hitPoints(n.Refracted, plane, out)
}

// Draw renders the section. rays may be nil; otherwise the ray tree is drawn on top, with escaped
// rays dashed.
func (view *SectionView) Draw(rays *RayNode) image.Image {
	circles, outlines := view.slices()
	markers := view.markers()
	view.computeScaleAndTranslation(circles, outlines, hitPoints(rays, view.Plane, markers))

	c := gg.NewContext(view.XSize, view.YSize)
	c.SetRGB(sectionBackground.R, sectionBackground.G, sectionBackground.B)
	c.Clear()

	c.SetLineWidth(2)
	for _, circle := range circles {
		center := view.toImage(circle.center)
		c.SetRGB(circle.color.R, circle.color.G, circle.color.B)
		if circle.dashed {
			c.SetDash(6, 4)
		}
		c.DrawCircle(center.X, center.Y, circle.radius*view.scale)
		c.Stroke()
		c.SetDash()
	}

	c.SetLineWidth(3)
	for _, outline := range outlines {
		c.SetRGB(outline.color.R, outline.color.G, outline.color.B)
		for i := 0; i < len(outline.path)-1; i++ {
			p1 := view.toImage(outline.path[i])
			p2 := view.toImage(outline.path[i+1])
			c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		}
		c.Stroke()
	}

	for i, light := range view.Scene.Lights() {
		p := view.toImage(markers[i])
		c.SetRGB(lightColor.R, lightColor.G, lightColor.B)
		c.DrawCircle(p.X, p.Y, 2+light.Intensity*2)
		c.Fill()
	}
	if view.Camera != nil {
		p := view.toImage(markers[len(markers)-1])
		c.SetRGB(cameraColor.R, cameraColor.G, cameraColor.B)
		c.DrawRectangle(p.X-4, p.Y-4, 8, 8)
		c.Fill()
	}

	escapeLength := float64(view.XSize+view.YSize) / view.scale
	c.SetLineWidth(1)
	for _, segment := range view.raySegments(rays, primaryRayColor, escapeLength, nil) {
		p1 := view.toImage(segment.from)
		p2 := view.toImage(segment.to)
		c.SetRGB(segment.color.R, segment.color.G, segment.color.B)
		if segment.escaped {
			c.SetDash(3, 3)
		}
		c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		c.Stroke()
		c.SetDash()
	}
	return c.Image()
}
