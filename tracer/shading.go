package tracer

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// CastRay returns the radiance travelling back along the ray.
//
// dir must be normalized. The result is not clamped and may exceed 1 in any channel.
func (s *Scene) CastRay(origin, dir pt.Vector, depth int) pt.Color {
	return s.castRay(origin, dir, depth, nil)
}

// TraceRayTree evaluates a primary ray exactly like CastRay and records every ray it spawns.
func (s *Scene) TraceRayTree(origin, dir pt.Vector) *RayNode {
	root := &RayNode{}
	s.castRay(origin, dir, 0, root)
	return root
}

func (s *Scene) castRay(origin, dir pt.Vector, depth int, node *RayNode) pt.Color {
	node.start(origin, dir, depth)

	var (
		hit Hit
		ok  bool
	)
	if depth <= s.maxDepth {
		hit, ok = s.Intersect(origin, dir)
	}
	if !ok {
		background := s.env.Sample(dir)
		node.escape(background)
		return background
	}
	node.hit(hit)

	m := hit.Material

	var reflectColor, refractColor pt.Color
	if m.Albedo.Reflect != 0 {
		reflectDir := Reflect(dir, hit.Normal).Normalize()
		verifyReflection(dir, hit.Normal, reflectDir)
		reflectOrigin := offset(hit.Point, reflectDir, hit.Normal)
		reflectColor = s.castRay(reflectOrigin, reflectDir, depth+1, node.reflected())
	}
	if m.Albedo.Refract != 0 {
		refractDir := Refract(dir, hit.Normal, m.RefractiveIndex).Normalize()
		refractOrigin := offset(hit.Point, refractDir, hit.Normal)
		refractColor = s.castRay(refractOrigin, refractDir, depth+1, node.refracted())
	}

	var diffuse, specular float64
	for _, light := range s.lights {
		toLight := light.Position.Sub(hit.Point)
		lightDistance := toLight.Length()
		lightDir := toLight.Normalize()

		if s.occluded(hit, lightDir, lightDistance) {
			node.shadow(true)
			continue
		}
		node.shadow(false)

		diffuse += light.Intensity * math.Max(0, lightDir.Dot(hit.Normal))
		highlight := math.Max(0, -Reflect(lightDir.Negate(), hit.Normal).Dot(dir))
		specular += math.Pow(highlight, m.SpecularExponent) * light.Intensity
	}

	radiance := m.DiffuseColor.MulScalar(diffuse * m.Albedo.Diffuse).
		Add(pt.White.MulScalar(specular * m.Albedo.Specular)).
		Add(reflectColor.MulScalar(m.Albedo.Reflect)).
		Add(refractColor.MulScalar(m.Albedo.Refract))
	verifyRadiance(radiance)
	node.finish(radiance)
	return radiance
}

// occluded reports whether anything sits between the hit point and a light lightDistance away
func (s *Scene) occluded(hit Hit, lightDir pt.Vector, lightDistance float64) bool {
	shadowOrigin := offset(hit.Point, lightDir, hit.Normal)
	blocker, ok := s.Intersect(shadowOrigin, lightDir)
	return ok && blocker.Point.Sub(shadowOrigin).Length() < lightDistance
}
