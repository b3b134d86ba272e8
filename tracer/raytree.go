package tracer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"
)

// RayNode records one ray of a ray tree. All methods are no-ops on a nil node, which is how
// CastRay runs without recording.
type RayNode struct {
	Origin    pt.Vector
	Direction pt.Vector
	Depth     int
	// True when the ray left the scene (or ran out of depth) and sampled the environment map
	Escaped bool
	Hit     *Hit
	// One entry per scene light, true when that light was blocked
	Shadowed  []bool
	Radiance  pt.Color
	Reflected *RayNode
	Refracted *RayNode
}

func (n *RayNode) start(origin, dir pt.Vector, depth int) {
	if n == nil {
		return
	}
	n.Origin, n.Direction, n.Depth = origin, dir, depth
}

func (n *RayNode) escape(c pt.Color) {
	if n == nil {
		return
	}
	n.Escaped = true
	n.Radiance = c
}

func (n *RayNode) hit(h Hit) {
	if n == nil {
		return
	}
	n.Hit = &h
}

func (n *RayNode) shadow(blocked bool) {
	if n == nil {
		return
	}
	n.Shadowed = append(n.Shadowed, blocked)
}

func (n *RayNode) finish(c pt.Color) {
	if n == nil {
		return
	}
	n.Radiance = c
}

func (n *RayNode) reflected() *RayNode {
	if n == nil {
		return nil
	}
	n.Reflected = &RayNode{}
	return n.Reflected
}

func (n *RayNode) refracted() *RayNode {
	if n == nil {
		return nil
	}
	n.Refracted = &RayNode{}
	return n.Refracted
}

// Count returns the number of rays in the tree rooted at n
func (n *RayNode) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Reflected.Count() + n.Refracted.Count()
}

// JSON schema types
type VectorJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type ColorJSON struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

type HitJSON struct {
	Distance float64    `json:"distance"`
	Point    VectorJSON `json:"point"`
	Normal   VectorJSON `json:"normal"`
	Material string     `json:"material"`
	Category string     `json:"category"`
}

type RayNodeJSON struct {
	Origin    VectorJSON   `json:"origin"`
	Direction VectorJSON   `json:"direction"`
	Depth     int          `json:"depth"`
	Escaped   bool         `json:"escaped,omitempty"`
	Hit       *HitJSON     `json:"hit,omitempty"`
	Shadowed  []bool       `json:"shadowed,omitempty"`
	Radiance  ColorJSON    `json:"radiance"`
	Reflected *RayNodeJSON `json:"reflected,omitempty"`
	Refracted *RayNodeJSON `json:"refracted,omitempty"`
}

// Conversion functions
func VectorToJSON(v pt.Vector) VectorJSON {
	return VectorJSON{X: v.X, Y: v.Y, Z: v.Z}
}

func ColorToJSON(c pt.Color) ColorJSON {
	return ColorJSON{R: c.R, G: c.G, B: c.B}
}

func RayNodeToJSON(n *RayNode) *RayNodeJSON {
	if n == nil {
		return nil
	}
	out := &RayNodeJSON{
		Origin:    VectorToJSON(n.Origin),
		Direction: VectorToJSON(n.Direction),
		Depth:     n.Depth,
		Escaped:   n.Escaped,
		Shadowed:  n.Shadowed,
		Radiance:  ColorToJSON(n.Radiance),
		Reflected: RayNodeToJSON(n.Reflected),
		Refracted: RayNodeToJSON(n.Refracted),
	}
	if n.Hit != nil {
		out.Hit = &HitJSON{
			Distance: n.Hit.T,
			Point:    VectorToJSON(n.Hit.Point),
			Normal:   VectorToJSON(n.Hit.Normal),
			Material: n.Hit.Material.Name,
			Category: n.Hit.Category.String(),
		}
	}
	return out
}

// SaveRayTreeJSON writes the tree rooted at n to filename
func SaveRayTreeJSON(filename string, n *RayNode) error {
	data, err := json.MarshalIndent(RayNodeToJSON(n), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling ray tree: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadRayTreeJSON reads a tree written by SaveRayTreeJSON
func LoadRayTreeJSON(filename string) (*RayNodeJSON, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var n RayNodeJSON
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("error parsing ray tree: %w", err)
	}
	return &n, nil
}
