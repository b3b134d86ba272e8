package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jdginn/go-raytracer/tracer"
)

// DepthSummary aggregates every ray at one recursion depth
type DepthSummary struct {
	Depth    int
	Rays     int
	Escaped  int
	Shadowed int
	// Hits per material name
	Materials map[string]int
}

// Summarize walks the tree breadth first and groups rays by depth
func Summarize(root *tracer.RayNodeJSON) []DepthSummary {
	byDepth := map[int]*DepthSummary{}
	queue := []*tracer.RayNodeJSON{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			continue
		}
		s, ok := byDepth[n.Depth]
		if !ok {
			s = &DepthSummary{Depth: n.Depth, Materials: map[string]int{}}
			byDepth[n.Depth] = s
		}
		s.Rays++
		if n.Escaped {
			s.Escaped++
		}
		if n.Hit != nil {
			s.Materials[n.Hit.Material]++
		}
		for _, blocked := range n.Shadowed {
			if blocked {
				s.Shadowed++
			}
		}
		queue = append(queue, n.Reflected, n.Refracted)
	}

	result := make([]DepthSummary, 0, len(byDepth))
	for _, s := range byDepth {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Depth < result[j].Depth
	})
	return result
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: summarize_trace <raytree.json>")
		os.Exit(1)
	}

	root, err := tracer.LoadRayTreeJSON(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read ray tree: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("radiance {%.4f, %.4f, %.4f}\n", root.Radiance.R, root.Radiance.G, root.Radiance.B)
	for _, s := range Summarize(root) {
		names := make([]string, 0, len(s.Materials))
		for name := range s.Materials {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("depth %d: %d rays, %d escaped, %d shadowed lights", s.Depth, s.Rays, s.Escaped, s.Shadowed)
		for _, name := range names {
			fmt.Printf(", %s x%d", name, s.Materials[name])
		}
		fmt.Println()
	}
}
