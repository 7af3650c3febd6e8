// Package tesseract is the 4D engine behind the viewer: hypercube topology,
// the eight bounding facets with their decaying hit highlights, points that
// bounce inside the hypercube, and the Simulation that advances them and
// hands out projected geometry for drawing.
package tesseract

import (
	"math"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// Hypercube sizes.
const (
	VertexCount = 16
	EdgeCount   = 32
	FacetCount  = 8
)

// Edge is an unordered pair of vertex indices, stored with the smaller first.
type Edge [2]int

// Vertices returns the 16 corners of {-1,1}^4. Vertex i has +1 on axis k when
// bit k of i is set and -1 otherwise.
func Vertices() [VertexCount]math4d.Vec4 {
	var vs [VertexCount]math4d.Vec4
	for i := range VertexCount {
		for k := range math4d.Dim {
			vs[i][k] = -1
			if i>>k&1 == 1 {
				vs[i][k] = 1
			}
		}
	}
	return vs
}

// Edges connects every pair i<j whose coordinates differ by exactly 2 on
// exactly one axis. For the hypercube's 16 vertices that is 32 edges.
func Edges(vertices []math4d.Vec4) []Edge {
	var edges []Edge
	for i := range vertices {
		for j := i + 1; j < len(vertices); j++ {
			n := 0
			for k := range math4d.Dim {
				if math.Abs(vertices[i][k]-vertices[j][k]) == 2 {
					n++
				}
			}
			if n == 1 {
				edges = append(edges, Edge{i, j})
			}
		}
	}
	return edges
}

// HypercubeEdges returns the 32 edges of the canonical hypercube.
func HypercubeEdges() []Edge {
	vs := Vertices()
	return Edges(vs[:])
}
