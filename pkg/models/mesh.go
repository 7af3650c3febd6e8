// Package models turns tesseract snapshots into plain triangle and line meshes
// and exchanges them as binary glTF.
package models

import (
	"github.com/taigrr/tesseract/pkg/math3d"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

// Mesh is indexed geometry: triangles for filled surfaces, lines for edges.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Lines     []Line
	Materials []Material

	// Bounding box (calculated by CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials
}

// Line is a segment between two vertices.
type Line struct {
	V        [2]int
	Material int
}

// Material is a flat color. Blend marks translucent materials whose alpha
// must be composited rather than treated as a cutoff.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Blend     bool
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddMaterial appends mat and returns its index.
func (m *Mesh) AddMaterial(mat Material) int {
	m.Materials = append(m.Materials, mat)
	return len(m.Materials) - 1
}

// AddQuad adds the quad a, b, c, d as two triangles sharing the a-c diagonal.
func (m *Mesh) AddQuad(a, b, c, d, material int) {
	m.Faces = append(m.Faces,
		Face{V: [3]int{a, b, c}, Material: material},
		Face{V: [3]int{a, c, d}, Material: material},
	)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// LineCount returns the number of line segments.
func (m *Mesh) LineCount() int {
	return len(m.Lines)
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

const axisNames = "wxyz"

// FacetName names the facet on axis at sign, e.g. "w+" or "z-".
func FacetName(axis, sign int) string {
	s := "+"
	if sign < 0 {
		s = "-"
	}
	return axisNames[axis:axis+1] + s
}

var channelColors = map[tesseract.Channel][4]float64{
	tesseract.Red:   {1, 0, 0, 1},
	tesseract.Green: {0, 1, 0, 1},
	tesseract.Blue:  {0, 0, 1, 1},
}

// FromSnapshot builds a mesh of one frame: the hypercube edges as lines, every
// lit facet as a translucent cube of 12 triangles in its hit color, and every
// point as an octahedron sized like its on-screen sphere.
func FromSnapshot(name string, snap tesseract.Snapshot) *Mesh {
	m := NewMesh(name)

	edges := m.AddMaterial(Material{Name: "edges", BaseColor: [4]float64{1, 1, 1, 1}})
	for _, v := range snap.Vertices {
		m.AddVertex(v)
	}
	for _, e := range snap.Edges {
		m.Lines = append(m.Lines, Line{V: [2]int{e[0], e[1]}, Material: edges})
	}

	faces := tesseract.CellFaces()
	for _, f := range snap.Facets {
		if f.Hit.Dark() {
			continue
		}
		mat := m.AddMaterial(Material{
			Name:      "facet " + FacetName(f.Axis, f.Sign),
			BaseColor: f.Hit.Unit(),
			Blend:     true,
		})
		base := len(m.Vertices)
		for _, c := range f.Corners {
			m.AddVertex(c)
		}
		for _, q := range faces {
			m.AddQuad(base+q[0], base+q[1], base+q[2], base+q[3], mat)
		}
	}

	pointMats := make(map[tesseract.Channel]int)
	for _, p := range snap.Points {
		mat, ok := pointMats[p.Channel]
		if !ok {
			mat = m.AddMaterial(Material{Name: "point " + p.Channel.String(), BaseColor: channelColors[p.Channel]})
			pointMats[p.Channel] = mat
		}
		addOctahedron(m, p.Position, p.Radius*p.Scale, mat)
	}

	m.CalculateBounds()
	return m
}

// addOctahedron adds the 6 tips and 8 faces of an octahedron, wound
// counter-clockwise seen from outside.
func addOctahedron(m *Mesh, c math3d.Vec3, r float64, material int) {
	base := len(m.Vertices)
	m.AddVertex(c.Add(math3d.V3(r, 0, 0)))  // +x
	m.AddVertex(c.Add(math3d.V3(-r, 0, 0))) // -x
	m.AddVertex(c.Add(math3d.V3(0, r, 0)))  // +y
	m.AddVertex(c.Add(math3d.V3(0, -r, 0))) // -y
	m.AddVertex(c.Add(math3d.V3(0, 0, r)))  // +z
	m.AddVertex(c.Add(math3d.V3(0, 0, -r))) // -z

	for _, t := range [8][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	} {
		m.Faces = append(m.Faces, Face{V: [3]int{base + t[0], base + t[1], base + t[2]}, Material: material})
	}
}
