package tesseract

import (
	"fmt"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// CellCornerCount is the number of corners of a facet's cube.
const CellCornerCount = 8

// Facet is one of the hypercube's eight bounding cubes, the cell where
// coordinate Axis is fixed to Sign.
type Facet struct {
	Axis int
	Sign int // +1 or -1

	// Corners is the canonical, unrotated cube. Corner c sets the b-th free
	// axis (ascending, skipping Axis) to +1 when bit b of c is set.
	Corners [CellCornerCount]math4d.Vec4

	Hit HitState
}

// CellCorners builds the eight corners of the cell fixing axis to sign.
func CellCorners(axis, sign int) [CellCornerCount]math4d.Vec4 {
	var free [3]int
	n := 0
	for k := range math4d.Dim {
		if k != axis {
			free[n] = k
			n++
		}
	}

	var corners [CellCornerCount]math4d.Vec4
	for c := range CellCornerCount {
		corners[c][axis] = float64(sign)
		for b, k := range free {
			corners[c][k] = -1
			if c>>b&1 == 1 {
				corners[c][k] = 1
			}
		}
	}
	return corners
}

// CellEdges returns the 12 corner index pairs of a cell's cube edges.
func CellEdges() [12]Edge {
	var edges [12]Edge
	n := 0
	for i := range CellCornerCount {
		for b := range 3 {
			j := i | 1<<b
			if j != i {
				edges[n] = Edge{i, j}
				n++
			}
		}
	}
	return edges
}

// CellFaces returns the 6 square faces of a cell's cube as corner indices in
// winding order.
func CellFaces() [6][4]int {
	var faces [6][4]int
	n := 0
	for b := range 3 {
		p, q := 1<<((b+1)%3), 1<<((b+2)%3)
		for _, base := range []int{0, 1 << b} {
			faces[n] = [4]int{base, base | p, base | p | q, base | q}
			n++
		}
	}
	return faces
}

// FacetModel owns the eight facets, one per (axis, sign) pair, in the order
// axis 0..3 with sign +1 before -1.
type FacetModel struct {
	facets [FacetCount]Facet
}

// NewFacetModel derives the eight facets with dark hit states.
func NewFacetModel() *FacetModel {
	m := &FacetModel{}
	n := 0
	for axis := range math4d.Dim {
		for _, sign := range []int{1, -1} {
			m.facets[n] = Facet{Axis: axis, Sign: sign, Corners: CellCorners(axis, sign)}
			n++
		}
	}
	return m
}

// Len returns the number of facets.
func (m *FacetModel) Len() int { return len(m.facets) }

// At returns facet i in construction order.
func (m *FacetModel) At(i int) *Facet { return &m.facets[i] }

// Lookup returns the facet at (axis, sign). A miss means the model was
// built wrong and panics.
func (m *FacetModel) Lookup(axis, sign int) *Facet {
	for i := range m.facets {
		if m.facets[i].Axis == axis && m.facets[i].Sign == sign {
			return &m.facets[i]
		}
	}
	panic(fmt.Sprintf("tesseract: no facet for axis %d sign %d", axis, sign))
}

// TriggerHit flashes channel c on the facet at (axis, sign).
func (m *FacetModel) TriggerHit(axis, sign int, c Channel) {
	m.Lookup(axis, sign).Hit.flash(c)
}

// Decay fades every facet by dt seconds of wall time.
func (m *FacetModel) Decay(dt float64) {
	for i := range m.facets {
		m.facets[i].Hit.decay(dt)
	}
}

// Lit returns how many facets currently have a visible highlight.
func (m *FacetModel) Lit() int {
	n := 0
	for i := range m.facets {
		if !m.facets[i].Hit.Dark() {
			n++
		}
	}
	return n
}
