package tesseract

import (
	"github.com/taigrr/tesseract/pkg/math3d"
	"github.com/taigrr/tesseract/pkg/math4d"
)

// FacetView is one facet rotated and projected for drawing.
type FacetView struct {
	Axis    int
	Sign    int
	Corners [CellCornerCount]math3d.Vec3
	Hit     HitState
}

// PointView is one bouncing point rotated and projected for drawing.
type PointView struct {
	Position math3d.Vec3
	// Scale is the projection factor d/(d-w) at the point, for sizing its
	// sphere by perspective.
	Scale   float64
	Radius  float64
	Channel Channel
}

// Snapshot is the 3D geometry of one frame.
type Snapshot struct {
	Tick     uint64
	Vertices [VertexCount]math3d.Vec3
	Edges    []Edge
	Facets   [FacetCount]FacetView
	Points   []PointView
}

// Snapshot rotates every vertex, facet corner and point position by rot and
// projects the result. It does not change the simulation.
func (s *Simulation) Snapshot(rot math4d.Rotation) Snapshot {
	m := rot.Matrix()
	d := s.cfg.ViewerDistance

	snap := Snapshot{
		Tick:   s.ticks,
		Edges:  s.edges,
		Points: make([]PointView, len(s.points)),
	}
	for i, v := range s.vertices {
		snap.Vertices[i] = math4d.Project(m.MulVec(v), d)
	}
	for i := range s.facets.Len() {
		f := s.facets.At(i)
		fv := FacetView{Axis: f.Axis, Sign: f.Sign, Hit: f.Hit}
		for c, v := range f.Corners {
			fv.Corners[c] = math4d.Project(m.MulVec(v), d)
		}
		snap.Facets[i] = fv
	}
	for i, p := range s.points {
		r := m.MulVec(p.Position)
		snap.Points[i] = PointView{
			Position: math4d.Project(r, d),
			Scale:    math4d.Factor(r.W(), d),
			Radius:   p.Radius,
			Channel:  p.Channel,
		}
	}
	return snap
}

// Frame is Snapshot with the simulation's current rotation set.
func (s *Simulation) Frame() Snapshot {
	return s.Snapshot(s.Rotations())
}
