package tesseract

import "github.com/taigrr/tesseract/pkg/math4d"

// Bounce is one facet contact produced by MovingPoint.Update.
type Bounce struct {
	Axis int
	Sign int
}

// MovingPoint is a ball bouncing inside the hypercube.
type MovingPoint struct {
	Position math4d.Vec4
	Velocity math4d.Vec4 // added to Position once per tick
	Radius   float64
	Channel  Channel

	contact [math4d.Dim]bool
}

// NewMovingPoint creates a point with no boundary contact.
func NewMovingPoint(pos, vel math4d.Vec4, radius float64, ch Channel) *MovingPoint {
	return &MovingPoint{Position: pos, Velocity: vel, Radius: radius, Channel: ch}
}

// InContact reports whether the point is currently pressing on the boundary
// of axis.
func (p *MovingPoint) InContact(axis int) bool {
	return p.contact[axis]
}

// pressing reports whether the point overlaps the boundary of axis and is
// still moving outward.
func (p *MovingPoint) pressing(axis int, limit float64) bool {
	x, v := p.Position[axis], p.Velocity[axis]
	return (x > limit && v > 0) || (x < -limit && v < 0)
}

// Update advances the point by one velocity step and reflects it off the
// walls at ±HalfExtent. On the first tick of a contact the point flashes the
// matching facet in facets, reverses that velocity component and latches the
// axis until it stops pressing. The position is not corrected, so a small
// overshoot past the wall is expected.
func (p *MovingPoint) Update(facets *FacetModel) []Bounce {
	p.Position = p.Position.Add(p.Velocity)

	limit := HalfExtent - p.Radius
	var bounces []Bounce
	for k := range math4d.Dim {
		if !p.pressing(k, limit) {
			p.contact[k] = false
			continue
		}
		if p.contact[k] {
			continue
		}
		sign := -1
		if p.Position[k] > 0 {
			sign = 1
		}
		facets.TriggerHit(k, sign, p.Channel)
		p.Velocity[k] = -p.Velocity[k]
		p.contact[k] = true
		bounces = append(bounces, Bounce{Axis: k, Sign: sign})
	}
	return bounces
}
