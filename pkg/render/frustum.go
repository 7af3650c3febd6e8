package render

import (
	"github.com/taigrr/tesseract/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the inward-facing planes of a
// view-projection matrix (Gribb/Hartmann): each plane is the last row plus or
// minus one of the others.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	w := m.Row(3)
	rows := [6]math3d.Vec4{
		FrustumLeft:   w.Add(m.Row(0)),
		FrustumRight:  w.Sub(m.Row(0)),
		FrustumBottom: w.Add(m.Row(1)),
		FrustumTop:    w.Sub(m.Row(1)),
		FrustumNear:   w.Add(m.Row(2)),
		FrustumFar:    w.Sub(m.Row(2)),
	}

	var f Frustum
	for i, r := range rows {
		f.Planes[i] = Plane{Normal: r.Vec3(), D: r.W}
		f.Planes[i].Normalize()
	}
	return f
}

// IntersectsSphere tests if a sphere intersects the frustum.
// center is the sphere center, radius is the sphere radius.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Frustum returns the current view frustum from the camera.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
