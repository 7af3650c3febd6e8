// Package math4d provides 4D vectors, planar rotations and the perspective
// projection from 4D to 3D.
//
// Coordinates are ordered (w, x, y, z). Axis 0 (w) is the depth axis that
// Project divides away.
package math4d

import "math"

// Axis indices into a Vec4.
const (
	AxisW = 0
	AxisX = 1
	AxisY = 2
	AxisZ = 3
)

// Dim is the number of coordinates in a Vec4.
const Dim = 4

// Vec4 is a point or direction in 4D space. It is a value type; every
// operation returns a new vector.
type Vec4 [Dim]float64

// V4 creates a new Vec4 from (w, x, y, z).
func V4(w, x, y, z float64) Vec4 {
	return Vec4{w, x, y, z}
}

// W returns the depth coordinate.
func (v Vec4) W() float64 { return v[AxisW] }

// X returns the x coordinate.
func (v Vec4) X() float64 { return v[AxisX] }

// Y returns the y coordinate.
func (v Vec4) Y() float64 { return v[AxisY] }

// Z returns the z coordinate.
func (v Vec4) Z() float64 { return v[AxisZ] }

// With returns a copy of v with coordinate axis set to val.
func (v Vec4) With(axis int, val float64) Vec4 {
	v[axis] = val
	return v
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Len returns the Euclidean length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or zero for the zero vector.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// ApproxEqual reports whether every coordinate of a and b differs by at most tol.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Vec4) ApproxEqual(b Vec4, tol float64) bool {
	for i := range Dim {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
