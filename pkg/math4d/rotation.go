package math4d

import (
	"fmt"
	"math"
)

// Plane is a rotation confined to the coordinate plane spanned by axes I and J.
// Positive angles turn axis I toward axis J.
type Plane struct {
	I, J  int
	Angle float64
}

// Valid reports whether the plane names two distinct axes in [0, Dim).
func (p Plane) Valid() bool {
	return p.I >= 0 && p.I < Dim && p.J >= 0 && p.J < Dim && p.I != p.J
}

// Rotation is an ordered sequence of planar rotations. 4D rotations do not
// commute, so the order is part of the value.
type Rotation []Plane

// RotatePlane applies a 2D rotation to coordinates i and j of v, leaving the
// other two unchanged. It panics on an invalid axis pair.
func RotatePlane(v Vec4, i, j int, angle float64) Vec4 {
	if !(Plane{I: i, J: j}).Valid() {
		panic(fmt.Sprintf("math4d: invalid rotation plane (%d,%d)", i, j))
	}
	c, s := math.Cos(angle), math.Sin(angle)
	r := v
	r[i] = v[i]*c - v[j]*s
	r[j] = v[i]*s + v[j]*c
	return r
}

// Apply folds the planes over v left to right, each step rotating the
// previous step's output.
func (r Rotation) Apply(v Vec4) Vec4 {
	for _, p := range r {
		v = RotatePlane(v, p.I, p.J, p.Angle)
	}
	return v
}

// Inverse returns the rotation that undoes r: the planes in reverse order
// with negated angles.
func (r Rotation) Inverse() Rotation {
	inv := make(Rotation, len(r))
	for k, p := range r {
		inv[len(r)-1-k] = Plane{I: p.I, J: p.J, Angle: -p.Angle}
	}
	return inv
}

// Matrix composes the sequence into a single orthonormal matrix M such that
// M.MulVec(v) equals r.Apply(v) up to rounding.
func (r Rotation) Matrix() Mat4 {
	m := Identity()
	for _, p := range r {
		m = PlaneMatrix(p).Mul(m)
	}
	return m
}
