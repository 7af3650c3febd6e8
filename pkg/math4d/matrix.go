package math4d

import (
	"fmt"
	"math"
)

// Mat4 is a 4x4 linear map on Vec4, stored row-major as M[row][col].
type Mat4 [Dim][Dim]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range Dim {
		m[i][i] = 1
	}
	return m
}

// PlaneMatrix returns the matrix of a single planar rotation.
func PlaneMatrix(p Plane) Mat4 {
	if !p.Valid() {
		panic(fmt.Sprintf("math4d: invalid rotation plane (%d,%d)", p.I, p.J))
	}
	c, s := math.Cos(p.Angle), math.Sin(p.Angle)
	m := Identity()
	m[p.I][p.I], m[p.I][p.J] = c, -s
	m[p.J][p.I], m[p.J][p.J] = s, c
	return m
}

// Mul returns the product a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for r := range Dim {
		for c := range Dim {
			var sum float64
			for k := range Dim {
				sum += a[r][k] * b[k][c]
			}
			m[r][c] = sum
		}
	}
	return m
}

// MulVec transforms v.
func (a Mat4) MulVec(v Vec4) Vec4 {
	var out Vec4
	for r := range Dim {
		out[r] = a[r][0]*v[0] + a[r][1]*v[1] + a[r][2]*v[2] + a[r][3]*v[3]
	}
	return out
}

// Transpose returns the transposed matrix. For a rotation this is its inverse.
func (a Mat4) Transpose() Mat4 {
	var m Mat4
	for r := range Dim {
		for c := range Dim {
			m[c][r] = a[r][c]
		}
	}
	return m
}
