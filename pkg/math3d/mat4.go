package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order: m[col*4+row] is the
// element at (row, col) and the last column holds a translation.
type Mat4 [16]float64

// Cols builds a matrix from its four columns.
func Cols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Cols(V4(1, 0, 0, 0), V4(0, 1, 0, 0), V4(0, 0, 1, 0), V4(0, 0, 0, 1))
}

// Translate returns a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// planeRotation turns axis i toward axis j by angle radians.
func planeRotation(i, j int, angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.set(i, i, c)
	m.set(j, j, c)
	m.set(j, i, s)
	m.set(i, j, -s)
	return m
}

// RotateX rotates counter-clockwise around the X axis (Y toward Z).
func RotateX(angle float64) Mat4 { return planeRotation(1, 2, angle) }

// RotateY rotates counter-clockwise around the Y axis (Z toward X).
func RotateY(angle float64) Mat4 { return planeRotation(2, 0, angle) }


// Perspective returns an OpenGL-style projection: fovy is the vertical field
// of view in radians and clip-space w is the distance in front of the eye.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	depth := near - far

	var m Mat4
	m.set(0, 0, f/aspect)
	m.set(1, 1, f)
	m.set(2, 2, (far+near)/depth)
	m.set(2, 3, 2*far*near/depth)
	m.set(3, 2, -1)
	return m
}

// At returns the element at (row, col).
func (m Mat4) At(row, col int) float64 {
	return m[col*4+row]
}

func (m *Mat4) set(row, col int, v float64) {
	m[col*4+row] = v
}

// Row returns row i.
func (m Mat4) Row(i int) Vec4 {
	return V4(m[i], m[4+i], m[8+i], m[12+i])
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	return V4(m[i*4], m[i*4+1], m[i*4+2], m[i*4+3])
}

// Mul returns the product m * b, which applies b first.
func (m Mat4) Mul(b Mat4) Mat4 {
	return Cols(m.MulVec4(b.Col(0)), m.MulVec4(b.Col(1)), m.MulVec4(b.Col(2)), m.MulVec4(b.Col(3)))
}

// MulVec4 transforms v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return V4(m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v), m.Row(3).Dot(v))
}
