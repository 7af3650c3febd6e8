package render

import (
	"math"

	"github.com/taigrr/tesseract/pkg/math3d"
)

// Camera is a perspective camera that views the projected hypercube. Pitch
// and Yaw are radians; a camera with zero angles looks down -Z.
type Camera struct {
	Position math3d.Vec3
	Pitch    float64
	Yaw      float64

	FOV         float64 // vertical, radians
	AspectRatio float64 // width / height
	Near, Far   float64

	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// Defaults frame the projected hypercube from six units out.
const (
	DefaultCameraDistance = 6.0
	DefaultFOV            = 75 * math.Pi / 180
)

// NewCamera creates a camera on the +Z axis looking at the origin.
func NewCamera() *Camera {
	c := &Camera{
		Position:    math3d.V3(0, 0, DefaultCameraDistance),
		FOV:         DefaultFOV,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
	c.LookAt(math3d.Zero3())
	return c
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(-c.Yaw))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)

	c.viewDirty = true
}

// Orbit places the camera distance units from target at the given yaw and
// pitch (radians) and points it at target.
func (c *Camera) Orbit(target math3d.Vec3, distance, yaw, pitch float64) {
	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	).Scale(distance)
	c.SetPosition(target.Add(offset))
	c.LookAt(target)
}

// Project transforms a world point to screen space without clipping.
// x and y are pixels, z is NDC depth and w is the clip-space w (the view
// depth). ok is false for points at or behind the camera.
func (c *Camera) Project(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, z, w float64, ok bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, clip.W, false
	}
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, clip.W, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at view
// depth w, measured vertically.
func (c *Camera) PixelsPerUnit(w float64, screenHeight int) float64 {
	if w <= 0 {
		return 0
	}
	return float64(screenHeight) / (2 * math.Tan(c.FOV/2) * w)
}
