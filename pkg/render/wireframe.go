package render

import (
	"github.com/taigrr/tesseract/pkg/math3d"
)

// Wireframe renders 3D line work on top of a framebuffer without depth
// testing.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space, alpha blended when color is
// translucent. Lines with an endpoint behind the camera are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, _, ok1 := w.camera.Project(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, _, ok2 := w.camera.Project(p2, w.fb.Width, w.fb.Height)
	if !ok1 || !ok2 {
		return
	}
	w.fb.DrawLineBlend(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}
