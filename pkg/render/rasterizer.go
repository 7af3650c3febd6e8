package render

import (
	"math"

	"github.com/taigrr/tesseract/pkg/math3d"
)

// Rasterizer fills flat-colored triangles and shaded spheres into a
// framebuffer with a depth buffer. Opaque fills write depth; translucent
// fills are depth tested and alpha blended but leave the depth buffer alone,
// so draw opaque geometry first.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)
	Stats   Stats
}

// Stats counts what the last frame drew.
type Stats struct {
	Triangles      int
	Spheres        int
	SpheresCulled  int
	PixelsBlended  int
	PixelsOccluded int
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer and the frame stats (call before each frame).
func (r *Rasterizer) ClearDepth() {
	r.Stats = Stats{}
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// plot writes c at (x, y) if it passes the depth test.
func (r *Rasterizer) plot(x, y int, z float64, c Color) {
	if z >= r.getDepth(x, y) {
		r.Stats.PixelsOccluded++
		return
	}
	if c.A == 255 {
		r.setDepth(x, y, z)
		r.fb.SetPixel(x, y, c)
		return
	}
	r.Stats.PixelsBlended++
	r.fb.BlendPixel(x, y, c)
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // Depth (for Z-buffer)
	W    float64 // Clip-space w (view depth)
}

func (r *Rasterizer) project(p math3d.Vec3) (screenVertex, bool) {
	x, y, z, w, ok := r.camera.Project(p, r.Width(), r.Height())
	return screenVertex{X: x, Y: y, Z: z, W: w}, ok
}

// FillTriangle rasterizes a flat-colored triangle. Both windings are drawn.
// Triangles with a vertex behind the camera are skipped.
func (r *Rasterizer) FillTriangle(v0, v1, v2 math3d.Vec3, c Color) {
	if c.A == 0 {
		return
	}
	var sv [3]screenVertex
	for i, p := range [3]math3d.Vec3{v0, v1, v2} {
		var ok bool
		if sv[i], ok = r.project(p); !ok {
			return
		}
	}

	area := edgeFunc(edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y), sv[2].X, sv[2].Y)
	if area == 0 {
		return
	}
	// Flip to a consistent winding so all edge functions are positive inside.
	if area < 0 {
		sv[1], sv[2] = sv[2], sv[1]
		area = -area
	}
	r.Stats.Triangles++

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	e0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	e1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	e2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	invArea := 1 / area

	// Evaluate at the first pixel center, then step incrementally.
	px, py := float64(minX)+0.5, float64(minY)+0.5
	w0Row := edgeFunc(e0, px, py)
	w1Row := edgeFunc(e1, px, py)
	w2Row := edgeFunc(e2, px, py)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if covers(w0, e0) && covers(w1, e1) && covers(w2, e2) {
				z := (w0*sv[0].Z + w1*sv[1].Z + w2*sv[2].Z) * invArea
				r.plot(x, y, z, c)
			}
			w0 += e0.A
			w1 += e1.A
			w2 += e2.A
		}
		w0Row += e0.B
		w1Row += e1.B
		w2Row += e2.B
	}
}

// FillQuad draws a planar quad as two triangles.
func (r *Rasterizer) FillQuad(v0, v1, v2, v3 math3d.Vec3, c Color) {
	r.FillTriangle(v0, v1, v2, c)
	r.FillTriangle(v0, v2, v3, c)
}

// FillSphere draws a sphere as a depth-tested disc, shaded brighter toward
// its center. Spheres outside the view frustum are skipped.
func (r *Rasterizer) FillSphere(center math3d.Vec3, radius float64, c Color) {
	if radius <= 0 {
		return
	}
	if !r.camera.Frustum().IntersectsSphere(center, radius) {
		r.Stats.SpheresCulled++
		return
	}
	sc, ok := r.project(center)
	if !ok {
		r.Stats.SpheresCulled++
		return
	}
	r.Stats.Spheres++

	pr := radius * r.camera.PixelsPerUnit(sc.W, r.Height())
	if pr < 0.5 {
		r.plot(int(sc.X), int(sc.Y), sc.Z, c)
		return
	}

	minX := max(0, int(math.Floor(sc.X-pr)))
	maxX := min(r.Width()-1, int(math.Ceil(sc.X+pr)))
	minY := max(0, int(math.Floor(sc.Y-pr)))
	maxY := min(r.Height()-1, int(math.Ceil(sc.Y+pr)))
	inv := 1 / (pr * pr)
	for y := minY; y <= maxY; y++ {
		dy := float64(y) + 0.5 - sc.Y
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - sc.X
			d2 := (dx*dx + dy*dy) * inv
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			r.plot(x, y, sc.Z, MultiplyColor(c, 0.35+0.65*nz))
		}
	}
}

// edge holds the coefficients of edge(x, y) = A*x + B*y + C.
type edge struct {
	A, B, C float64
}

// edgeCoeffs returns the edge function through (x0, y0) and (x1, y1).
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) edge {
	return edge{
		A: y0 - y1, // dy
		B: x1 - x0, // -dx
		C: x0*y1 - x1*y0,
	}
}

// edgeFunc evaluates e at point (x, y).
func edgeFunc(e edge, x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// covers applies a top-left style tie break: a pixel center lying exactly on
// an edge belongs to only one of the two triangles sharing that edge.
func covers(w float64, e edge) bool {
	if w != 0 {
		return w > 0
	}
	return e.A > 0 || (e.A == 0 && e.B > 0)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
