package render

import (
	"math"
	"testing"

	"github.com/taigrr/tesseract/pkg/math3d"
)

// createTestRasterizer creates a rasterizer looking at the origin from +Z.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))
	rasterizer := NewRasterizer(camera, fb)
	rasterizer.ClearDepth()
	fb.Clear(ColorBlack)
	return rasterizer, fb
}

func TestEdgeCoeffs(t *testing.T) {
	// Edge from (0,0) to (1,0); screen Y grows downward.
	e := edgeCoeffs(0, 0, 1, 0)
	if got := edgeFunc(e, 0.5, 1); got <= 0 {
		t.Errorf("edge(0.5, 1) = %v, want > 0", got)
	}
	if got := edgeFunc(e, 0.5, -1); got >= 0 {
		t.Errorf("edge(0.5, -1) = %v, want < 0", got)
	}
	if got := edgeFunc(e, 0.25, 0); got != 0 {
		t.Errorf("edge(0.25, 0) = %v, want 0", got)
	}
}

func TestMin3Max3(t *testing.T) {
	if min3(1, 2, 3) != 1 || min3(3, 1, 2) != 1 || min3(2, 3, 1) != 1 {
		t.Error("min3 failed")
	}
	if max3(1, 2, 3) != 3 || max3(3, 1, 2) != 3 || max3(2, 3, 1) != 3 {
		t.Error("max3 failed")
	}
}

func TestFillTriangleBothWindings(t *testing.T) {
	a, b, c := math3d.V3(-2, -2, 0), math3d.V3(2, -2, 0), math3d.V3(0, 2, 0)

	tests := []struct {
		name       string
		v0, v1, v2 math3d.Vec3
	}{
		{"counter-clockwise", a, b, c},
		{"clockwise", a, c, b},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(40, 40)
			r.FillTriangle(tc.v0, tc.v1, tc.v2, ColorRed)

			if got := fb.GetPixel(20, 22); got != ColorRed {
				t.Errorf("center pixel = %v, want red", got)
			}
			if got := fb.GetPixel(1, 1); got != ColorBlack {
				t.Errorf("corner pixel = %v, want untouched", got)
			}
			if r.Stats.Triangles != 1 {
				t.Errorf("Stats.Triangles = %d, want 1", r.Stats.Triangles)
			}
		})
	}
}

func TestFillTriangleTranslucent(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.FillQuad(
		math3d.V3(-2, -2, 0), math3d.V3(2, -2, 0),
		math3d.V3(2, 2, 0), math3d.V3(-2, 2, 0),
		RGBA(255, 0, 0, 128),
	)

	got := fb.GetPixel(20, 20)
	if absInt(int(got.R)-128) > 1 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("blended pixel = %v, want ~(128, 0, 0, 255)", got)
	}
	if r.getDepth(20, 20) != math.MaxFloat64 {
		t.Error("translucent fill should not write depth")
	}
	if r.Stats.PixelsBlended == 0 {
		t.Error("expected blended pixels")
	}
}

func TestFillTriangleDepthTest(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	quad := func(z float64, c Color) {
		r.FillQuad(
			math3d.V3(-2, -2, z), math3d.V3(2, -2, z),
			math3d.V3(2, 2, z), math3d.V3(-2, 2, z),
			c,
		)
	}

	quad(1, ColorBlue)
	quad(0, ColorRed)
	if got := fb.GetPixel(20, 20); got != ColorBlue {
		t.Errorf("farther opaque quad overwrote nearer one: %v", got)
	}

	quad(-1, RGBA(0, 255, 0, 128))
	if got := fb.GetPixel(20, 20); got != ColorBlue {
		t.Errorf("translucent quad behind opaque one was blended: %v", got)
	}
	if r.Stats.PixelsOccluded == 0 {
		t.Error("expected occluded pixels")
	}
}

func TestFillTriangleBehindCamera(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.FillTriangle(math3d.V3(-1, -1, 10), math3d.V3(1, -1, 0), math3d.V3(0, 1, 0), ColorRed)
	for _, p := range fb.Pixels {
		if p != ColorBlack {
			t.Fatal("triangle crossing the camera plane should be skipped")
		}
	}
}

func TestFillSphere(t *testing.T) {
	r, fb := createTestRasterizer(60, 60)
	r.FillSphere(math3d.Zero3(), 0.5, ColorGreen)

	center := fb.GetPixel(30, 30)
	if center.G < 240 {
		t.Errorf("sphere center = %v, want near full green", center)
	}
	// Radius in pixels: 0.5 * 60 / (2 * tan(37.5°) * 6) ≈ 3.26.
	rim := fb.GetPixel(32, 30)
	if rim == ColorBlack || rim.G >= center.G {
		t.Errorf("rim pixel = %v, want dimmer green than center %v", rim, center)
	}
	if got := fb.GetPixel(40, 30); got != ColorBlack {
		t.Errorf("pixel outside sphere = %v, want untouched", got)
	}
	if r.Stats.Spheres != 1 {
		t.Errorf("Stats.Spheres = %d, want 1", r.Stats.Spheres)
	}
}

func TestFillSphereCulled(t *testing.T) {
	r, _ := createTestRasterizer(20, 20)
	r.FillSphere(math3d.V3(0, 0, 20), 0.5, ColorGreen)
	r.FillSphere(math3d.V3(50, 0, 0), 0.5, ColorGreen)
	if r.Stats.SpheresCulled != 2 || r.Stats.Spheres != 0 {
		t.Errorf("stats = %+v, want 2 culled", r.Stats)
	}
}

func TestRasterizerClearDepth(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)

	// Set some depth values
	r.setDepth(5, 5, 1.0)
	if r.getDepth(5, 5) != 1.0 {
		t.Error("setDepth/getDepth failed")
	}

	// Clear and verify
	r.ClearDepth()
	if r.getDepth(5, 5) != math.MaxFloat64 {
		t.Error("ClearDepth should reset to MaxFloat64")
	}
}

func TestRasterizerDepthBoundsCheck(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)

	// Out of bounds should return MaxFloat64 and not panic
	if r.getDepth(-1, 0) != math.MaxFloat64 {
		t.Error("Out of bounds getDepth should return MaxFloat64")
	}
	if r.getDepth(100, 0) != math.MaxFloat64 {
		t.Error("Out of bounds getDepth should return MaxFloat64")
	}

	// setDepth out of bounds should not panic
	r.setDepth(-1, 0, 1.0) // Should not panic
	r.setDepth(100, 0, 1.0)
}

// Helper function for color comparison tolerance
func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func BenchmarkFillTriangle(b *testing.B) {
	r, _ := createTestRasterizer(160, 90)
	for b.Loop() {
		r.ClearDepth()
		r.FillTriangle(math3d.V3(-2, -2, 0), math3d.V3(2, -2, 0), math3d.V3(0, 2, 0), RGBA(255, 0, 0, 128))
	}
}

func BenchmarkFillSphere(b *testing.B) {
	r, _ := createTestRasterizer(160, 90)
	for b.Loop() {
		r.ClearDepth()
		r.FillSphere(math3d.Zero3(), 0.3, ColorRed)
	}
}
