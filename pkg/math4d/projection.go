package math4d

import (
	"math"

	"github.com/taigrr/tesseract/pkg/math3d"
)

// DefaultViewerDistance is the viewer's position along the w axis.
const DefaultViewerDistance = 3.0

// minDepth bounds |d - w| away from zero so a point sitting exactly at the
// viewer does not divide by zero.
const minDepth = 1e-9

// Factor is the perspective scale d / (d - w) for a point at depth w, with
// d - w kept at least minDepth away from zero.
func Factor(w, d float64) float64 {
	den := d - w
	if math.Abs(den) < minDepth {
		den = math.Copysign(minDepth, den)
	}
	return d / den
}

// Project perspective-projects v to 3D from a viewer at w = d:
// result = (x, y, z) * Factor(w, d).
func Project(v Vec4, d float64) math3d.Vec3 {
	f := Factor(v[AxisW], d)
	return math3d.V3(v[AxisX]*f, v[AxisY]*f, v[AxisZ]*f)
}
