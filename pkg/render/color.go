package render

import "image/color"

// Over composites src over dst (straight alpha).
func Over(src, dst color.RGBA) color.RGBA {
	switch src.A {
	case 255:
		return src
	case 0:
		return dst
	}
	a := float64(src.A) / 255
	da := float64(dst.A) / 255
	outA := a + da*(1-a)
	if outA == 0 {
		return color.RGBA{}
	}
	mix := func(s, d uint8) uint8 {
		return uint8((float64(s)*a+float64(d)*da*(1-a))/outA + 0.5)
	}
	return color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(outA*255 + 0.5),
	}
}

// MultiplyColor scales the RGB channels by intensity in [0, 1], keeping alpha.
func MultiplyColor(c Color, intensity float64) Color {
	intensity = max(0, min(1, intensity))
	return Color{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c Color, a uint8) Color {
	c.A = a
	return c
}
