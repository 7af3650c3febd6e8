package tesseract

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Channel selects which color channel of a facet a point lights up.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Valid reports whether c is one of Red, Green or Blue.
func (c Channel) Valid() bool {
	return c >= Red && c <= Blue
}

// ParseChannel accepts "red", "green", "blue" (any case) or "r", "g", "b".
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown channel %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(b []byte) error {
	ch, err := ParseChannel(string(b))
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// Flash values written by a hit, and linear decay rates in units per second.
const (
	FlashIntensity   = 255.0
	FlashAlpha       = 128.0
	ChannelDecayRate = 255.0
	AlphaDecayRate   = 127.5
)

// HitState is a facet's transient highlight: three color channels and an
// alpha, each in [0, 255].
type HitState struct {
	R, G, B, A float64
}

// Channel returns the value of channel c.
func (h HitState) Channel(c Channel) float64 {
	switch c {
	case Red:
		return h.R
	case Green:
		return h.G
	case Blue:
		return h.B
	}
	panic(fmt.Sprintf("tesseract: %v", c))
}

// flash sets channel c to full intensity and alpha to the flash value.
// Repeated hits reset rather than accumulate.
func (h *HitState) flash(c Channel) {
	switch c {
	case Red:
		h.R = FlashIntensity
	case Green:
		h.G = FlashIntensity
	case Blue:
		h.B = FlashIntensity
	default:
		panic(fmt.Sprintf("tesseract: %v", c))
	}
	h.A = FlashAlpha
}

// decay lowers every channel linearly, flooring at zero.
func (h *HitState) decay(dt float64) {
	if dt <= 0 {
		return
	}
	h.R = math.Max(0, h.R-ChannelDecayRate*dt)
	h.G = math.Max(0, h.G-ChannelDecayRate*dt)
	h.B = math.Max(0, h.B-ChannelDecayRate*dt)
	h.A = math.Max(0, h.A-AlphaDecayRate*dt)
}

// Dark reports whether the facet is fully transparent and black.
func (h HitState) Dark() bool {
	return h.R == 0 && h.G == 0 && h.B == 0 && h.A == 0
}

// Unit returns (r, g, b, a) scaled to [0, 1], the color and opacity the
// facet is drawn with.
func (h HitState) Unit() [4]float64 {
	return [4]float64{h.R / 255, h.G / 255, h.B / 255, h.A / 255}
}

// RGBA returns the state as an 8-bit color, rounding each channel.
func (h HitState) RGBA() color.RGBA {
	return color.RGBA{to8(h.R), to8(h.G), to8(h.B), to8(h.A)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Min(255, math.Max(0, v))))
}
