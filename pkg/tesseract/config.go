package tesseract

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// HalfExtent is the hypercube's half edge length; coordinates span [-1, 1].
const HalfExtent = 1.0

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// PointConfig describes one bouncing point's starting state.
type PointConfig struct {
	Name     string      `toml:"name" yaml:"name"`
	Position math4d.Vec4 `toml:"position" yaml:"position"`
	Velocity math4d.Vec4 `toml:"velocity" yaml:"velocity"`
	Radius   float64     `toml:"radius" yaml:"radius"`
	Channel  Channel     `toml:"channel" yaml:"channel"`
}

// Config holds the engine's tunables.
type Config struct {
	// ViewerDistance is d in the projection f = d / (d - w).
	ViewerDistance float64 `toml:"viewer_distance" yaml:"viewer_distance"`

	// RotationSpeed is the base angular step in radians per tick; each of the
	// four rotation planes advances by RotationSpeed times its multiplier.
	RotationSpeed    float64     `toml:"rotation_speed" yaml:"rotation_speed"`
	PlaneMultipliers [4]float64 `toml:"plane_multipliers" yaml:"plane_multipliers"`

	Points []PointConfig `toml:"points" yaml:"points"`
}

// DefaultConfig returns d=3, 0.01 rad/tick and three points, one per channel.
func DefaultConfig() Config {
	return Config{
		ViewerDistance:   math4d.DefaultViewerDistance,
		RotationSpeed:    0.01,
		PlaneMultipliers: [4]float64{1.0, 0.5, 0.3, 0.7},
		Points: []PointConfig{
			{
				Name:     "red",
				Position: math4d.V4(0.5, 0.3, -0.2, 0.1),
				Velocity: math4d.V4(0.01, -0.015, 0.012, 0.008),
				Radius:   0.1,
				Channel:  Red,
			},
			{
				Name:     "green",
				Position: math4d.V4(-0.4, 0.2, 0.6, -0.3),
				Velocity: math4d.V4(-0.012, 0.009, -0.007, 0.014),
				Radius:   0.08,
				Channel:  Green,
			},
			{
				Name:     "blue",
				Position: math4d.V4(0.1, -0.5, -0.1, 0.4),
				Velocity: math4d.V4(0.008, 0.013, 0.011, -0.01),
				Radius:   0.12,
				Channel:  Blue,
			},
		},
	}
}

// Validate checks the config against the hypercube's geometry. The viewer
// must sit outside the hypercube's circumsphere (radius 2), and every point
// must stay inside the viewer's sphere even at its furthest overshoot of
// 1 - radius + max|v| per axis, so rotated geometry never reaches the
// projection singularity.
func (c Config) Validate() error {
	circumradius := 2 * HalfExtent
	if !(c.ViewerDistance > circumradius) || math.IsInf(c.ViewerDistance, 1) {
		return fmt.Errorf("%w: viewer distance %v must exceed %v", ErrInvalidConfig, c.ViewerDistance, circumradius)
	}
	if !finite(c.RotationSpeed) || !finite(c.PlaneMultipliers[:]...) {
		return fmt.Errorf("%w: rotation speed %v, multipliers %v", ErrInvalidConfig, c.RotationSpeed, c.PlaneMultipliers)
	}
	for i, p := range c.Points {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !(p.Radius > 0 && p.Radius < HalfExtent) {
			return fmt.Errorf("%w: point %s radius %v must be in (0, %v)", ErrInvalidConfig, name, p.Radius, HalfExtent)
		}
		if !finite(p.Position[:]...) || !finite(p.Velocity[:]...) {
			return fmt.Errorf("%w: point %s has a non-finite position or velocity", ErrInvalidConfig, name)
		}
		if !p.Channel.Valid() {
			return fmt.Errorf("%w: point %s has %v", ErrInvalidConfig, name, p.Channel)
		}
		limit := HalfExtent - p.Radius
		for k, x := range p.Position {
			if math.Abs(x) > limit {
				return fmt.Errorf("%w: point %s starts at %v on axis %d, outside ±%v", ErrInvalidConfig, name, x, k, limit)
			}
		}
		var step float64
		for _, v := range p.Velocity {
			step = max(step, math.Abs(v))
		}
		// A point's 4D norm is at most 2 * its largest coordinate.
		if reach := 2 * (limit + step); !(reach < c.ViewerDistance) {
			return fmt.Errorf("%w: point %s velocity %v can carry it to radius %v, past the viewer at %v",
				ErrInvalidConfig, name, p.Velocity, reach, c.ViewerDistance)
		}
	}
	return nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
