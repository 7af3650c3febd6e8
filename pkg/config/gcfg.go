package config

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/taigrr/tesseract/pkg/tesseract"
)

// gcfgFile is the git-config layout:
//
//	[sim]
//	viewer-distance = 3
//	rotation-speed = 0.01
//	plane-multipliers = 1 0.5 0.3 0.7
//
//	[point "red"]
//	position = 0.5 0.3 -0.2 0.1
//	velocity = 0.01 -0.015 0.012 0.008
//	radius = 0.1
//	channel = red
//
// Vectors are whitespace separated. Points are ordered by name. When any
// point section is present the default points are replaced.
type gcfgFile struct {
	Sim struct {
		ViewerDistance   float64 `gcfg:"viewer-distance"`
		RotationSpeed    float64 `gcfg:"rotation-speed"`
		PlaneMultipliers string  `gcfg:"plane-multipliers"`
	}
	Point map[string]*gcfgPoint
}

type gcfgPoint struct {
	Position string
	Velocity string
	Radius   float64
	Channel  string
}

func decodeGcfg(data []byte, cfg *tesseract.Config) error {
	var f gcfgFile
	// gcfg only writes the variables present in the file.
	f.Sim.ViewerDistance = cfg.ViewerDistance
	f.Sim.RotationSpeed = cfg.RotationSpeed
	if err := gcfg.ReadStringInto(&f, string(data)); err != nil {
		return fmt.Errorf("decode gcfg: %w", err)
	}

	cfg.ViewerDistance = f.Sim.ViewerDistance
	cfg.RotationSpeed = f.Sim.RotationSpeed
	if strings.TrimSpace(f.Sim.PlaneMultipliers) != "" {
		m, err := parseVec4(f.Sim.PlaneMultipliers)
		if err != nil {
			return fmt.Errorf("sim.plane-multipliers: %w", err)
		}
		cfg.PlaneMultipliers = m
	}

	if len(f.Point) == 0 {
		return nil
	}
	names := make([]string, 0, len(f.Point))
	for name := range f.Point {
		names = append(names, name)
	}
	slices.Sort(names)

	cfg.Points = cfg.Points[:0:0]
	for _, name := range names {
		p := f.Point[name]
		pos, err := parseVec4(p.Position)
		if err != nil {
			return fmt.Errorf("point %q position: %w", name, err)
		}
		vel, err := parseVec4(p.Velocity)
		if err != nil {
			return fmt.Errorf("point %q velocity: %w", name, err)
		}
		if strings.TrimSpace(p.Channel) == "" {
			return fmt.Errorf("%w: point %q", ErrMissingChannel, name)
		}
		ch, err := tesseract.ParseChannel(p.Channel)
		if err != nil {
			return fmt.Errorf("point %q channel: %w", name, err)
		}
		cfg.Points = append(cfg.Points, tesseract.PointConfig{
			Name:     name,
			Position: pos,
			Velocity: vel,
			Radius:   p.Radius,
			Channel:  ch,
		})
	}
	return nil
}
