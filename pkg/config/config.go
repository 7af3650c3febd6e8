// Package config loads tesseract engine settings from TOML, YAML or
// git-config style (gcfg) files. Keys a file leaves out keep their
// tesseract.DefaultConfig values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

var (
	// ErrUnknownFormat is returned for a file extension no decoder handles.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrMissingChannel is returned for a point entry without a channel.
	ErrMissingChannel = errors.New("missing channel")
)

// Format is a config file syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	GCFG Format = "gcfg"
)

// FormatOf picks a format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".ini", ".gcfg", ".conf", ".cfg":
		return GCFG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// overlay is the file shape for TOML and YAML. Pointer fields distinguish a
// missing key from a zero value.
type overlay struct {
	ViewerDistance   *float64     `toml:"viewer_distance" yaml:"viewer_distance"`
	RotationSpeed    *float64     `toml:"rotation_speed" yaml:"rotation_speed"`
	PlaneMultipliers *[4]float64  `toml:"plane_multipliers" yaml:"plane_multipliers"`
	Points           *[]filePoint `toml:"points" yaml:"points"`
}

// filePoint is one point entry. Channel has no default: Red is the zero
// Channel, so a nil pointer is the only way to see it left out.
type filePoint struct {
	Name     string             `toml:"name" yaml:"name"`
	Position math4d.Vec4        `toml:"position" yaml:"position"`
	Velocity math4d.Vec4        `toml:"velocity" yaml:"velocity"`
	Radius   float64            `toml:"radius" yaml:"radius"`
	Channel  *tesseract.Channel `toml:"channel" yaml:"channel"`
}

func (o overlay) apply(cfg *tesseract.Config) error {
	if o.ViewerDistance != nil {
		cfg.ViewerDistance = *o.ViewerDistance
	}
	if o.RotationSpeed != nil {
		cfg.RotationSpeed = *o.RotationSpeed
	}
	if o.PlaneMultipliers != nil {
		cfg.PlaneMultipliers = *o.PlaneMultipliers
	}
	if o.Points == nil {
		return nil
	}
	points := make([]tesseract.PointConfig, 0, len(*o.Points))
	for i, p := range *o.Points {
		if p.Channel == nil {
			return fmt.Errorf("%w: points[%d] %q has no channel", ErrMissingChannel, i, p.Name)
		}
		points = append(points, tesseract.PointConfig{
			Name:     p.Name,
			Position: p.Position,
			Velocity: p.Velocity,
			Radius:   p.Radius,
			Channel:  *p.Channel,
		})
	}
	cfg.Points = points
	return nil
}

// Load reads path, decodes it according to its extension on top of
// tesseract.DefaultConfig and validates the result.
func Load(path string) (tesseract.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return tesseract.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tesseract.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(format, data)
	if err != nil {
		return tesseract.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format on top of the defaults and
// validates the result.
func Decode(format Format, data []byte) (tesseract.Config, error) {
	cfg := tesseract.DefaultConfig()
	switch format {
	case TOML:
		var o overlay
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return cfg, fmt.Errorf("decode toml: %w", err)
		}
		if err := o.apply(&cfg); err != nil {
			return cfg, err
		}
	case YAML:
		var o overlay
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults alone.
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode yaml: %w", err)
		}
		if err := o.apply(&cfg); err != nil {
			return cfg, err
		}
	case GCFG:
		if err := decodeGcfg(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(cfg tesseract.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// parseVec4 reads four whitespace separated numbers.
func parseVec4(s string) (math4d.Vec4, error) {
	var v math4d.Vec4
	fields := strings.Fields(s)
	if len(fields) != math4d.Dim {
		return v, fmt.Errorf("want %d numbers, got %d in %q", math4d.Dim, len(fields), s)
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, fmt.Errorf("parse %q: %w", f, err)
		}
		v[i] = x
	}
	return v, nil
}
