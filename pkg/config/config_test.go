package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

var soloPoint = tesseract.PointConfig{
	Name:     "solo",
	Position: math4d.V4(0.1, 0.2, 0.3, 0.4),
	Velocity: math4d.V4(0.01, 0, 0, -0.01),
	Radius:   0.2,
	Channel:  tesseract.Green,
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"toml", "scene.toml", `
viewer_distance = 4.5
rotation_speed = 0.02

[[points]]
name = "solo"
position = [0.1, 0.2, 0.3, 0.4]
velocity = [0.01, 0.0, 0.0, -0.01]
radius = 0.2
channel = "green"
`},
		{"yaml", "scene.yml", `
viewer_distance: 4.5
rotation_speed: 0.02
points:
  - name: solo
    position: [0.1, 0.2, 0.3, 0.4]
    velocity: [0.01, 0, 0, -0.01]
    radius: 0.2
    channel: green
`},
		{"gcfg", "scene.ini", `
[sim]
viewer-distance = 4.5
rotation-speed = 0.02

[point "solo"]
position = 0.1 0.2 0.3 0.4
velocity = 0.01 0 0 -0.01
radius = 0.2
channel = green
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tc.file, tc.body))
			require.NoError(t, err)
			assert.Equal(t, 4.5, cfg.ViewerDistance)
			assert.Equal(t, 0.02, cfg.RotationSpeed)
			assert.Equal(t, tesseract.DefaultConfig().PlaneMultipliers, cfg.PlaneMultipliers)
			assert.Equal(t, []tesseract.PointConfig{soloPoint}, cfg.Points)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "speed.toml", "rotation_speed = 0.05\n"))
	require.NoError(t, err)

	want := tesseract.DefaultConfig()
	want.RotationSpeed = 0.05
	assert.Equal(t, want, cfg)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, tesseract.DefaultConfig(), cfg)
}

func TestLoadExplicitNoPoints(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", "points: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Points)
}

func TestGcfgPointsSortedByName(t *testing.T) {
	cfg, err := Load(writeFile(t, "two.conf", `
[sim]
plane-multipliers = 2 1 0 -1

[point "zeta"]
position = 0 0 0 0
velocity = 0 0 0 0.01
radius = 0.1
channel = b

[point "alpha"]
position = 0 0 0 0
velocity = 0.01 0 0 0
radius = 0.1
channel = red
`))
	require.NoError(t, err)
	require.Len(t, cfg.Points, 2)
	assert.Equal(t, "alpha", cfg.Points[0].Name)
	assert.Equal(t, tesseract.Red, cfg.Points[0].Channel)
	assert.Equal(t, "zeta", cfg.Points[1].Name)
	assert.Equal(t, tesseract.Blue, cfg.Points[1].Channel)
	assert.Equal(t, [4]float64{2, 1, 0, -1}, cfg.PlaneMultipliers)
	assert.Equal(t, 3.0, cfg.ViewerDistance)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		invalid bool
	}{
		{"unknown toml key", "a.toml", "viewer = 3\n", false},
		{"unknown yaml key", "a.yaml", "speed: 3\n", false},
		{"malformed toml", "a.toml", "viewer_distance = \n", false},
		{"bad channel", "a.toml", "[[points]]\nchannel = \"purple\"\nradius = 0.1\n", false},
		{"short vector", "a.ini", "[point \"p\"]\nposition = 0 0 0\nvelocity = 0 0 0 0\nradius = 0.1\n", false},
		{"viewer too close", "a.yaml", "viewer_distance: 1.5\n", true},
		{"point outside", "a.ini", "[point \"p\"]\nposition = 0.95 0 0 0\nvelocity = 0 0 0 0\nradius = 0.1\nchannel = red\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.body))
			require.Error(t, err)
			assert.Equal(t, tc.invalid, errors.Is(err, tesseract.ErrInvalidConfig), err.Error())
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load(writeFile(t, "scene.json", "{}"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(tesseract.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), `channel = "blue"`)

	cfg, err := Decode(TOML, data)
	require.NoError(t, err)
	assert.Equal(t, tesseract.DefaultConfig(), cfg)
}

func TestLoadPointWithoutChannel(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"toml", "a.toml", "[[points]]\nname = \"p\"\nradius = 0.1\n"},
		{"yaml", "a.yaml", "points:\n  - name: p\n    radius: 0.1\n"},
		{"gcfg", "a.ini", "[point \"p\"]\nposition = 0 0 0 0\nvelocity = 0 0 0 0\nradius = 0.1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.body))
			assert.ErrorIs(t, err, ErrMissingChannel)
		})
	}
}
