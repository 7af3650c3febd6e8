package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/tesseract/pkg/math4d"
	"github.com/taigrr/tesseract/pkg/render"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

func newSim(t *testing.T, cfg tesseract.Config) *tesseract.Simulation {
	t.Helper()
	s, err := tesseract.New(cfg)
	require.NoError(t, err)
	return s
}

func count(fb *render.Framebuffer, match func(render.Color) bool) int {
	n := 0
	for _, p := range fb.Pixels {
		if match(p) {
			n++
		}
	}
	return n
}

func TestRenderDefaultScene(t *testing.T) {
	s := newSim(t, tesseract.DefaultConfig())
	r := NewRenderer(80, 48, DefaultOptions())

	fb := r.Render(s.Snapshot(nil))
	require.Equal(t, 80, fb.Width)
	require.Equal(t, 48, fb.Height)

	assert.Equal(t, render.ColorNight, fb.GetPixel(0, 0))
	assert.Positive(t, count(fb, func(c render.Color) bool { return c == render.ColorWhite }), "edges")
	assert.Equal(t, 3, r.Stats().Spheres)
	assert.Zero(t, r.Stats().Triangles, "no facet is lit yet")
}

func TestRenderLitFacet(t *testing.T) {
	cfg := tesseract.DefaultConfig()
	cfg.Points = []tesseract.PointConfig{{
		Name:     "probe",
		Position: math4d.V4(0.89, 0, 0, 0),
		Velocity: math4d.V4(0.02, 0, 0, 0),
		Radius:   0.1,
		Channel:  tesseract.Green,
	}}
	s := newSim(t, cfg)
	require.Len(t, s.Tick(0), 1)

	r := NewRenderer(80, 48, DefaultOptions())
	fb := r.Render(s.Snapshot(nil))

	st := r.Stats()
	assert.Positive(t, st.Triangles)
	assert.Positive(t, st.PixelsBlended)
	tinted := count(fb, func(c render.Color) bool {
		return c.G > c.R && c.G > c.B && c != render.ColorGreen && c != render.ColorWhite
	})
	assert.Positive(t, tinted, "translucent green facet")
}

func TestRenderAxes(t *testing.T) {
	s := newSim(t, tesseract.Config{ViewerDistance: 3, RotationSpeed: 0.01, PlaneMultipliers: [4]float64{1, 0.5, 0.3, 0.7}})
	opts := DefaultOptions()
	opts.EdgeColor = render.ColorGray
	opts.Axes = true

	fb := NewRenderer(80, 48, opts).Render(s.Frame())
	assert.Positive(t, count(fb, func(c render.Color) bool { return c == render.ColorRed }))
	assert.Positive(t, count(fb, func(c render.Color) bool { return c == render.ColorBlue }) +
		count(fb, func(c render.Color) bool { return c == render.ColorGreen }))
}

func TestResizeKeepsCamera(t *testing.T) {
	r := NewRenderer(40, 20, DefaultOptions())
	cam := r.Camera()
	r.Resize(100, 40)
	assert.Same(t, cam, r.Camera())
	assert.Equal(t, 2.5, cam.AspectRatio)
	fb := r.Render(newSim(t, tesseract.DefaultConfig()).Frame())
	assert.Equal(t, 100, fb.Width)
	assert.Equal(t, 40, fb.Height)
}

func TestChannelColor(t *testing.T) {
	assert.Equal(t, render.ColorRed, ChannelColor(tesseract.Red))
	assert.Equal(t, render.ColorGreen, ChannelColor(tesseract.Green))
	assert.Equal(t, render.ColorBlue, ChannelColor(tesseract.Blue))
	assert.Equal(t, render.ColorGray, ChannelColor(tesseract.Channel(7)))
}
