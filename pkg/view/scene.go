// Package view draws tesseract snapshots: the projected hypercube wireframe,
// translucent highlights on recently hit facets and the bouncing points.
package view

import (
	"github.com/taigrr/tesseract/pkg/render"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

// Options controls scene colors and extras.
type Options struct {
	Background render.Color
	EdgeColor  render.Color
	// Axes draws the 3D coordinate axes at the origin.
	Axes bool
}

// DefaultOptions is a dark background with white hypercube edges.
func DefaultOptions() Options {
	return Options{
		Background: render.ColorNight,
		EdgeColor:  render.ColorWhite,
	}
}

// ChannelColor is the opaque color a point of channel c is drawn with.
func ChannelColor(c tesseract.Channel) render.Color {
	switch c {
	case tesseract.Red:
		return render.ColorRed
	case tesseract.Green:
		return render.ColorGreen
	case tesseract.Blue:
		return render.ColorBlue
	}
	return render.ColorGray
}

// Renderer owns a framebuffer and the camera looking at the projected
// hypercube.
type Renderer struct {
	opts   Options
	camera *render.Camera
	fb     *render.Framebuffer
	rast   *render.Rasterizer
	wire   *render.Wireframe
}

// NewRenderer creates a renderer drawing into a width x height framebuffer.
func NewRenderer(width, height int, opts Options) *Renderer {
	r := &Renderer{opts: opts, camera: render.NewCamera()}
	r.Resize(width, height)
	return r
}

// Resize replaces the framebuffer and updates the camera aspect ratio.
func (r *Renderer) Resize(width, height int) {
	r.fb = render.NewFramebuffer(width, height)
	r.rast = render.NewRasterizer(r.camera, r.fb)
	r.wire = render.NewWireframe(r.camera, r.fb)
	if height > 0 {
		r.camera.SetAspectRatio(float64(width) / float64(height))
	}
}

// Camera returns the scene camera.
func (r *Renderer) Camera() *render.Camera { return r.camera }

// Stats returns the rasterizer counters for the last frame.
func (r *Renderer) Stats() render.Stats { return r.rast.Stats }

// Render draws snap and returns the framebuffer. Points go first since they
// are the only opaque fills; facet highlights blend over them and the edges
// are drawn on top.
func (r *Renderer) Render(snap tesseract.Snapshot) *render.Framebuffer {
	r.fb.Clear(r.opts.Background)
	r.rast.ClearDepth()

	for _, p := range snap.Points {
		r.rast.FillSphere(p.Position, p.Radius*p.Scale, ChannelColor(p.Channel))
	}

	faces := tesseract.CellFaces()
	cellEdges := tesseract.CellEdges()
	for _, f := range snap.Facets {
		if f.Hit.Dark() {
			continue
		}
		fill := f.Hit.RGBA()
		for _, q := range faces {
			r.rast.FillQuad(f.Corners[q[0]], f.Corners[q[1]], f.Corners[q[2]], f.Corners[q[3]], fill)
		}
		outline := render.WithAlpha(fill, uint8(min(255, 2*int(fill.A))))
		for _, e := range cellEdges {
			r.wire.DrawLine3D(f.Corners[e[0]], f.Corners[e[1]], outline)
		}
	}

	for _, e := range snap.Edges {
		r.wire.DrawLine3D(snap.Vertices[e[0]], snap.Vertices[e[1]], r.opts.EdgeColor)
	}
	if r.opts.Axes {
		r.wire.DrawAxes(0.5)
	}
	return r.fb
}
