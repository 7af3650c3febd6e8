package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/tesseract/pkg/render"
	"github.com/taigrr/tesseract/pkg/tesseract"
	"github.com/taigrr/tesseract/pkg/view"
)

const (
	nudgeStrength = 0.02 // radians per frame added per key press
	zoomStep      = 0.5
	maxFrameDt    = 0.1

	// normal mouse tracking with SGR coordinates, for wheel zoom
	mouseOn  = "\x1b[?1000h\x1b[?1006h"
	mouseOff = "\x1b[?1000l\x1b[?1006l"
)

// viewer is the interactive session state. It is only touched from the frame
// loop; terminal events are drained there between frames.
type viewer struct {
	term   *uv.Terminal
	out    *render.TerminalRenderer
	scene  *view.Renderer
	sim    *tesseract.Simulation
	orbit  *view.Orbit
	hud    *view.HUD
	logger *slog.Logger

	width, height int
	paused        bool
	showHUD       bool
	quit          bool
}

func runViewer(ctx context.Context, cfg tesseract.Config, opts *options) error {
	// The viewer owns the terminal; only log when logs go to a file.
	logger := slog.New(slog.DiscardHandler)
	if opts.logFile != "" {
		logger = opts.logger
	}

	sim, err := tesseract.New(cfg, tesseract.WithLogger(logger))
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, mouseOn)

	v := &viewer{
		term:    term,
		sim:     sim,
		orbit:   view.NewOrbit(opts.fps, render.DefaultCameraDistance),
		hud:     view.NewHUD("tesseract"),
		logger:  logger,
		showHUD: true,
	}
	v.resize(width, height)

	logger.Info("viewer started", "width", width, "height", height, "points", sim.PointCount())
	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", "error", err)
		}
		logger.Info("viewer stopped", "ticks", sim.Ticks(), "hits", sim.Hits(), "fps", v.hud.FPS())
	}()

	targetDuration := time.Second / time.Duration(max(1, opts.fps))
	lastFrame := time.Now()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				v.handle(ev)
			default:
				break drain
			}
		}
		if v.quit {
			return nil
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), maxFrameDt)
		lastFrame = now

		if err := v.frame(now, dt); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.out = render.NewTerminalRenderer(v.term, width, height)
	fbWidth, fbHeight := v.out.FramebufferSize()
	if v.scene == nil {
		v.scene = view.NewRenderer(fbWidth, fbHeight, view.DefaultOptions())
	} else {
		v.scene.Resize(fbWidth, fbHeight)
	}
}

func (v *viewer) handle(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.resize(ev.Width, ev.Height)
		v.logger.Debug("resized", "width", ev.Width, "height", ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("q", "escape", "ctrl+c"):
			v.quit = true
		case ev.MatchString("left", "a"):
			v.orbit.Nudge(-nudgeStrength, 0)
		case ev.MatchString("right", "d"):
			v.orbit.Nudge(nudgeStrength, 0)
		case ev.MatchString("up", "w"):
			v.orbit.Nudge(0, nudgeStrength)
		case ev.MatchString("down", "s"):
			v.orbit.Nudge(0, -nudgeStrength)
		case ev.MatchString("+", "="):
			v.orbit.Zoom(-zoomStep)
		case ev.MatchString("-", "_"):
			v.orbit.Zoom(zoomStep)
		case ev.MatchString("space"):
			v.paused = !v.paused
			v.logger.Debug("pause toggled", "paused", v.paused, "tick", v.sim.Ticks(), "angles", v.sim.Angles())
		case ev.MatchString("r"):
			v.orbit.Reset()
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.orbit.Zoom(-zoomStep)
		case uv.MouseWheelDown:
			v.orbit.Zoom(zoomStep)
		}
	}
}

// frame advances the simulation by one tick unless paused and draws it.
func (v *viewer) frame(now time.Time, dt float64) error {
	if !v.paused {
		v.sim.Tick(dt)
	}
	v.orbit.Update()
	v.orbit.Apply(v.scene.Camera())

	fb := v.scene.Render(v.sim.Frame())
	v.hud.UpdateFPS(now)

	if !v.showHUD {
		v.out.Render(fb)
		return v.out.Flush()
	}

	st := view.Status{
		Tick:     v.sim.Ticks(),
		Hits:     v.sim.Hits(),
		Lit:      v.sim.Facets().Lit(),
		Points:   v.sim.PointCount(),
		Distance: v.orbit.Distance(),
		Paused:   v.paused,
	}
	top := v.hud.Top(v.width, st)
	bottom := v.hud.Bottom(v.width, st)
	v.out.Render(fb, uv.DrawableFunc(func(scr uv.Screen, area uv.Rectangle) {
		uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
		if area.Dy() > 1 {
			uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
		}
	}))
	return v.out.Flush()
}
