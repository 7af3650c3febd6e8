package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/taigrr/tesseract/pkg/models"
	"github.com/taigrr/tesseract/pkg/tesseract"
	"github.com/taigrr/tesseract/pkg/view"
)

// summary is what a headless run reports when it finishes.
type summary struct {
	Ticks   uint64
	Hits    uint64
	Lit     int
	Elapsed time.Duration
}

func (s summary) write(w io.Writer) error {
	rate := 0.0
	if s.Elapsed > 0 {
		rate = float64(s.Ticks) / s.Elapsed.Seconds()
	}
	_, err := fmt.Fprintf(w, "%s ticks, %s hits, %d/%d facets lit (%s ticks/s)\n",
		humanize.Comma(int64(s.Ticks)),
		humanize.Comma(int64(s.Hits)),
		s.Lit, tesseract.FacetCount,
		humanize.CommafWithDigits(rate, 0),
	)
	return err
}

// simulate advances sim by ticks steps of dt seconds, calling each after every
// step. It stops early when ctx is cancelled.
func simulate(ctx context.Context, sim *tesseract.Simulation, ticks int, dt float64, each func(i int) error) (summary, error) {
	start := time.Now()
	for i := range ticks {
		if err := ctx.Err(); err != nil {
			break
		}
		sim.Tick(dt)
		if each != nil {
			if err := each(i); err != nil {
				return summary{}, err
			}
		}
	}
	return summary{
		Ticks:   sim.Ticks(),
		Hits:    sim.Hits(),
		Lit:     sim.Facets().Lit(),
		Elapsed: time.Since(start),
	}, nil
}

func (o *options) tickSeconds() float64 {
	return 1 / float64(max(1, o.fps))
}

func newRunCmd(opts *options) *cobra.Command {
	var ticks int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation without a display and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := tesseract.New(cfg, tesseract.WithLogger(opts.logger))
			if err != nil {
				return err
			}

			opts.logger.Info("run started", "ticks", ticks, "points", sim.PointCount())
			sum, err := simulate(cmd.Context(), sim, ticks, opts.tickSeconds(), nil)
			if err != nil {
				return err
			}
			opts.logger.Info("run finished", "ticks", sum.Ticks, "hits", sum.Hits, "elapsed", sum.Elapsed)
			return sum.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 10000, "number of ticks to simulate")
	return cmd
}

func newFramesCmd(opts *options) *cobra.Command {
	var (
		out           string
		ticks, every  int
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render frames to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if every < 1 {
				return fmt.Errorf("--every must be at least 1, got %d", every)
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := tesseract.New(cfg, tesseract.WithLogger(opts.logger))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			scene := view.NewRenderer(width, height, view.DefaultOptions())
			written := 0
			sum, err := simulate(cmd.Context(), sim, ticks, opts.tickSeconds(), func(i int) error {
				if i%every != 0 {
					return nil
				}
				path := filepath.Join(out, fmt.Sprintf("frame-%06d.png", sim.Ticks()))
				if err := scene.Render(sim.Frame()).SavePNG(path); err != nil {
					return fmt.Errorf("save frame: %w", err)
				}
				written++
				opts.logger.Debug("frame saved", "path", path, "stats", scene.Stats())
				return nil
			})
			if err != nil {
				return err
			}
			opts.logger.Info("frames written", "dir", out, "count", written)
			return sum.write(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "frames", "output directory")
	f.IntVarP(&ticks, "ticks", "n", 240, "number of ticks to simulate")
	f.IntVar(&every, "every", 1, "save every n-th tick")
	f.IntVar(&width, "width", 320, "frame width in pixels")
	f.IntVar(&height, "height", 240, "frame height in pixels")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		out   string
		ticks int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Simulate, then save the current frame as a binary glTF model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := tesseract.New(cfg, tesseract.WithLogger(opts.logger))
			if err != nil {
				return err
			}
			if _, err := simulate(cmd.Context(), sim, ticks, opts.tickSeconds(), nil); err != nil {
				return err
			}
			return exportFrame(sim, out, opts.logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "tesseract.glb", "output .glb file")
	f.IntVarP(&ticks, "ticks", "n", 120, "number of ticks to simulate before exporting")
	return cmd
}

func exportFrame(sim *tesseract.Simulation, path string, logger *slog.Logger) error {
	mesh := models.FromSnapshot("tesseract", sim.Frame())
	if err := models.SaveGLB(mesh, path); err != nil {
		return err
	}
	logger.Info("model exported",
		"path", path,
		"tick", sim.Ticks(),
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"lines", mesh.LineCount(),
	)
	return nil
}
