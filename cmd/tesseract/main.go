// tesseract - a rotating 4D hypercube in your terminal.
// Points bounce around inside the hypercube and light up the cells they hit.
//
// Controls:
//
//	Arrows/WASD - Orbit the camera
//	Scroll, +/- - Zoom in/out
//	Space       - Pause the simulation
//	R           - Reset the view
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taigrr/tesseract/pkg/config"
	"github.com/taigrr/tesseract/pkg/tesseract"
)

var version = "dev"

// options holds the flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	distance   float64
	speed      float64
	fps        int

	logger  *slog.Logger
	closers []io.Closer
}

func main() {
	opts := &options{}
	if err := fang.Execute(
		context.Background(),
		newRootCmd(opts),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "tesseract",
		Short: "A rotating 4D hypercube in your terminal",
		Long: `Rotates a tesseract through four planes, projects it to 3D and draws it
with half-block characters. Points bounce inside the hypercube and flash the
cells they hit in their own color.`,
		Example: `
# Watch the default scene:
tesseract

# Load points from a config file and slow the rotation:
tesseract --config scene.toml --speed 0.005

# Simulate without a terminal and print a summary:
tesseract run --ticks 100000`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return opts.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), cfg, opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "scene config file (.toml, .yaml or .ini)")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	f.Float64Var(&opts.distance, "distance", 0, "4D viewer distance, overrides the config (must be > 2)")
	f.Float64Var(&opts.speed, "speed", 0, "rotation speed in radians per tick, overrides the config")
	f.IntVar(&opts.fps, "fps", 60, "target frames per second")

	root.AddCommand(
		newRunCmd(opts),
		newFramesCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// setupLogging builds the logger every command uses, tagged with a session id.
func (o *options) setupLogging(stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", o.logLevel, err)
	}

	w := stderr
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.closers = append(o.closers, f)
		w = f
	}

	o.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("session", uuid.NewString())
	slog.SetDefault(o.logger)
	return nil
}

func (o *options) close() error {
	var errs []string
	for _, c := range o.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	o.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close: %s", strings.Join(errs, "; "))
	}
	return nil
}

// loadConfig reads --config, or starts from the defaults, and applies the
// flag overrides the user set.
func (o *options) loadConfig(cmd *cobra.Command) (tesseract.Config, error) {
	cfg := tesseract.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("distance") {
		cfg.ViewerDistance = o.distance
	}
	if flags.Changed("speed") {
		cfg.RotationSpeed = o.speed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if o.logger != nil {
		o.logger.Debug("config loaded",
			"path", o.configPath,
			"viewer_distance", cfg.ViewerDistance,
			"rotation_speed", cfg.RotationSpeed,
			"points", len(cfg.Points),
		)
	}
	return cfg, nil
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective scene config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
