// dancelight plays a pose animation on the traffic light's LED matrix,
// previewed in the terminal or exported as PNG.
//
// Run: GOWORK=off go run ./cmd/dancelight/
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/pflag"

	"github.com/wesen/dancelight/internal/config"
	"github.com/wesen/dancelight/internal/posescript"
	"github.com/wesen/dancelight/internal/preview"
	"github.com/wesen/dancelight/pkg/compositor"
	"github.com/wesen/dancelight/pkg/matriximage"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	pngPath    string
	frame      int
	print      bool
	logFile    string
	verbose    bool
}

func run(args []string, stdout io.Writer) error {
	var o options
	fs := pflag.NewFlagSet("dancelight", pflag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", "", "config file (yaml, toml or json)")
	fs.String("script", "", "pose script (default: built-in dance)")
	fs.Int("fps", 0, "preview frame rate")
	fs.Int("scale", 0, "PNG upscale factor")
	fs.StringVar(&o.pngPath, "png", "", "render one frame to this PNG file and exit")
	fs.IntVar(&o.frame, "frame", 0, "frame to render with --png or --print")
	fs.BoolVar(&o.print, "print", false, "render one frame as text and exit")
	fs.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log per-frame diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	closeLog, err := setupLogging(o)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadWithFlags(o.configPath, fs)
	if err != nil {
		return err
	}
	opts, err := cfg.CompositorOptions()
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	comp, err := compositor.New(opts)
	if err != nil {
		return err
	}
	script, err := loadScript(cfg.Preview.Script)
	if err != nil {
		return err
	}

	switch {
	case o.print || o.pngPath != "":
		sk, err := script.Pose(o.frame)
		if err != nil {
			return err
		}
		g := comp.RenderFrame(sk)
		if o.print {
			fmt.Fprintln(stdout, g.String())
		}
		if o.pngPath != "" {
			if err := matriximage.SavePNG(o.pngPath, g, pal, cfg.Output.Scale); err != nil {
				return err
			}
			slog.Info("wrote png", slog.String("path", o.pngPath), slog.Int("frame", o.frame))
		}
		return nil
	}

	p := tea.NewProgram(preview.New(preview.Options{
		Compositor: comp,
		Script:     script,
		Palette:    pal,
		FPS:        cfg.Preview.FPS,
		Scale:      cfg.Output.Scale,
	}))
	_, err = p.Run()
	return err
}

// setupLogging routes slog to --log-file, or discards it; the preview owns
// the terminal.
func setupLogging(o options) (func(), error) {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = io.Discard
	closer := func() {}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	compositor.SetLogger(logger.With(slog.String("component", "compositor")))
	return closer, nil
}

func loadScript(path string) (*posescript.Script, error) {
	if path == "" {
		return posescript.Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return posescript.Compile(path, string(src))
}
