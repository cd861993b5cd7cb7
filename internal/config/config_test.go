package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/wesen/dancelight/pkg/compositor"
	"github.com/wesen/dancelight/pkg/gridmap"
	"github.com/wesen/dancelight/pkg/matriximage"
	"github.com/wesen/dancelight/pkg/skeleton"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ── Defaults ──

func TestDefaultsMatchDevice(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Calibration(); got != gridmap.Default() {
		t.Errorf("calibration = %+v, want %+v", got, gridmap.Default())
	}
	if cfg.Preview.FPS != 30 || cfg.Output.Scale != 16 {
		t.Errorf("preview/output defaults wrong: %+v %+v", cfg.Preview, cfg.Output)
	}

	opts, err := cfg.CompositorOptions()
	if err != nil {
		t.Fatalf("CompositorOptions: %v", err)
	}
	want := compositor.DefaultOptions()
	if opts.Head != want.Head {
		t.Errorf("head = %+v, want %+v", opts.Head, want.Head)
	}
	if len(opts.Segments) != len(want.Segments) {
		t.Fatalf("got %d segments, want %d", len(opts.Segments), len(want.Segments))
	}
	for i := range want.Segments {
		if opts.Segments[i] != want.Segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, opts.Segments[i], want.Segments[i])
		}
	}

	pal, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if pal != matriximage.DefaultPalette() {
		t.Errorf("palette = %+v", pal)
	}
}

// ── File, env and flags ──

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "dancelight.yaml", `
grid:
  width: 32
  unit_meters: 0.033
  offset_y: -3
head:
  joint: neck
  radius: 2
segments:
  - from: spine_shoulder
    to: spine_base
    width_from: 4
    width_to: 2
  - from: ShoulderLeft
    to: ElbowLeft
    width_from: 1
    round: true
    group: limb
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts, err := cfg.CompositorOptions()
	if err != nil {
		t.Fatalf("CompositorOptions: %v", err)
	}
	wantCal := gridmap.Calibration{Width: 32, UnitMeters: 0.033, OffsetX: 0, OffsetY: -3}
	if opts.Calibration != wantCal {
		t.Errorf("calibration = %+v, want %+v", opts.Calibration, wantCal)
	}
	if opts.Head != (skeleton.HeadShape{Joint: skeleton.Neck, Radius: 2}) {
		t.Errorf("head = %+v", opts.Head)
	}
	want := []skeleton.Segment{
		{From: skeleton.SpineShoulder, To: skeleton.SpineBase, WidthFrom: 4, WidthTo: 2, Group: skeleton.Torso},
		{From: skeleton.ShoulderLeft, To: skeleton.ElbowLeft, WidthFrom: 1, WidthTo: 1, Round: true, Group: skeleton.Limb},
	}
	if len(opts.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(opts.Segments), len(want))
	}
	for i := range want {
		if opts.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, opts.Segments[i], want[i])
		}
	}
	if _, err := compositor.New(opts); err != nil {
		t.Errorf("compositor.New: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "c.yaml", "grid:\n  width: 32\n")
	t.Setenv("DANCELIGHT_GRID_WIDTH", "48")
	t.Setenv("DANCELIGHT_OUTPUT_ON_COLOR", "#00ff00")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width != 48 {
		t.Errorf("width = %d, want 48", cfg.Grid.Width)
	}
	if cfg.Output.OnColor != "#00ff00" {
		t.Errorf("on color = %q", cfg.Output.OnColor)
	}
}

func TestFlagsOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("script", "", "")
	fs.Int("fps", 0, "")
	fs.Int("scale", 0, "")
	if err := fs.Parse([]string{"--script", "wave.js", "--scale", "4"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithFlags("", fs)
	if err != nil {
		t.Fatalf("LoadWithFlags: %v", err)
	}
	if cfg.Preview.Script != "wave.js" || cfg.Output.Scale != 4 {
		t.Errorf("flags not applied: %+v %+v", cfg.Preview, cfg.Output)
	}
	if cfg.Preview.FPS != 30 {
		t.Errorf("unset flag should keep the default, got fps %d", cfg.Preview.FPS)
	}
}

// ── Validation ──

func TestCompositorOptionsErrors(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"zero width", func(c *Config) { c.Grid.Width = 0 }, gridmap.ErrInvalidCalibration},
		{"bad unit", func(c *Config) { c.Grid.UnitMeters = -1 }, gridmap.ErrInvalidCalibration},
		{"unknown head", func(c *Config) { c.Head.Joint = "tail" }, skeleton.ErrUnknownJoint},
		{"unknown segment joint", func(c *Config) { c.Segments[0].To = "wing" }, skeleton.ErrUnknownJoint},
		{"negative head", func(c *Config) { c.Head.Radius = -1 }, nil},
		{"zero width segment", func(c *Config) { c.Segments[0].WidthFrom = 0 }, nil},
		{"bad group", func(c *Config) { c.Segments[0].Group = "tentacle" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			_, err := cfg.CompositorOptions()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestPaletteBadColor(t *testing.T) {
	cfg, _ := Load("")
	cfg.Output.OffColor = "dark"
	if _, err := cfg.Palette(); !errors.Is(err, matriximage.ErrBadColor) {
		t.Fatalf("expected ErrBadColor, got %v", err)
	}
}
