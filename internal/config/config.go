// Package config loads the traffic light settings with viper: built-in
// defaults matching the device, an optional config file, DANCELIGHT_*
// environment variables and bound command-line flags, in increasing
// precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wesen/dancelight/pkg/compositor"
	"github.com/wesen/dancelight/pkg/gridmap"
	"github.com/wesen/dancelight/pkg/matriximage"
	"github.com/wesen/dancelight/pkg/skeleton"
)

// Config keys.
const (
	KeyGridWidth      = "grid.width"
	KeyGridUnitMeters = "grid.unit_meters"
	KeyGridOffsetX    = "grid.offset_x"
	KeyGridOffsetY    = "grid.offset_y"
	KeyHeadJoint      = "head.joint"
	KeyHeadRadius     = "head.radius"
	KeySegments       = "segments"
	KeyPreviewFPS     = "preview.fps"
	KeyPreviewScript  = "preview.script"
	KeyOutputScale    = "output.scale"
	KeyOutputOnColor  = "output.on_color"
	KeyOutputOffColor = "output.off_color"
)

// EnvPrefix prefixes environment overrides, e.g. DANCELIGHT_GRID_WIDTH.
const EnvPrefix = "DANCELIGHT"

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"script": KeyPreviewScript,
	"fps":    KeyPreviewFPS,
	"scale":  KeyOutputScale,
}

type Grid struct {
	Width      int     `mapstructure:"width"`
	UnitMeters float64 `mapstructure:"unit_meters"`
	OffsetX    int     `mapstructure:"offset_x"`
	OffsetY    int     `mapstructure:"offset_y"`
}

type Head struct {
	Joint  string `mapstructure:"joint"`
	Radius int    `mapstructure:"radius"`
}

// Segment is one row of the body table as written in a config file.
type Segment struct {
	From      string `mapstructure:"from"`
	To        string `mapstructure:"to"`
	WidthFrom int    `mapstructure:"width_from"`
	WidthTo   int    `mapstructure:"width_to"`
	Round     bool   `mapstructure:"round"`
	Group     string `mapstructure:"group"`
}

type Preview struct {
	FPS    int    `mapstructure:"fps"`
	Script string `mapstructure:"script"`
}

type Output struct {
	Scale    int    `mapstructure:"scale"`
	OnColor  string `mapstructure:"on_color"`
	OffColor string `mapstructure:"off_color"`
}

// Config is the complete application configuration.
type Config struct {
	Grid     Grid      `mapstructure:"grid"`
	Head     Head      `mapstructure:"head"`
	Segments []Segment `mapstructure:"segments"`
	Preview  Preview   `mapstructure:"preview"`
	Output   Output    `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	cal := gridmap.Default()
	v.SetDefault(KeyGridWidth, cal.Width)
	v.SetDefault(KeyGridUnitMeters, cal.UnitMeters)
	v.SetDefault(KeyGridOffsetX, cal.OffsetX)
	v.SetDefault(KeyGridOffsetY, cal.OffsetY)

	head := skeleton.DefaultHead()
	v.SetDefault(KeyHeadJoint, head.Joint.String())
	v.SetDefault(KeyHeadRadius, head.Radius)

	var segs []map[string]interface{}
	for _, s := range skeleton.DefaultSegments() {
		segs = append(segs, map[string]interface{}{
			"from":       s.From.String(),
			"to":         s.To.String(),
			"width_from": s.WidthFrom,
			"width_to":   s.WidthTo,
			"round":      s.Round,
			"group":      s.Group.String(),
		})
	}
	v.SetDefault(KeySegments, segs)

	v.SetDefault(KeyPreviewFPS, 30)
	v.SetDefault(KeyPreviewScript, "")
	v.SetDefault(KeyOutputScale, 16)
	v.SetDefault(KeyOutputOnColor, "#B8860B")
	v.SetDefault(KeyOutputOffColor, "#232323")
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadWithFlags is Load plus the overrides of any changed flags in fs
// named script, fps or scale.
func LoadWithFlags(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Calibration returns the grid mapping constants.
func (c Config) Calibration() gridmap.Calibration {
	return gridmap.Calibration{
		Width:      c.Grid.Width,
		UnitMeters: c.Grid.UnitMeters,
		OffsetX:    c.Grid.OffsetX,
		OffsetY:    c.Grid.OffsetY,
	}
}

// CompositorOptions resolves joint names and validates the body table.
func (c Config) CompositorOptions() (compositor.Options, error) {
	cal := c.Calibration()
	if err := cal.Validate(); err != nil {
		return compositor.Options{}, fmt.Errorf("config: %w", err)
	}

	headJoint, err := skeleton.ParseJointType(c.Head.Joint)
	if err != nil {
		return compositor.Options{}, fmt.Errorf("config: head: %w", err)
	}
	if c.Head.Radius < 0 {
		return compositor.Options{}, fmt.Errorf("config: head radius %d is negative", c.Head.Radius)
	}

	segs := make([]skeleton.Segment, 0, len(c.Segments))
	for i, s := range c.Segments {
		seg, err := s.resolve()
		if err != nil {
			return compositor.Options{}, fmt.Errorf("config: segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}

	return compositor.Options{
		Calibration: cal,
		Segments:    segs,
		Head:        skeleton.HeadShape{Joint: headJoint, Radius: c.Head.Radius},
	}, nil
}

func (s Segment) resolve() (skeleton.Segment, error) {
	from, err := skeleton.ParseJointType(s.From)
	if err != nil {
		return skeleton.Segment{}, err
	}
	to, err := skeleton.ParseJointType(s.To)
	if err != nil {
		return skeleton.Segment{}, err
	}
	wFrom, wTo := s.WidthFrom, s.WidthTo
	if wTo == 0 {
		wTo = wFrom
	}
	if wFrom < 1 || wTo < 1 {
		return skeleton.Segment{}, fmt.Errorf("%s-%s: widths must be at least 1", s.From, s.To)
	}
	var g skeleton.Group
	switch strings.ToLower(s.Group) {
	case "", "torso":
		g = skeleton.Torso
	case "limb":
		g = skeleton.Limb
	default:
		return skeleton.Segment{}, fmt.Errorf("%s-%s: unknown group %q", s.From, s.To, s.Group)
	}
	return skeleton.Segment{From: from, To: to, WidthFrom: wFrom, WidthTo: wTo, Round: s.Round, Group: g}, nil
}

// Palette returns the LED colors.
func (c Config) Palette() (matriximage.Palette, error) {
	on, err := matriximage.ParseHex(c.Output.OnColor)
	if err != nil {
		return matriximage.Palette{}, fmt.Errorf("config: %s: %w", KeyOutputOnColor, err)
	}
	off, err := matriximage.ParseHex(c.Output.OffColor)
	if err != nil {
		return matriximage.Palette{}, fmt.Errorf("config: %s: %w", KeyOutputOffColor, err)
	}
	return matriximage.Palette{On: on, Off: off}, nil
}
