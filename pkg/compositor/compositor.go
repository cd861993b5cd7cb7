// Package compositor renders a skeleton frame into the occupancy grid.
//
// A frame runs through fixed phases: the grid is reset, the head circle is
// drawn, then the torso segments and finally the limb segments. A segment
// is drawn only when both of its joints are tracked and both map inside the
// grid; otherwise it is skipped whole. Nothing in the frame path returns an
// error: anomalies simply mean a shape is not drawn this frame.
package compositor

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/wesen/dancelight/pkg/drawutil"
	"github.com/wesen/dancelight/pkg/gridmap"
	"github.com/wesen/dancelight/pkg/occgrid"
	"github.com/wesen/dancelight/pkg/skeleton"
)

// Phase is the compositor's position within a frame.
type Phase int

const (
	PhaseReset Phase = iota
	PhaseDrawHead
	PhaseDrawTorso
	PhaseDrawLimbs
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseReset:     "reset",
	PhaseDrawHead:  "draw-head",
	PhaseDrawTorso: "draw-torso",
	PhaseDrawLimbs: "draw-limbs",
	PhaseDone:      "done",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Options configures a Compositor. The segment table is copied on New.
type Options struct {
	Calibration gridmap.Calibration
	Segments    []skeleton.Segment
	Head        skeleton.HeadShape
}

// DefaultOptions returns the traffic light configuration: the 64×64
// calibration, the default body table and a radius-4 head.
func DefaultOptions() Options {
	return Options{
		Calibration: gridmap.Default(),
		Segments:    skeleton.DefaultSegments(),
		Head:        skeleton.DefaultHead(),
	}
}

// FrameStats summarises the last rendered frame.
type FrameStats struct {
	Drawn              int  // segments drawn
	SkippedUntracked   int  // segments with a NotTracked endpoint
	SkippedOutOfBounds int  // segments with an endpoint outside the grid
	HeadDrawn          bool // head circle drawn
	Cells              int  // cells on after the frame
}

// Compositor owns the occupancy grid and redraws it for each frame.
// A Compositor is not safe for concurrent use; frames must be rendered one
// at a time.
type Compositor struct {
	cal    gridmap.Calibration
	torso  []skeleton.Segment
	limbs  []skeleton.Segment
	head   skeleton.HeadShape
	grid   *occgrid.Grid
	filler drawutil.Filler
	phase  Phase
	stats  FrameStats
}

// New validates opts and allocates the grid.
func New(opts Options) (*Compositor, error) {
	if err := opts.Calibration.Validate(); err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	if !opts.Head.Joint.Valid() {
		return nil, fmt.Errorf("compositor: head joint %v: %w", opts.Head.Joint, skeleton.ErrUnknownJoint)
	}
	c := &Compositor{
		cal:   opts.Calibration,
		head:  opts.Head,
		grid:  occgrid.New(opts.Calibration.Width),
		phase: PhaseDone,
	}
	for i, s := range opts.Segments {
		if !s.From.Valid() || !s.To.Valid() {
			return nil, fmt.Errorf("compositor: segment %d (%v-%v): %w", i, s.From, s.To, skeleton.ErrUnknownJoint)
		}
		if s.Group == skeleton.Limb {
			c.limbs = append(c.limbs, s)
		} else {
			c.torso = append(c.torso, s)
		}
	}
	Logger().Info("compositor ready",
		slog.Int("width", opts.Calibration.Width),
		slog.Float64("unit_m", opts.Calibration.UnitMeters),
		slog.Int("torso_segments", len(c.torso)),
		slog.Int("limb_segments", len(c.limbs)),
	)
	return c, nil
}

// Grid returns the occupancy grid. Its contents are only meaningful after
// RenderFrame has returned.
func (c *Compositor) Grid() *occgrid.Grid { return c.grid }

// Calibration returns the mapper constants in use.
func (c *Compositor) Calibration() gridmap.Calibration { return c.cal }

// Phase returns the phase reached by the last frame (PhaseDone once a
// frame has completed).
func (c *Compositor) Phase() Phase { return c.phase }

// Stats returns the statistics of the last frame.
func (c *Compositor) Stats() FrameStats { return c.stats }

// RenderFrame redraws the grid for s and returns it. s is only read.
func (c *Compositor) RenderFrame(s skeleton.Skeleton) *occgrid.Grid {
	c.enter(PhaseReset)
	c.grid.Reset()
	c.stats = FrameStats{}

	c.enter(PhaseDrawHead)
	c.drawHead(s)

	c.enter(PhaseDrawTorso)
	for _, seg := range c.torso {
		c.drawSegment(s, seg)
	}

	c.enter(PhaseDrawLimbs)
	for _, seg := range c.limbs {
		c.drawSegment(s, seg)
	}

	c.stats.Cells = c.grid.Count()
	c.enter(PhaseDone)
	return c.grid
}

func (c *Compositor) enter(p Phase) {
	c.phase = p
	log := Logger()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("frame phase", slog.String("phase", p.String()))
	}
}

func (c *Compositor) drawHead(s skeleton.Skeleton) {
	j := s.Lookup(c.head.Joint)
	if j.State == skeleton.NotTracked {
		return
	}
	pt, ok := c.cal.ToGrid(j.Position)
	if !ok {
		Logger().Debug("head off grid", slog.Any("position", j.Position))
		return
	}
	c.filler.FillCircle(c.grid, pt, c.head.Radius)
	c.stats.HeadDrawn = true
}

func (c *Compositor) drawSegment(s skeleton.Skeleton, seg skeleton.Segment) {
	ja, jb := s.Lookup(seg.From), s.Lookup(seg.To)
	if ja.State == skeleton.NotTracked || jb.State == skeleton.NotTracked {
		c.stats.SkippedUntracked++
		Logger().Debug("segment skipped: joint not tracked",
			slog.String("from", seg.From.String()), slog.String("to", seg.To.String()))
		return
	}
	a, okA := c.cal.ToGrid(ja.Position)
	b, okB := c.cal.ToGrid(jb.Position)
	if !okA || !okB {
		c.stats.SkippedOutOfBounds++
		Logger().Debug("segment skipped: joint off grid",
			slog.String("from", seg.From.String()), slog.String("to", seg.To.String()))
		return
	}

	c.filler.FillQuad(c.grid, drawutil.Corners(a, b, seg.WidthFrom, seg.WidthTo))
	if seg.Round {
		c.drawCap(a, seg.WidthFrom)
		c.drawCap(b, seg.WidthTo)
	}
	c.stats.Drawn++
}

func (c *Compositor) drawCap(center image.Point, width int) {
	c.filler.FillCircle(c.grid, center, width/2)
}
