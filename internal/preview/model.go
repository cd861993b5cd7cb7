// Package preview is the terminal stand-in for the LED matrix: it plays a
// pose script through the compositor and shows the grid live.
package preview

import (
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/dancelight/internal/posescript"
	"github.com/wesen/dancelight/pkg/compositor"
	"github.com/wesen/dancelight/pkg/ledbuf"
	"github.com/wesen/dancelight/pkg/matriximage"
	"github.com/wesen/dancelight/pkg/skeleton"
)

const panelMinWidth = 30

// Options configures the preview.
type Options struct {
	Compositor  *compositor.Compositor
	Script      *posescript.Script
	Palette     matriximage.Palette
	FPS         int
	Scale       int    // PNG snapshot upscale
	SnapshotDir string // where p writes PNGs; "" means the working directory
}

// Model is the preview state. Frames are rendered from Update, one per
// tick, so the compositor never sees concurrent frames.
type Model struct {
	Width, Height int

	Frame  int // next frame to render
	Paused bool
	Err    error  // last pose script failure, cleared by the next good frame
	Status string // last snapshot result

	comp     *compositor.Compositor
	script   *posescript.Script
	palette  matriximage.Palette
	styles   map[ledbuf.StyleKey]lipgloss.Style
	interval time.Duration
	scale    int
	snapDir  string

	pose     skeleton.Skeleton // last good pose
	rendered int               // frame number shown on the grid
	tickID   int

	keys keyMap
	help help.Model
}

// New builds the model. FPS values below 1 fall back to 30.
func New(opts Options) Model {
	fps := opts.FPS
	if fps < 1 {
		fps = 30
	}
	return Model{
		comp:     opts.Compositor,
		script:   opts.Script,
		palette:  opts.Palette,
		styles:   ledbuf.Styles(opts.Palette.On, opts.Palette.Off),
		interval: time.Second / time.Duration(fps),
		scale:    opts.Scale,
		snapDir:  opts.SnapshotDir,
		rendered: -1,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// tickMsg advances the animation. Ticks from an older schedule carry a
// stale id and are dropped.
type tickMsg struct{ id int }

// snapshotMsg reports a finished PNG write.
type snapshotMsg struct {
	path string
	err  error
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
