package preview

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/wesen/dancelight/pkg/matriximage"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if msg.id != m.tickID || m.Paused {
			return m, nil
		}
		m = m.step()
		return m, m.tick()

	case snapshotMsg:
		if msg.err != nil {
			m.Status = "snapshot failed: " + msg.err.Error()
		} else {
			m.Status = "saved " + msg.path
		}

	case tea.KeyPressMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.Paused = !m.Paused
		if !m.Paused {
			m.tickID++
			return m, m.tick()
		}

	case key.Matches(msg, m.keys.Step):
		m.Paused = true
		m = m.step()

	case key.Matches(msg, m.keys.Reset):
		m.Frame = 0
		m.Err = nil
		m = m.step()

	case key.Matches(msg, m.keys.Snapshot):
		return m, m.snapshot()
	}
	return m, nil
}

// step renders the next frame. A failing script leaves the previous grid
// on screen and still advances the frame counter.
func (m Model) step() Model {
	frame := m.Frame
	m.Frame++
	sk, err := m.script.Pose(frame)
	if err != nil {
		if m.Err == nil {
			slog.Warn("pose script failed", slog.Int("frame", frame), slog.Any("err", err))
		}
		m.Err = err
		return m
	}
	m.Err = nil
	m.pose = sk
	m.comp.RenderFrame(sk)
	m.rendered = frame
	return m
}

// snapshot copies the current grid and writes it as PNG off the update
// loop.
func (m Model) snapshot() tea.Cmd {
	g := m.comp.Grid().Clone()
	path := filepath.Join(m.snapDir, fmt.Sprintf("dancelight-%05d.png", max(m.rendered, 0)))
	pal, scale := m.palette, m.scale
	return func() tea.Msg {
		return snapshotMsg{path: path, err: matriximage.SavePNG(path, g, pal, scale)}
	}
}
