package preview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/dancelight/pkg/ledbuf"
	"github.com/wesen/dancelight/pkg/skeleton"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the whole screen; it is empty until the terminal size
// is known.
func (m Model) render() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	grid := ledbuf.FromGrid(m.comp.Grid(), ledbuf.Lit, ledbuf.Dark)

	// Layout: title(1) + help(1), matrix on the left, panel on the right.
	l := newLayout(m.Width, m.Height).
		topFixed("title", 1).
		bottomFixed("help", 1).
		leftFixed("matrix", grid.W+2).
		remaining("panel").
		build()

	matrix, panel := l["matrix"], l["panel"]

	layers := []*lipgloss.Layer{
		fillLayer(matrix, bgStyle, "matrix-bg"),
		fillLayer(panel, panelStyle, "panel-bg"),
		barLayer(m.titleLine(), l["title"], titleStyle, "title"),
		barLayer(m.help.ShortHelpView(m.keys.ShortHelp()), l["help"], bgStyle, "help"),
	}

	if !matrix.Empty() {
		layers = append(layers,
			lipgloss.NewLayer(grid.Render(m.styles)).X(matrix.Min.X+1).Y(matrix.Min.Y).Z(1).ID("matrix"),
		)
	}
	if !panel.Empty() {
		layers = append(layers,
			separatorLayer(panel.Min.X, panel.Min.Y, panel.Dy(), sepStyle),
			lipgloss.NewLayer(m.panelContent(panel.Dx()-2, panel.Dy())).
				X(panel.Min.X+2).Y(panel.Min.Y).Z(1).ID("panel"),
		)
	}

	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(comp)
	return canvas.Render()
}

func (m Model) titleLine() string {
	state := "playing"
	if m.Paused {
		state = "paused"
	}
	return fmt.Sprintf(" dancelight  │  %s  │  %s", m.script.Name, state)
}

// panelContent lists frame stats and per-joint tracking, cut to height.
func (m Model) panelContent(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	st := m.comp.Stats()
	sep := panelDimStyle.Render(strings.Repeat("─", width))

	lines := []string{
		panelTitleStyle.Render("FRAME"),
		sep,
		kv("frame", fmt.Sprint(max(m.rendered, 0))),
		kv("phase", m.comp.Phase().String()),
		kv("cells lit", fmt.Sprint(st.Cells)),
		kv("segments", fmt.Sprint(st.Drawn)),
		kv("untracked", fmt.Sprint(st.SkippedUntracked)),
		kv("off grid", fmt.Sprint(st.SkippedOutOfBounds)),
		kv("head", fmt.Sprint(st.HeadDrawn)),
	}
	if m.Err != nil {
		lines = append(lines, panelErrStyle.Render(truncate(m.Err.Error(), width)))
	}
	if m.Status != "" {
		lines = append(lines, panelDimStyle.Render(truncate(m.Status, width)))
	}

	lines = append(lines, "", panelTitleStyle.Render("JOINTS"), sep)
	for _, jt := range skeleton.AllJoints() {
		state := m.pose.Lookup(jt).State
		lines = append(lines,
			panelTextStyle.Render(fmt.Sprintf("%-14s", jt))+trackingStyles[state].Render(state.String()))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func kv(k, v string) string {
	return panelDimStyle.Render(fmt.Sprintf("%-10s", k)) + panelTextStyle.Render(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
