package ledbuf

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Render converts the buffer into a styled string, one line per row joined
// with "\n". Consecutive cells sharing a StyleKey are merged into a single
// Style.Render call; an LED row is usually a handful of runs. Keys missing
// from styles render as plain text. An empty buffer renders as "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	chunk := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		runStyle := row[0].Style
		chunk = chunk[:0]
		flush := func() {
			if s, ok := styles[runStyle]; ok {
				sb.WriteString(s.Render(string(chunk)))
			} else {
				sb.WriteString(string(chunk))
			}
			chunk = chunk[:0]
		}
		for _, c := range row {
			if c.Style != runStyle {
				flush()
				runStyle = c.Style
			}
			chunk = append(chunk, c.Ch)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Plain returns the buffer's runes without any styling.
func (b *Buffer) Plain() string {
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.Ch
		}
		lines[y] = string(rs)
	}
	return strings.Join(lines, "\n")
}

// Default style keys used by FromGrid callers.
const (
	Dark StyleKey = iota
	Lit
)

// Styles returns the two-entry style map for an LED color on a dark
// background.
func Styles(on, off color.Color) map[StyleKey]lipgloss.Style {
	return map[StyleKey]lipgloss.Style{
		Dark: lipgloss.NewStyle().Background(off),
		Lit:  lipgloss.NewStyle().Foreground(on).Background(off),
	}
}
