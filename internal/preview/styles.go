package preview

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

var (
	colorBG  = c("#101010")
	panelBG  = c("#1a1a1a")
	accent   = c("#daa520")
	dimColor = c("#5a5a5a")

	titleStyle = lipgloss.NewStyle().
			Background(c("#2a2110")).
			Foreground(accent).
			Bold(true)

	bgStyle = lipgloss.NewStyle().Background(colorBG)

	panelStyle = lipgloss.NewStyle().Background(panelBG)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Background(panelBG).
			Bold(true)

	panelTextStyle = lipgloss.NewStyle().
			Foreground(c("#d0c090")).
			Background(panelBG)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Background(panelBG)

	panelErrStyle = lipgloss.NewStyle().
			Foreground(c("#ff5f5f")).
			Background(panelBG).
			Bold(true)

	sepStyle = lipgloss.NewStyle().
			Foreground(c("#3a3a3a")).
			Background(colorBG)
)

// trackingStyles colors joint states in the panel.
var trackingStyles = [...]lipgloss.Style{
	panelDimStyle,                                      // NotTracked
	panelTextStyle.Foreground(c("#c08030")),            // Inferred
	panelTextStyle.Foreground(c("#80d080")).Bold(true), // Tracked
}
