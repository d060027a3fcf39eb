// Package tui renders ecotrack results for terminals: lipgloss-styled
// summaries for one-shot output and a bubbletea browser for history.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/aqi"
)

// Palette.
const (
	ColorPrimary  = lipgloss.Color("42")  // green
	ColorAccent   = lipgloss.Color("39")  // sky
	ColorSubtle   = lipgloss.Color("245") // grey
	ColorWarning  = lipgloss.Color("214") // orange
	ColorCritical = lipgloss.Color("196") // red
	ColorText     = lipgloss.Color("252")
)

//nolint:gochecknoglobals // Shared, immutable styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	CriticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorSubtle)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

// categoryColors follows the EPA AQI color scale.
//
//nolint:gochecknoglobals // Lookup table.
var categoryColors = map[aqi.Category]lipgloss.Color{
	aqi.Good:               lipgloss.Color("46"),
	aqi.Moderate:           lipgloss.Color("226"),
	aqi.UnhealthySensitive: lipgloss.Color("208"),
	aqi.Unhealthy:          lipgloss.Color("196"),
	aqi.VeryUnhealthy:      lipgloss.Color("129"),
	aqi.Hazardous:          lipgloss.Color("88"),
}

// CategoryStyle returns the style used for an AQI category.
func CategoryStyle(c aqi.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = ColorSubtle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
