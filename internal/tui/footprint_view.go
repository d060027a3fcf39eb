package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrack/internal/footprint"
)

// Layout constants.
const (
	borderPadding  = 2
	labelWidth     = 22
	defaultWidth   = 80
	defaultHeight  = 24
	percentFactor  = 100
	minRenderWidth = 20
)

// RenderFootprintSummary renders a boxed summary of one calculation: the
// total, each category with its share, the global-average comparison,
// equivalencies and recommendations.
func RenderFootprintSummary(result footprint.Result, recommendations []string, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("CARBON FOOTPRINT"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render(padRight("Total:", labelWidth)))
	content.WriteString(ValueStyle.Render(footprint.FormatTonnes(result.Total)))
	content.WriteString("\n")

	cmp := footprint.CompareToGlobalAverage(result)
	if cmp.Below {
		content.WriteString(OKStyle.Render(cmp.Summary()))
	} else {
		content.WriteString(WarningStyle.Render(cmp.Summary()))
	}
	content.WriteString("\n\n")

	content.WriteString(HeaderStyle.Render("BREAKDOWN"))
	content.WriteString("\n")
	for _, c := range footprint.Breakdown(result) {
		content.WriteString(LabelStyle.Render(padRight(c.Name+":", labelWidth)))
		content.WriteString(ValueStyle.Render(footprint.FormatValue(c.Value) + " t"))
		if result.Total > 0 {
			content.WriteString(SubtleStyle.Render(fmt.Sprintf("  (%.0f%%)", c.Value/result.Total*percentFactor)))
		}
		content.WriteString("\n")
	}

	if eqs := footprint.Equivalencies(result); len(eqs) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("EQUIVALENT TO"))
		content.WriteString("\n")
		for _, eq := range eqs {
			fmt.Fprintf(&content, "- %s %s\n", ValueStyle.Render(eq.FormattedValue), eq.Label)
		}
	}

	if len(recommendations) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("RECOMMENDATIONS"))
		content.WriteString("\n")
		for _, rec := range recommendations {
			fmt.Fprintf(&content, "- %s\n", rec)
		}
	}

	return BoxStyle.Width(boxWidth(width)).Render(strings.TrimRight(content.String(), "\n"))
}

func boxWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	return max(width-borderPadding, minRenderWidth)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
