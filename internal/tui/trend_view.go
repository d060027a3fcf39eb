package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/trend"
)

// InsufficientHistoryMessage is shown when there are too few entries for a trend.
const InsufficientHistoryMessage = "Save at least two calculations to see your trend."

// dateLayout is used for history timestamps.
const dateLayout = "2006-01-02 15:04"

// RenderTrend renders current footprint, change since the first entry and
// progress toward trend.Goal. Undefined values are shown as "-".
func RenderTrend(stats trend.Stats, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("TREND"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render(padRight("Current footprint:", labelWidth)))
	if stats.Latest != nil {
		content.WriteString(ValueStyle.Render(footprint.FormatTonnes(*stats.Latest)))
	} else {
		content.WriteString(SubtleStyle.Render("-"))
	}
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render(padRight("Change since first:", labelWidth)))
	content.WriteString(FormatPercentChange(stats.PercentChange))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render(padRight(fmt.Sprintf("Goal (%g t):", trend.Goal), labelWidth)))
	content.WriteString(FormatGoalProgress(stats))
	content.WriteString("\n")

	if !stats.Sufficient {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(InsufficientHistoryMessage))
		return BoxStyle.Width(boxWidth(width)).Render(content.String())
	}

	content.WriteString("\n")
	content.WriteString(HeaderStyle.Render("SERIES"))
	content.WriteString("\n")
	fmt.Fprintf(&content, "%-16s  %8s  %9s  %8s  %8s  %8s\n",
		"Date", "Total", "Transport", "Energy", "Diet", "Waste")
	for _, p := range stats.Series {
		fmt.Fprintf(&content, "%-16s  %8.2f  %9.2f  %8.2f  %8.2f  %8.2f\n",
			p.Date.Local().Format(dateLayout), p.Total, p.Transport, p.Energy, p.Diet, p.Waste)
	}

	return BoxStyle.Width(boxWidth(width)).Render(strings.TrimRight(content.String(), "\n"))
}

// FormatPercentChange renders a signed percentage such as "-40.0%", or "-"
// when undefined.
func FormatPercentChange(pct *float64) string {
	if pct == nil {
		return SubtleStyle.Render("-")
	}
	s := fmt.Sprintf("%+.1f%%", *pct)
	if *pct <= 0 {
		return OKStyle.Render(s)
	}
	return WarningStyle.Render(s)
}

// FormatGoalProgress renders "Met" or "X.XX t to go".
func FormatGoalProgress(stats trend.Stats) string {
	switch {
	case stats.DistanceToGoal == nil:
		return SubtleStyle.Render("-")
	case stats.GoalMet():
		return OKStyle.Render("Met")
	default:
		return WarningStyle.Render(footprint.FormatValue(*stats.DistanceToGoal) + " t to go")
	}
}
