package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rshade/ecotrack/internal/airquality"
	"github.com/rshade/ecotrack/internal/aqi"
)

// NoDataMessage is shown when a station reports no particulate readings.
const NoDataMessage = "No PM2.5 or PM10 data available for the nearest station."

// RenderAQIReport renders a boxed air-quality report. Reports without an
// index show NoDataMessage instead of a value.
func RenderAQIReport(report airquality.Report, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("AIR QUALITY"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render(padRight("Location:", labelWidth)))
	content.WriteString(ValueStyle.Render(report.Station.DisplayLocation()))
	content.WriteString("\n")
	if report.Station.Name != "" {
		content.WriteString(LabelStyle.Render(padRight("Station:", labelWidth)))
		content.WriteString(report.Station.Name)
		content.WriteString("\n")
	}

	if !report.HasIndex || report.Result == nil {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(NoDataMessage))
		return BoxStyle.Width(boxWidth(width)).Render(content.String())
	}

	res := report.Result
	style := CategoryStyle(res.Category)

	content.WriteString(LabelStyle.Render(padRight("AQI:", labelWidth)))
	content.WriteString(style.Render(strconv.Itoa(res.Index)))
	content.WriteString("  ")
	content.WriteString(style.Render(res.Category.Label()))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render(padRight("Main pollutant:", labelWidth)))
	content.WriteString(res.Dominant.DisplayName())
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render(padRight("PM2.5:", labelWidth)))
	content.WriteString(formatReading(res.PM25, res.PM25Index))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render(padRight("PM10:", labelWidth)))
	content.WriteString(formatReading(res.PM10, res.PM10Index))

	return BoxStyle.Width(boxWidth(width)).Render(content.String())
}

func formatReading(concentration *float64, index *int) string {
	if concentration == nil || index == nil {
		return SubtleStyle.Render("n/a")
	}
	return fmt.Sprintf("%.1f µg/m³ (AQI %d)", *concentration, *index)
}

// CategoryLegend lists the AQI categories with their upper bounds.
func CategoryLegend() string {
	bounds := []struct {
		c   aqi.Category
		max int
	}{
		{aqi.Good, 50},
		{aqi.Moderate, 100},
		{aqi.UnhealthySensitive, 150},
		{aqi.Unhealthy, 200},
		{aqi.VeryUnhealthy, 300},
		{aqi.Hazardous, 500},
	}
	parts := make([]string, 0, len(bounds))
	for _, b := range bounds {
		parts = append(parts, CategoryStyle(b.c).Render(fmt.Sprintf("%s ≤%d", b.c.Label(), b.max)))
	}
	return strings.Join(parts, "  ")
}
