package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gauge block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// FormatNumber renders a backend value exactly as received, with no rounding
// or padding: 23.45 stays "23.45" and 40.0 becomes "40".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// RenderGauge renders a labelled usage bar.
// Output format: CPU     [████████░░░░]  67.25%
// The bar turns yellow at warning and red at critical.
func RenderGauge(label string, percent float64, width, warning, critical int) string {
	if width <= 0 {
		return ""
	}

	clamped := ClampPercent(percent)
	filled := int((clamped / 100.0) * float64(width))

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteRune('[')
	sb.WriteString(strings.Repeat(string(BarFilled), filled))
	sb.WriteString(strings.Repeat(string(BarEmpty), width-filled))
	sb.WriteRune(']')

	style := lipgloss.NewStyle().Foreground(ThresholdColor(clamped, warning, critical))
	return fmt.Sprintf("%-7s %s %6s%%", label, style.Render(sb.String()), FormatNumber(percent))
}
