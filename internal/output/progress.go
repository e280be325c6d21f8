package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar palette, green-on-grey.
const (
	colorBarFilled = "#22C55E"
	colorBarEmpty  = "#3A3F55"
)

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBarFilled))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBarEmpty))
)

// ProgressBar renders a fixed-width bar for a percentage in [0, 100].
// Out-of-range values are clamped.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String()
}
