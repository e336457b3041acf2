package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	BarHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	BarMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	BarLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// FractionBar renders a value in [0,1] as a bar of the given width.
// Out-of-range values are clamped.
func FractionBar(v float64, width int) string {
	filled := int(v*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case v > 0.5:
		return BarHigh.Render(bar)
	case v > 0.1:
		return BarMid.Render(bar)
	}
	return BarLow.Render(bar)
}

// Sparkline renders values scaled between their min and max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		b.WriteRune(chars[sparkIndex(values[i*step], lo, rng, len(chars)-1)])
	}
	return b.String()
}

// sparkIndex maps v onto [0, top]. NaN sits at the bottom and infinities
// pin to their end of the scale.
func sparkIndex(v, lo, rng float64, top int) int {
	switch {
	case math.IsNaN(v), math.IsInf(v, -1):
		return 0
	case math.IsInf(v, 1):
		return top
	}
	return min(max(int((v-lo)/rng*float64(top)), 0), top)
}
