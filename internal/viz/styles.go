package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	GradientTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// GradientText colors each rune of text on a line between two hex colors,
// blending in Lab space.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, err1 := colorful.Hex(string(startColor))
	to, err2 := colorful.Hex(string(endColor))
	if err1 != nil || err2 != nil {
		return text
	}

	var result strings.Builder
	n := max(len(runes)-1, 1)
	for i, c := range runes {
		color := from.BlendLab(to, float64(i)/float64(n)).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex())).Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders the fraction percent of width cells.
func ProgressBar(percent float64, width int) string {
	filled := min(max(int(percent*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return SparkHigh.Render(bar)
	case percent > 0.4:
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineChart renders values sampled to width columns. Values at or above
// ceiling draw as a blank.
func SparklineChart(values []float64, width int, ceiling float64) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi := ceiling, 0.0
	for _, v := range values {
		if v >= ceiling {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng <= 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)
	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if v >= ceiling {
			result.WriteRune(' ')
			continue
		}
		norm := (v - lo) / rng
		c := sparkChars[min(max(int(norm*float64(len(sparkChars)-1)), 0), len(sparkChars)-1)]
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(string(c)))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(string(c)))
		default:
			result.WriteString(SparkLow.Render(string(c)))
		}
	}
	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
