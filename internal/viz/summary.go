package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qpot/internal/storage"
)

const summaryWidth = 40

// Summary renders a stored run as a panel: grid, how far the front got, the
// solver counters, metrics and the error report if there is one.
func Summary(meta *storage.RunMetadata) string {
	cfg := meta.Config
	s := meta.Summary
	total := cfg.Grid.NX * cfg.Grid.NY

	var b strings.Builder
	b.WriteString(GradientText("qpot · "+meta.Field, lipgloss.Color("#00ffff"), lipgloss.Color("#ff00ff")))
	b.WriteString("\n")
	b.WriteString(Subtle.Render(meta.ID + "  " + meta.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(MetricValue.Render(value))
		b.WriteString("\n")
	}

	row("grid", fmt.Sprintf("%dx%d  [%g,%g]x[%g,%g]", cfg.Grid.NX, cfg.Grid.NY,
		cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax))
	row("stencil", fmt.Sprintf("K=%d margin=%d", cfg.Stencil.K, cfg.Stencil.Margin))
	row("seed", fmt.Sprintf("%s (%s)", cfg.Seed.Kind, cfg.Seed.Init))

	frac := 0.0
	if total > 0 {
		frac = float64(s.Accepted) / float64(total)
	}
	b.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", "accepted")))
	b.WriteString(ProgressBar(frac, 20))
	b.WriteString(MetricValue.Render(fmt.Sprintf(" %d/%d", s.Accepted, total)))
	b.WriteString("\n")

	term := StatusOK.Render(s.Termination)
	if s.Termination == "canceled" || s.Termination == "unreachable-reached" {
		term = StatusWarn.Render(s.Termination)
	}
	b.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", "termination")))
	b.WriteString(term)
	b.WriteString("\n")
	row("last value", fmt.Sprintf("%.6g", s.LastValue))
	row("updates", fmt.Sprintf("%d one-point, %d two-point", s.OnePointUpdates, s.TwoPointUpdates))
	if s.NotBracketed > 0 {
		row("not bracketed", fmt.Sprintf("%d", s.NotBracketed))
	}
	row("elapsed", fmt.Sprintf("%.1f ms", s.ElapsedMS))

	if len(meta.Metrics) > 0 {
		b.WriteString("\n")
		b.WriteString(Separator(summaryWidth))
		b.WriteString("\n")
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(name, fmt.Sprintf("%.6g", meta.Metrics[name]))
		}
	}

	if r := meta.Report; r != nil && r.Count > 0 {
		b.WriteString("\n")
		b.WriteString(Separator(summaryWidth))
		b.WriteString("\n")
		row("errmax", fmt.Sprintf("%.3e", r.ErrMax))
		row("erms", fmt.Sprintf("%.3e", r.ERMS))
		row("compared", fmt.Sprintf("%d points", r.Count))
	}

	return GlassPanel.Render(strings.TrimRight(b.String(), "\n"))
}
