package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the viewer. Ramp runs from low to high values of U; Accent
// marks the cursor and Muted the unreached points.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Ramp   []lipgloss.Color
}

var (
	ThemeViridis = Theme{
		Name:   "viridis",
		Accent: lipgloss.Color("#ff4444"),
		Muted:  lipgloss.Color("#555555"),
		Ramp: []lipgloss.Color{
			"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
			"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
		},
	}

	ThemeMagma = Theme{
		Name:   "magma",
		Accent: lipgloss.Color("#00ffff"),
		Muted:  lipgloss.Color("#4a4a4a"),
		Ramp: []lipgloss.Color{
			"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
			"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf",
		},
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Accent: lipgloss.Color("#ffd700"),
		Muted:  lipgloss.Color("#4488aa"),
		Ramp: []lipgloss.Color{
			"#03045e", "#023e8a", "#0077b6", "#0096c7", "#00b4d8",
			"#48cae4", "#90e0ef", "#ade8f4", "#caf0f8", "#f0fbff",
		},
	}

	// ThemeRetro is green phosphor.
	ThemeRetro = Theme{
		Name:   "retro",
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#003300"),
		Ramp: []lipgloss.Color{
			"#001a00", "#003300", "#004d00", "#006600", "#008000",
			"#009900", "#00b300", "#00cc00", "#00e600", "#88ff88",
		},
	}

	ThemeGray = Theme{
		Name:   "gray",
		Accent: lipgloss.Color("#ff8800"),
		Muted:  lipgloss.Color("#303030"),
		Ramp: []lipgloss.Color{
			"#1c1c1c", "#303030", "#444444", "#585858", "#6c6c6c",
			"#808080", "#949494", "#a8a8a8", "#bcbcbc", "#eeeeee",
		},
	}

	Themes = []Theme{ThemeViridis, ThemeMagma, ThemeOcean, ThemeRetro, ThemeGray}
)

// GetTheme returns a theme by name, viridis if there is none.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeViridis
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Shade returns the ramp color for v in [0, top]. Values outside are clamped.
func (t Theme) Shade(v, top float64) lipgloss.Color {
	if top <= 0 {
		return t.Ramp[0]
	}
	k := int(v / top * float64(len(t.Ramp)-1))
	return t.Ramp[min(max(k, 0), len(t.Ramp)-1)]
}
