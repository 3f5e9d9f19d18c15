package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

const (
	viewerCols = 72
	viewerRows = 28
)

// Viewer is a Bubble Tea model that shows U as a colored heat map with a
// cursor. Display cells sample the grid; y grows upward.
type Viewer struct {
	title  string
	grid   *mesh.Grid
	values []float64
	kinds  []olim.Kind

	cols, rows int
	col, row   int
	top, peak  float64
	theme      int
}

// NewViewer builds a viewer over values and kinds, both row-major over grid.
// kinds may be nil.
func NewViewer(title string, grid *mesh.Grid, values []float64, kinds []olim.Kind) Viewer {
	peak := 0.0
	for _, v := range values {
		if v < olim.Infinity-1 {
			peak = max(peak, v)
		}
	}
	if peak == 0 {
		peak = 1
	}
	v := Viewer{
		title:  title,
		grid:   grid,
		values: values,
		kinds:  kinds,
		top:    peak,
		peak:   peak,
	}
	v.resize(viewerCols, viewerRows)
	v.col, v.row = v.cols/2, v.rows/2
	return v
}

func (v *Viewer) resize(cols, rows int) {
	v.cols = min(max(cols, 2), v.grid.NX)
	v.rows = min(max(rows, 2), v.grid.NY)
	v.col = min(v.col, v.cols-1)
	v.row = min(v.row, v.rows-1)
}

// cell returns the grid point sampled by display cell (c, r).
func (v Viewer) cell(c, r int) (int, int) {
	i := c * (v.grid.NX - 1) / (v.cols - 1)
	j := (v.rows - 1 - r) * (v.grid.NY - 1) / (v.rows - 1)
	return i, j
}

// Cursor returns the grid point under the cursor.
func (v Viewer) Cursor() (int, int) { return v.cell(v.col, v.row) }

// Cap returns the value mapped to the top of the color ramp.
func (v Viewer) Cap() float64 { return v.top }

func (v Viewer) Theme() Theme { return Themes[v.theme] }

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c", "esc":
			return v, tea.Quit
		case "left", "h":
			v.col = max(v.col-1, 0)
		case "right", "l":
			v.col = min(v.col+1, v.cols-1)
		case "up", "k":
			v.row = max(v.row-1, 0)
		case "down", "j":
			v.row = min(v.row+1, v.rows-1)
		case "+", "=":
			v.top = min(v.top*1.25, v.peak)
		case "-", "_":
			v.top = max(v.top*0.8, v.peak*1e-3)
		case "t", "T":
			v.theme = (v.theme + 1) % len(Themes)
		}
	case tea.WindowSizeMsg:
		v.resize(min(msg.Width-4, viewerCols*2), msg.Height-10)
	}
	return v, nil
}

func (v Viewer) View() string {
	th := v.Theme()
	unreached := lipgloss.NewStyle().Foreground(th.Muted)
	cursor := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(v.title))
	b.WriteString("\n")
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			val := v.values[v.grid.Index(v.cell(c, r))]
			switch {
			case c == v.col && r == v.row:
				b.WriteString(cursor.Render("◆"))
			case val >= olim.Infinity-1:
				b.WriteString(unreached.Render("·"))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(th.Shade(val, v.top)).Render("█"))
			}
		}
		b.WriteString("\n")
	}

	i, j := v.Cursor()
	idx := v.grid.Index(i, j)
	p := v.grid.Point(idx)
	val := "unreached"
	if u := v.values[idx]; u < olim.Infinity-1 {
		val = fmt.Sprintf("%.6g", u)
	}
	kind := ""
	if v.kinds != nil {
		kind = "  " + v.kinds[idx].String()
	}
	b.WriteString(MetricLabel.Render(fmt.Sprintf("(%d,%d) x=%.4f y=%.4f  U=", i, j, p.X, p.Y)))
	b.WriteString(MetricValue.Render(val))
	b.WriteString(Subtle.Render(kind))
	b.WriteString("\n")
	b.WriteString(SparklineChart(v.grid.Row(v.values, j), v.cols, olim.Infinity-1))
	b.WriteString("\n")
	b.WriteString(KeyHint.Render(fmt.Sprintf("cap %.4g  theme %s  ·  hjkl move  +/- cap  t theme  q quit", v.top, th.Name)))
	return b.String()
}
