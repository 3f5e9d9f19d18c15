package seed

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/qpot/internal/geom"
)

// Curve is a closed polygon. The point after the last one is the first.
type Curve []geom.Vec

func (c Curve) Next(i int) int { return (i + 1) % len(c) }

func (c Curve) Prev(i int) int { return (i + len(c) - 1) % len(c) }

// Circle returns n points on the circle of radius r around the origin.
func Circle(n int, r float64) Curve {
	c := make(Curve, n)
	for k := range c {
		th := 2 * math.Pi * float64(k) / float64(n)
		c[k] = geom.Vec{X: r * math.Cos(th), Y: r * math.Sin(th)}
	}
	return c
}

// Nearest returns the index of the curve point closest to x. A coarse pass
// visits every twelfth of the curve, then the neighbourhood of the coarse
// winner is scanned point by point.
func (c Curve) Nearest(x geom.Vec) int {
	step := max(1, len(c)/12)
	nmin, dmin := 0, math.Inf(1)
	for n := 0; n < len(c); n += step {
		if d := geom.Dist(c[n], x); d < dmin {
			nmin, dmin = n, d
		}
	}

	imin := nmin
	fwd, bwd := nmin, nmin
	for n := 1; n < 2*step; n++ {
		fwd = c.Next(fwd)
		if d := geom.Dist(c[fwd], x); d < dmin {
			imin, dmin = fwd, d
		}
		bwd = c.Prev(bwd)
		if d := geom.Dist(c[bwd], x); d < dmin {
			imin, dmin = bwd, d
		}
	}
	return imin
}

// Foot returns the point closest to x on the curve segment next to its
// nearest vertex, and the distance from x to it. Of the two segments meeting
// at the vertex, the one x projects onto from the vertex is used.
func (c Curve) Foot(x geom.Vec) (geom.Vec, float64) {
	imin := c.Nearest(x)
	x0 := c[imin]
	x1 := c[c.Next(imin)]
	v0 := x0.Sub(x)
	if v0.Dot(x0.Sub(x1)) < 0 {
		x1 = c[c.Prev(imin)]
	}

	v := x1.Sub(x0)
	l2 := v.Dot(v)
	if l2 == 0 {
		return x0, v0.Norm()
	}
	t := math.Min(math.Max(x.Sub(x0).Dot(v)/l2, 0), 1)
	foot := x0.Add(v.Scale(t))
	return foot, geom.Dist(foot, x)
}

// ReadCurve parses whitespace separated "x y" lines. Blank lines and lines
// starting with # are skipped.
func ReadCurve(r io.Reader) (Curve, error) {
	var c Curve
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w %d: %q", ErrBadCurveLine, line, text)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadCurveLine, line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadCurveLine, line, err)
		}
		c = append(c, geom.Vec{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(c) < 2 {
		return nil, ErrEmptyCurve
	}
	return c, nil
}

func LoadCurve(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCurve(f)
}

// WriteCurve writes one tab separated "x y" line per point.
func WriteCurve(w io.Writer, c Curve) error {
	bw := bufio.NewWriter(w)
	for _, p := range c {
		if _, err := fmt.Fprintf(bw, "%.12e\t%.12e\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func SaveCurve(path string, c Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCurve(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
