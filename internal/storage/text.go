package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrRaggedRows = errors.New("storage: rows of different length")

// WriteValues writes values as rows of nx tab-terminated "%.12e" numbers,
// one row per grid line j.
func WriteValues(w io.Writer, nx int, values []float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		fmt.Fprintf(bw, "%.12e\t", v)
		if (i+1)%nx == 0 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func WriteKinds(w io.Writer, nx int, tags []int) error {
	bw := bufio.NewWriter(w)
	for i, t := range tags {
		fmt.Fprintf(bw, "%d\t", t)
		if (i+1)%nx == 0 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// ReadValues reads a table written by WriteValues and returns it row-major
// with its row length.
func ReadValues(r io.Reader) ([]float64, int, error) {
	return readTable(r, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func ReadKinds(r io.Reader) ([]int, int, error) {
	return readTable(r, strconv.Atoi)
}

func readTable[T any](r io.Reader, parse func(string) (T, error)) ([]T, int, error) {
	var out []T
	nx := -1
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if nx < 0 {
			nx = len(fields)
		} else if len(fields) != nx {
			return nil, 0, fmt.Errorf("%w: line %d has %d values, want %d", ErrRaggedRows, line, len(fields), nx)
		}
		for _, f := range fields {
			v, err := parse(f)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}
	return out, max(nx, 0), nil
}
