package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/qpot/internal/analysis"
	"github.com/san-kum/qpot/internal/config"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/monitoring"
	"github.com/san-kum/qpot/internal/olim"
	"github.com/san-kum/qpot/internal/physics"
	"github.com/san-kum/qpot/internal/seed"
)

func init() {
	monitoring.SetLogger(nil)
}

func smallRun(t *testing.T) (*config.Config, *olim.Result, *analysis.Report) {
	t.Helper()
	cfg := config.GetPreset("linear", "coarse")
	cfg.Grid = config.GridConfig{NX: 17, NY: 13, XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	cfg.Stencil.K = 3

	grid, err := mesh.New(cfg.Grid.NX, cfg.Grid.NY, cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax)
	require.NoError(t, err)
	f := physics.NewLinear()
	opts := olim.DefaultOptions()
	opts.K = cfg.Stencil.K
	s, err := olim.New(grid, f, opts)
	require.NoError(t, err)
	set, err := seed.FromPoint(grid, f.Attractor(), seed.Exact(f))
	require.NoError(t, err)
	require.NoError(t, s.Seed(set))
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	rep := analysis.Compare(grid, res.Values(), f.Potential)
	return cfg, res, &rep
}

func TestStore_SaveLoad(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "runs"))
	cfg, res, rep := smallRun(t)

	meta, err := store.Save(cfg, res, rep)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(meta.ID, "linear_"))

	for _, name := range []string{metadataFile, valuesFile, kindsFile, provenanceFile} {
		_, err := os.Stat(filepath.Join(store.Dir(meta.ID), name))
		assert.NoError(t, err, name)
	}

	loaded, err := store.Load(meta.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(meta, loaded, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("metadata mismatch (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, res.Summary.Termination.String(), loaded.Summary.Termination)

	values, err := store.LoadValues(meta.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(res.Values(), values, cmpopts.EquateApprox(1e-11, 0)); diff != "" {
		t.Errorf("values mismatch:\n%s", diff)
	}

	kinds, err := store.LoadKinds(meta.ID)
	require.NoError(t, err)
	status := res.Status()
	prov := res.Provenance()
	for i, k := range kinds {
		if status[i].Accepted() {
			assert.Equal(t, prov[i].Kind, k, "index %d", i)
		} else {
			assert.Equal(t, olim.Unreached, k, "index %d", i)
		}
	}
}

func TestStore_ProvenanceCSV(t *testing.T) {
	store := New(t.TempDir())
	cfg, res, _ := smallRun(t)
	meta, err := store.Save(cfg, res, nil)
	require.NoError(t, err)
	assert.Nil(t, meta.Report)

	data, err := os.ReadFile(filepath.Join(store.Dir(meta.ID), provenanceFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "idx,kind,ind0,ind1,s", lines[0])

	reached := 0
	for _, p := range res.Provenance() {
		if p.Kind != olim.Unreached {
			reached++
		}
	}
	assert.Len(t, lines, reached+1)
}

func TestStore_List(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg, res, rep := smallRun(t)
	a, err := store.Save(cfg, res, rep)
	require.NoError(t, err)
	b, err := store.Save(cfg, res, rep)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, os.WriteFile(filepath.Join(store.baseDir, "stray.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(store.baseDir, "empty"), 0755))

	runs, err = store.List()
	require.NoError(t, err)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.Len(t, runs, 2)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}

func TestStore_LoadMissing(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Load("nope")
	assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
	_, err = store.LoadValues("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStore_ShapeMismatch(t *testing.T) {
	store := New(t.TempDir())
	cfg, res, rep := smallRun(t)
	meta, err := store.Save(cfg, res, rep)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, 17, make([]float64, 17*4)))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(meta.ID), valuesFile), buf.Bytes(), 0644))

	_, err = store.LoadValues(meta.ID)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestWriteReadValues(t *testing.T) {
	values := []float64{0, 1.5, olim.Infinity, 2e-7, 3, 4}
	var buf bytes.Buffer
	require.NoError(t, WriteValues(&buf, 3, values))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "0.000000000000e+00\t1.500000000000e+00\t1.000000000000e+06\t", lines[0])

	got, nx, err := ReadValues(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, nx)
	assert.Equal(t, values, got)
}

func TestReadKinds_Ragged(t *testing.T) {
	_, _, err := ReadKinds(strings.NewReader("0\t1\t2\n-1\t2\n"))
	assert.ErrorIs(t, err, ErrRaggedRows)

	_, _, err = ReadKinds(strings.NewReader("0\tx\n"))
	assert.Error(t, err)

	tags, nx, err := ReadKinds(strings.NewReader("-1\t0\t\n1\t2\t\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, nx)
	assert.Equal(t, []int{-1, 0, 1, 2}, tags)
}

func TestStore_Curve(t *testing.T) {
	store := New(t.TempDir())
	cfg, res, _ := smallRun(t)
	meta, err := store.Save(cfg, res, nil)
	require.NoError(t, err)

	c, err := store.LoadCurve(meta.ID)
	require.NoError(t, err)
	assert.Nil(t, c, "point seeded runs have no curve")

	circle := seed.Circle(32, 0.5)
	require.NoError(t, store.SaveCurve(meta.ID, circle))
	c, err = store.LoadCurve(meta.ID)
	require.NoError(t, err)
	if diff := cmp.Diff([]geom.Vec(circle), []geom.Vec(c), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("curve mismatch:\n%s", diff)
	}

	err = store.SaveCurve("nope", circle)
	assert.ErrorIs(t, err, ErrRunNotFound)
}
