package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/qpot/internal/analysis"
	"github.com/san-kum/qpot/internal/config"
	"github.com/san-kum/qpot/internal/olim"
	"github.com/san-kum/qpot/internal/seed"
)

const (
	metadataFile   = "metadata.json"
	valuesFile     = "qpot.txt"
	kindsFile      = "stype.txt"
	provenanceFile = "provenance.csv"
	curveFile      = "curve.txt"
)

var (
	ErrRunNotFound   = errors.New("storage: run not found")
	ErrShapeMismatch = errors.New("storage: stored grid does not match metadata")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the directory holding the files of run id.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.baseDir, id)
}

type RunSummary struct {
	Accepted        int     `json:"accepted"`
	Termination     string  `json:"termination"`
	Last            int     `json:"last"`
	LastValue       float64 `json:"last_value"`
	OnePointUpdates int     `json:"one_point_updates"`
	TwoPointUpdates int     `json:"two_point_updates"`
	NotBracketed    int     `json:"not_bracketed"`
	ElapsedMS       float64 `json:"elapsed_ms"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Field     string             `json:"field"`
	Timestamp time.Time          `json:"timestamp"`
	Config    *config.Config     `json:"config"`
	Summary   RunSummary         `json:"summary"`
	Metrics   map[string]float64 `json:"metrics"`
	Report    *analysis.Report   `json:"report,omitempty"`
}

func summarize(s olim.Summary) RunSummary {
	return RunSummary{
		Accepted:        s.Accepted,
		Termination:     s.Termination.String(),
		Last:            s.Last,
		LastValue:       s.LastValue,
		OnePointUpdates: s.OnePointUpdates,
		TwoPointUpdates: s.TwoPointUpdates,
		NotBracketed:    s.NotBracketed,
		ElapsedMS:       float64(s.Elapsed.Microseconds()) / 1000,
	}
}

// Save writes a run directory for res and returns its metadata. rep may be
// nil.
func (s *Store) Save(cfg *config.Config, res *olim.Result, rep *analysis.Report) (*RunMetadata, error) {
	runID, err := s.newRunDir(cfg.Field)
	if err != nil {
		return nil, err
	}
	runDir := s.Dir(runID)

	meta := &RunMetadata{
		ID:        runID,
		Field:     cfg.Field,
		Timestamp: time.Now().UTC(),
		Config:    cfg,
		Summary:   summarize(res.Summary),
		Metrics:   res.Metrics,
		Report:    rep,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return nil, err
	}

	status := res.Status()
	kinds := res.Kinds()
	tags := make([]int, len(kinds))
	for i, k := range kinds {
		tags[i] = int(olim.Unreached)
		if status[i].Accepted() {
			tags[i] = int(k)
		}
	}

	nx := res.Grid.NX
	err = createWith(filepath.Join(runDir, valuesFile), func(f *os.File) error {
		return WriteValues(f, nx, res.Values())
	})
	if err != nil {
		return nil, err
	}
	err = createWith(filepath.Join(runDir, kindsFile), func(f *os.File) error {
		return WriteKinds(f, nx, tags)
	})
	if err != nil {
		return nil, err
	}
	err = createWith(filepath.Join(runDir, provenanceFile), func(f *os.File) error {
		return writeProvenance(f, res.Provenance())
	})
	if err != nil {
		return nil, err
	}

	return meta, nil
}

func (s *Store) newRunDir(field string) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	for attempt := 0; attempt < 3; attempt++ {
		runID := fmt.Sprintf("%s_%s", field, uuid.NewString()[:8])
		err := os.Mkdir(s.Dir(runID), 0755)
		if err == nil {
			return runID, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}
	runID := fmt.Sprintf("%s_%s", field, uuid.NewString())
	return runID, os.Mkdir(s.Dir(runID), 0755)
}

func writeJSON(path string, v any) error {
	return createWith(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func createWith(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeProvenance(f *os.File, prov []olim.Provenance) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"idx", "kind", "ind0", "ind1", "s"}); err != nil {
		return err
	}
	for i, p := range prov {
		if p.Kind == olim.Unreached {
			continue
		}
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(int(p.Kind)),
			strconv.Itoa(p.Ind0),
			strconv.Itoa(p.Ind1),
			strconv.FormatFloat(p.S, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadValues reads the quasi-potential of a run, row-major, with
// olim.Infinity at points that were not accepted.
func (s *Store) LoadValues(runID string) ([]float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.Dir(runID), valuesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, nx, err := ReadValues(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", valuesFile, err)
	}
	if err := checkShape(meta, nx, len(values)); err != nil {
		return nil, err
	}
	return values, nil
}

// LoadKinds reads the provenance tag of every point of a run.
func (s *Store) LoadKinds(runID string) ([]olim.Kind, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.Dir(runID), kindsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tags, nx, err := ReadKinds(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kindsFile, err)
	}
	if err := checkShape(meta, nx, len(tags)); err != nil {
		return nil, err
	}
	kinds := make([]olim.Kind, len(tags))
	for i, t := range tags {
		kinds[i] = olim.Kind(t)
	}
	return kinds, nil
}

func checkShape(meta *RunMetadata, nx, n int) error {
	g := meta.Config.Grid
	if nx != g.NX || n != g.NX*g.NY {
		return fmt.Errorf("%w: %d values in rows of %d, want %dx%d", ErrShapeMismatch, n, nx, g.NX, g.NY)
	}
	return nil
}

// SaveCurve stores the seed curve of run id next to its values.
func (s *Store) SaveCurve(runID string, c seed.Curve) error {
	if _, err := os.Stat(s.Dir(runID)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return seed.SaveCurve(filepath.Join(s.Dir(runID), curveFile), c)
}

// LoadCurve returns the seed curve of run id, nil if the run was seeded from
// a point.
func (s *Store) LoadCurve(runID string) (seed.Curve, error) {
	c, err := seed.LoadCurve(filepath.Join(s.Dir(runID), curveFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return c, err
}
