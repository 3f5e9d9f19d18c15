package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/qpot/internal/analysis"
	"github.com/san-kum/qpot/internal/config"
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/experiment"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/monitoring"
	"github.com/san-kum/qpot/internal/olim"
	"github.com/san-kum/qpot/internal/render"
	"github.com/san-kum/qpot/internal/seed"
	"github.com/san-kum/qpot/internal/storage"
	"github.com/san-kum/qpot/internal/viz"
)

const catalogFile = "catalog.db"

var (
	dataDir string
	verbose bool
	// Solve
	configFile string
	preset     string
	gridN      int
	stencilK   int
	margin     int
	tol        float64
	maxIter    int
	seedX      float64
	seedY      float64
	initName   string
	curveFile  string
	paramPairs []string
	saveConfig string
	noSave     bool
	// Sweep
	factors []float64
	workers int
	// Listing
	fieldFilter string
	limit       int
	// Plots
	row      int
	col      int
	width    int
	height   int
	levels   int
	clip     float64
	outPath  string
	title    string
	drawSets bool
	errField bool
	refField bool
	// Curves
	circlePoints int
	circleRadius float64
)

// main registers the qpot commands and exits with status 1 if one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "qpot",
		Short:         "quasi-potential solver for planar stochastic systems",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				monitoring.SetLogger(nil)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qpot", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver progress")

	solveCmd := &cobra.Command{
		Use:   "solve [field]",
		Short: "compute the quasi-potential of a field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective configuration to this path")
	solveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [field]",
		Short: "solve one configuration at several grid resolutions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSolveFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&factors, "factors", []float64{0.25, 0.5, 1}, "grid refinement factors")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = one per CPU)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}
	listCmd.Flags().StringVar(&fieldFilter, "field", "", "only runs of this field")
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&drawSets, "levels", false, "draw level sets of U")
	showCmd.Flags().IntVar(&levels, "n-levels", 8, "number of level sets")
	showCmd.Flags().IntVar(&width, "width", 60, "drawing width in characters")
	showCmd.Flags().IntVar(&height, "height", 24, "drawing height in characters")

	sliceCmd := &cobra.Command{
		Use:   "slice [run_id]",
		Short: "plot U along a grid row or column",
		Args:  cobra.ExactArgs(1),
		RunE:  sliceRun,
	}
	sliceCmd.Flags().IntVar(&row, "row", -1, "grid row (default: middle row)")
	sliceCmd.Flags().IntVar(&col, "col", -1, "grid column, instead of a row")
	sliceCmd.Flags().IntVar(&width, "width", 80, "plot width")
	sliceCmd.Flags().IntVar(&height, "height", 15, "plot height")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run to PNG or HTML",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, .png or .html (default <run_id>.png)")
	renderCmd.Flags().IntVar(&levels, "levels", render.DefaultOptions().Levels, "number of contour levels")
	renderCmd.Flags().Float64Var(&clip, "max", 0, "clip U at this value (0 = largest reached value)")
	renderCmd.Flags().StringVar(&title, "title", "", "plot title")
	renderCmd.Flags().BoolVar(&errField, "error", false, "render |U - U_exact| instead of U")
	renderCmd.Flags().BoolVar(&refField, "exact", false, "render the exact quasi-potential on the run's grid")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export x, y, U and provenance of every point to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	rmCmd := &cobra.Command{
		Use:   "rm [run_id]...",
		Short: "delete runs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  removeRuns,
	}

	curveCmd := &cobra.Command{
		Use:   "curve [field]",
		Short: "trace the limit cycle of a field, or write a circle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeCurve,
	}
	curveCmd.Flags().Float64Var(&seedX, "x", 0, "trace start x")
	curveCmd.Flags().Float64Var(&seedY, "y", 0, "trace start y")
	curveCmd.Flags().IntVar(&circlePoints, "circle", 0, "write a circle with this many points instead")
	curveCmd.Flags().Float64Var(&circleRadius, "radius", 1, "circle radius")
	curveCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	curveCmd.Flags().StringArrayVar(&paramPairs, "param", nil, "field parameter name=value")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list drift fields and their parameters",
		RunE:  listFields,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list available presets for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			slices.Sort(presets)
			if len(presets) == 0 {
				fmt.Printf("no presets for field: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-10s %dx%d K=%d seed=%s init=%s\n", p,
					cfg.Grid.NX, cfg.Grid.NY, cfg.Stencil.K, cfg.Seed.Kind, cfg.Seed.Init)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, sweepCmd, listCmd, showCmd, sliceCmd, renderCmd, viewCmd, exportCSVCmd, rmCmd, curveCmd, fieldsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVarP(&gridN, "grid", "n", config.DefaultN, "grid points per axis")
	cmd.Flags().IntVarP(&stencilK, "stencil", "k", config.DefaultK, "stencil radius in grid cells")
	cmd.Flags().IntVar(&margin, "margin", config.DefaultMargin, "stop this many cells from the boundary")
	cmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "root solver tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "root solver iteration cap")
	cmd.Flags().Float64Var(&seedX, "x", 0, "seed point x")
	cmd.Flags().Float64Var(&seedY, "y", 0, "seed point y")
	cmd.Flags().StringVar(&initName, "init", "", "seed initializer (zero, linearized, curve-distance, exact)")
	cmd.Flags().StringVar(&curveFile, "curve", "", "seed from the closed curve in this file")
	cmd.Flags().StringArrayVar(&paramPairs, "param", nil, "field parameter name=value")
}

// resolveConfig builds the solve configuration from the config file, else
// the named preset, else the field's default preset. Flags set on the command
// line override it.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	field := ""
	if len(args) > 0 {
		field = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		if field == "" {
			field = "linear"
		}
		cfg = config.GetPreset(field, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(field))
		}
	case field != "":
		cfg = config.GetPreset(field, "default")
		if cfg == nil {
			cfg = config.DefaultConfig()
			cfg.Field = field
		}
	default:
		cfg = config.DefaultConfig()
	}
	if field != "" {
		cfg.Field = field
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.Grid.NX, cfg.Grid.NY = gridN, gridN
	}
	if flags.Changed("stencil") {
		cfg.Stencil.K = stencilK
	}
	if flags.Changed("margin") {
		cfg.Stencil.Margin = margin
	}
	if flags.Changed("tol") {
		cfg.Solver.Tol = tol
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if flags.Changed("x") || flags.Changed("y") {
		p := config.PointConfig{}
		if cfg.Seed.Point != nil {
			p = *cfg.Seed.Point
		}
		if flags.Changed("x") {
			p.X = seedX
		}
		if flags.Changed("y") {
			p.Y = seedY
		}
		cfg.Seed.Point = &p
	}
	if flags.Changed("curve") {
		cfg.Seed.Kind = config.SeedCurve
		cfg.Seed.CurveFile = curveFile
		if !flags.Changed("init") && cfg.Seed.Init == config.InitLinearized {
			cfg.Seed.Init = config.InitCurveDistance
		}
	}
	if flags.Changed("init") {
		cfg.Seed.Init = initName
	}
	if flags.Changed("param") {
		p, err := parseParams(paramPairs)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for k, v := range p {
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad parameter %q, want name=value", pair)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, registry)
	if err := exp.Setup(registry.DefaultMetrics()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("solving %s on %s, K=%d...\n", cfg.Field, exp.Grid(), cfg.Stencil.K)
	out, runErr := exp.Run(ctx)
	if out == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Printf("stopped early: %v\n", runErr)
	}

	if noSave {
		s := out.Result.Summary
		fmt.Printf("accepted %d, %s, elapsed %v\n", s.Accepted, s.Termination, s.Elapsed)
		if out.Report != nil {
			fmt.Printf("errmax %.4e  erms %.4e\n", out.Report.ErrMax, out.Report.ERMS)
		}
		return nil
	}

	meta, err := saveOutcome(out)
	if err != nil {
		return err
	}
	fmt.Println(viz.Summary(meta))
	fmt.Printf("run id: %s\n", meta.ID)
	return nil
}

// saveOutcome stores a run with its seed curve and indexes it in the catalog.
func saveOutcome(out *experiment.Outcome) (*storage.RunMetadata, error) {
	st := storage.New(dataDir)
	meta, err := st.Save(out.Config, out.Result, out.Report)
	if err != nil {
		return nil, err
	}
	if out.Curve != nil {
		if err := st.SaveCurve(meta.ID, out.Curve); err != nil {
			return nil, err
		}
	}

	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	if err := cat.Record(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	cfgs := experiment.Refine(base, factors...)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s over %d resolutions...\n", base.Field, len(cfgs))
	outs, err := experiment.Sweep(ctx, experiment.NewRegistry(), cfgs, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tK\tACCEPTED\tTERMINATION\tERRMAX\tERMS\tORDER\tTIME\tRUN")
	for i, out := range outs {
		s := out.Result.Summary
		errmax, erms, order := "-", "-", "-"
		if out.Report != nil && out.Report.Count > 0 {
			errmax = fmt.Sprintf("%.4e", out.Report.ErrMax)
			erms = fmt.Sprintf("%.4e", out.Report.ERMS)
			if i > 0 && outs[i-1].Report != nil && outs[i-1].Report.Count > 0 {
				prev := outs[i-1]
				p := analysis.ConvergenceOrder(prev.Report.ERMS, spacing(prev), out.Report.ERMS, spacing(out))
				order = fmt.Sprintf("%.2f", p)
			}
		}
		id := "-"
		if !noSave {
			meta, err := saveOutcome(out)
			if err != nil {
				return err
			}
			id = meta.ID
		}
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%s\t%s\t%s\t%s\t%v\t%s\n",
			out.Config.Grid.NX, out.Config.Grid.NY, out.Config.Stencil.K,
			s.Accepted, s.Termination, errmax, erms, order, s.Elapsed.Round(time.Millisecond), id)
	}
	return w.Flush()
}

// spacing is the x grid step of a solve.
func spacing(out *experiment.Outcome) float64 {
	g := out.Config.Grid
	return (g.XMax - g.XMin) / float64(g.NX-1)
}

func listRuns(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.Query(fieldFilter, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tTIME\tGRID\tK\tACCEPTED\tTERMINATION\tERRMAX")
	for _, run := range runs {
		errmax := "-"
		if run.ErrMax != nil {
			errmax = fmt.Sprintf("%.3e", *run.ErrMax)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Field,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.NX, run.NY,
			run.K,
			run.Accepted,
			run.Termination,
			errmax,
		)
	}
	return w.Flush()
}

func openCatalog() (*storage.Catalog, error) {
	if err := storage.New(dataDir).Init(); err != nil {
		return nil, err
	}
	return storage.OpenCatalog(filepath.Join(dataDir, catalogFile))
}

// loadRun reads the metadata and values of a stored run and rebuilds its
// grid.
func loadRun(id string) (*storage.RunMetadata, *mesh.Grid, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, nil, err
	}
	g := meta.Config.Grid
	grid, err := mesh.New(g.NX, g.NY, g.XMin, g.XMax, g.YMin, g.YMax)
	if err != nil {
		return nil, nil, nil, err
	}
	values, err := st.LoadValues(id)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, grid, values, nil
}

// exactFor returns the exact quasi-potential of the run's field, nil if it
// has none.
func exactFor(meta *storage.RunMetadata) func(geom.Vec) float64 {
	f, err := experiment.NewRegistry().GetField(meta.Field, meta.Config.Params)
	if err != nil {
		return nil
	}
	if ex, ok := f.(dynamo.Exact); ok {
		return ex.Potential
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, grid, values, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.Summary(meta))
	if !drawSets {
		return nil
	}

	top := render.Reached(values)
	ls := make([]float64, max(levels, 1))
	for i := range ls {
		ls[i] = top * float64(i+1) / float64(len(ls)+1)
	}
	canvas := viz.LevelSets(grid, values, ls, width, height)

	curve, err := storage.New(dataDir).LoadCurve(args[0])
	if err != nil {
		return err
	}
	if curve != nil {
		canvas.Polygon(curve)
	}
	fmt.Print(canvas.String())
	return nil
}

func sliceRun(cmd *cobra.Command, args []string) error {
	meta, grid, values, err := loadRun(args[0])
	if err != nil {
		return err
	}

	axis, index := viz.Row, row
	if col >= 0 {
		axis, index = viz.Column, col
	} else if index < 0 {
		index = grid.NY / 2
	}
	graph, err := viz.SlicePlot(grid, values, exactFor(meta), axis, index, width, height)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	meta, grid, values, err := loadRun(args[0])
	if err != nil {
		return err
	}
	curve, err := storage.New(dataDir).LoadCurve(args[0])
	if err != nil {
		return err
	}

	o := render.DefaultOptions()
	o.Levels = levels
	o.Max = clip
	o.Title = title
	if o.Title == "" {
		o.Title = fmt.Sprintf("%s  %dx%d  K=%d", meta.Field, grid.NX, grid.NY, meta.Config.Stencil.K)
	}

	if errField || refField {
		exact := exactFor(meta)
		if exact == nil {
			return fmt.Errorf("%s has no exact quasi-potential", meta.Field)
		}
		if errField {
			values = unreachedAsInfinity(analysis.Errors(grid, values, exact))
			o.Title += "  |U - U_exact|"
		} else {
			values = analysis.Sample(grid, exact)
			o.Title += "  exact"
		}
	}

	path := outPath
	if path == "" {
		path = meta.ID + ".png"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = render.PNG(path, grid, values, curve, o)
	case ".html", ".htm":
		err = writeFile(path, func(f *os.File) error {
			return render.HTML(f, grid, values, curve, o)
		})
	default:
		return fmt.Errorf("unknown output format %q (want .png or .html)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// unreachedAsInfinity maps NaN entries back to the unreached sentinel.
func unreachedAsInfinity(values []float64) []float64 {
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = olim.Infinity
		}
	}
	return values
}

func viewRun(cmd *cobra.Command, args []string) error {
	_, grid, values, err := loadRun(args[0])
	if err != nil {
		return err
	}
	kinds, err := storage.New(dataDir).LoadKinds(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewViewer(args[0], grid, values, kinds), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, grid, values, err := loadRun(args[0])
	if err != nil {
		return err
	}
	kinds, err := storage.New(dataDir).LoadKinds(args[0])
	if err != nil {
		return err
	}

	write := func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write([]string{"i", "j", "x", "y", "u", "kind"}); err != nil {
			return err
		}
		for idx, u := range values {
			i, j := grid.Cell(idx)
			p := grid.Point(idx)
			val := ""
			if u < olim.Infinity-1 {
				val = strconv.FormatFloat(u, 'g', 12, 64)
			}
			rec := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				strconv.FormatFloat(p.X, 'g', 12, 64),
				strconv.FormatFloat(p.Y, 'g', 12, 64),
				val,
				kinds[idx].String(),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	if outPath == "" {
		return write(os.Stdout)
	}
	if err := writeFile(outPath, write); err != nil {
		return err
	}
	fmt.Printf("exported %d points to %s\n", len(values), outPath)
	return nil
}

func removeRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, id := range args {
		if _, err := st.Load(id); err != nil {
			if errors.Is(err, storage.ErrRunNotFound) {
				fmt.Printf("no run %s\n", id)
				continue
			}
			return err
		}
		if err := os.RemoveAll(st.Dir(id)); err != nil {
			return err
		}
		if err := cat.Delete(id); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", id)
	}
	return nil
}

func writeCurve(cmd *cobra.Command, args []string) error {
	var c seed.Curve
	if circlePoints > 0 {
		c = seed.Circle(circlePoints, circleRadius)
	} else {
		if len(args) == 0 {
			return errors.New("need a field to trace, or --circle")
		}
		p, err := parseParams(paramPairs)
		if err != nil {
			return err
		}
		f, err := experiment.NewRegistry().GetField(args[0], p)
		if err != nil {
			return err
		}
		c, err = seed.TraceCycle(f, geom.Vec{X: seedX, Y: seedY}, seed.DefaultTraceOptions())
		if err != nil {
			return err
		}
	}

	if outPath == "" {
		return seed.WriteCurve(os.Stdout, c)
	}
	if err := seed.SaveCurve(outPath, c); err != nil {
		return err
	}
	fmt.Printf("wrote %d points to %s\n", len(c), outPath)
	return nil
}

func listFields(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tATTRACTOR\tEXACT\tPARAMS\tPRESETS")
	for _, name := range registry.ListFields() {
		f, err := registry.GetField(name, nil)
		if err != nil {
			return err
		}
		attractor := "cycle"
		if pa, ok := f.(dynamo.PointAttractor); ok {
			a := pa.Attractor()
			attractor = fmt.Sprintf("(%.4g, %.4g)", a.X, a.Y)
		}
		_, exact := f.(dynamo.Exact)
		presets := config.ListPresets(name)
		slices.Sort(presets)
		ps := "-"
		if c, ok := f.(dynamo.Configurable); ok && len(c.GetParams()) > 0 {
			ps = formatParams(c.GetParams())
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", name, attractor, exact, ps,
			strings.Join(presets, ","))
	}
	return w.Flush()
}

func formatParams(p map[string]float64) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, " ")
}

func writeFile(path string, write func(*os.File) error) error {
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
