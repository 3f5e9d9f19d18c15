package config

func square(n int, lo, hi float64) GridConfig {
	return GridConfig{NX: n, NY: n, XMin: lo, XMax: hi, YMin: lo, YMax: hi}
}

var Presets = map[string]map[string]*Config{
	"linear": {
		"default": {
			Field: "linear", Params: map[string]float64{"a": 10},
			Grid:    square(DefaultN, -1, 1),
			Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
		},
		"coarse": {
			Field: "linear", Params: map[string]float64{"a": 10},
			Grid:    square(65, -1, 1),
			Stencil: StencilConfig{K: 8, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
		},
		"fine": {
			Field: "linear", Params: map[string]float64{"a": 10},
			Grid:    square(129, -1, 1),
			Stencil: StencilConfig{K: 12, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
		},
	},
	"maierstein": {
		"default": {
			Field: "maierstein", Params: map[string]float64{"beta": 10, "mu": 1},
			Grid:    square(DefaultN, -2, 2),
			Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
		},
	},
	"fitzhugh": {
		"default": {
			Field: "fitzhugh", Params: map[string]float64{"a": 1.2},
			Grid:    square(DefaultN, -2.5, 2.5),
			Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
		},
	},
	"brusselator": {
		"default": {
			Field: "brusselator", Params: map[string]float64{"a": 1, "b": 3},
			Grid:    square(DefaultN, 0, 7),
			Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed: SeedConfig{
				Kind:  SeedCycle,
				Point: &PointConfig{X: 2, Y: 2},
				Init:  InitCurveDistance,
			},
		},
	},
	"cycle": {
		"default": {
			Field:   "cycle",
			Grid:    square(DefaultN, -2, 2),
			Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
			Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
			Seed: SeedConfig{
				Kind:        SeedCurve,
				CurvePoints: 4000,
				CurveRadius: 1,
				Init:        InitCurveDistance,
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(field, preset string) *Config {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	cfg, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(field string) []string {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	return names
}
