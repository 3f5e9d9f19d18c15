package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/metrics"
	"github.com/san-kum/qpot/internal/physics"
)

type Registry struct {
	fields map[string]func() dynamo.Field
}

func NewRegistry() *Registry {
	r := &Registry{
		fields: make(map[string]func() dynamo.Field),
	}

	r.fields["linear"] = func() dynamo.Field { return physics.NewLinear() }
	r.fields["maierstein"] = func() dynamo.Field { return physics.NewMaierStein() }
	r.fields["fitzhugh"] = func() dynamo.Field { return physics.NewFitzHughNagumo() }
	r.fields["brusselator"] = func() dynamo.Field { return physics.NewBrusselator() }
	r.fields["cycle"] = func() dynamo.Field { return physics.NewCycle() }

	return r
}

// Register adds or replaces a field constructor.
func (r *Registry) Register(name string, fn func() dynamo.Field) {
	r.fields[name] = fn
}

// GetField builds the named field and applies params to it. Parameters are
// applied in name order.
func (r *Registry) GetField(name string, params map[string]float64) (dynamo.Field, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f := fn()
	if len(params) == 0 {
		return f, nil
	}

	c, ok := f.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("%w: %s takes no parameters", dynamo.ErrUnknownParam, name)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Registry) ListFields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return metrics.Default()
}
