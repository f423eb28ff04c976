package pipeline

import (
	"fmt"

	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/koch"
	"github.com/kochwerk/kochwerk/pkg/xform"
)

// Generate constructs the boundary figure for the requested level and map.
func Generate(opts Options) (figure.Figure, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return figure.Figure{}, err
	}

	p, err := koch.Snowflake(opts.Level)
	if err != nil {
		return figure.Figure{}, fmt.Errorf("generate level %d: %w", opts.Level, err)
	}

	m, ok := xform.Find(opts.Map)
	if !ok {
		return figure.Figure{}, errors.New(errors.ErrCodeInvalidMap, "unknown map: %q", opts.Map)
	}

	deformed, err := m.Transform(p)
	if err != nil {
		return figure.Figure{}, fmt.Errorf("apply map %s: %w", opts.Map, err)
	}

	return figure.FromPolyline(opts.Level, opts.Map, deformed), nil
}
