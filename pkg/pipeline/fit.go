package pipeline

import (
	"fmt"

	"github.com/kochwerk/kochwerk/pkg/figure"
	"github.com/kochwerk/kochwerk/pkg/scene"
)

// Fit frames a figure into canvas coordinates.
//
// Render preferences carried in the options are stamped onto the scene so
// that serialized scenes reproduce their look when rendered later. Figure
// metadata supplies the values for fields the options leave unset.
func Fit(f figure.Figure, opts Options) (scene.Scene, error) {
	if err := opts.ValidateForFit(); err != nil {
		return scene.Scene{}, err
	}

	s, err := scene.Fit(f, scene.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Margin: opts.Margin,
	})
	if err != nil {
		return scene.Scene{}, fmt.Errorf("fit level %d: %w", f.Level, err)
	}

	if opts.Style != "" {
		s.Style = opts.Style
	}
	if opts.Seed != 0 {
		s.Seed = opts.Seed
	}
	if opts.Title != "" {
		s.Title = opts.Title
	}

	return s, nil
}
