package xform

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/kochwerk/kochwerk/pkg/curve"
)

// ErrNearPole is returned by [Map.Transform] when a vertex lies within
// [PoleGuard] of a pole of the map. Mapping such a vertex would produce
// coordinates large enough to break every downstream consumer.
var ErrNearPole = errors.New("vertex too close to a pole of the map")

// PoleGuard is the exclusion radius around map poles. Vertices closer than
// this to a pole are rejected rather than mapped.
const PoleGuard = 1e-9

// Func is a pointwise map of the complex plane. Implementations return
// [ErrNearPole] for inputs inside their pole guard and must otherwise be
// total on the plane.
type Func func(z complex128) (complex128, error)

// Map is a named deformation of the complex plane.
type Map struct {
	Name        string // Registry name used by CLI and API
	Description string // One-line human description
	F           Func   // The pointwise map
}

// Transform applies the map to every vertex of a polyline and rebuilds the
// polyline from the images. Closed inputs stay closed because identical
// endpoints map to identical images.
//
// Returns [ErrNearPole] (wrapped with the offending vertex index) when a
// vertex falls inside the map's pole guard.
func (m Map) Transform(p curve.Polyline) (curve.Polyline, error) {
	zs := p.Complexes()
	out := make([]complex128, len(zs))
	for i, z := range zs {
		w, err := m.F(z)
		if err != nil {
			return curve.Polyline{}, fmt.Errorf("map %s at vertex %d: %w", m.Name, i, err)
		}
		out[i] = w
	}
	return curve.FromComplexes(out)
}

// Registered maps, in the order they are presented to users.
var (
	// Identity leaves every vertex unchanged.
	Identity = Map{
		Name:        "identity",
		Description: "leave the curve unchanged",
		F: func(z complex128) (complex128, error) {
			return z, nil
		},
	}

	// Exp maps each vertex through the complex exponential.
	Exp = Map{
		Name:        "exp",
		Description: "complex exponential e^z",
		F: func(z complex128) (complex128, error) {
			return cmplx.Exp(z), nil
		},
	}

	// Sin maps each vertex through the complex sine.
	Sin = Map{
		Name:        "sin",
		Description: "complex sine sin(z)",
		F: func(z complex128) (complex128, error) {
			return cmplx.Sin(z), nil
		},
	}

	// Reciprocal maps each vertex to its inverse, turning the snowflake
	// inside out. The origin is a pole.
	Reciprocal = Map{
		Name:        "reciprocal",
		Description: "inversion 1/z (pole at the origin)",
		F: func(z complex128) (complex128, error) {
			if cmplx.Abs(z) < PoleGuard {
				return 0, ErrNearPole
			}
			return 1 / z, nil
		},
	}

	// Bessel maps each vertex through the Bessel function J0.
	Bessel = Map{
		Name:        "bessel",
		Description: "Bessel function J0(z)",
		F: func(z complex128) (complex128, error) {
			return besselJ0(z), nil
		},
	}
)

// All lists the registered maps in presentation order.
var All = []Map{Identity, Exp, Sin, Reciprocal, Bessel}

// Find returns the registered map with the given name.
func Find(name string) (Map, bool) {
	for _, m := range All {
		if m.Name == name {
			return m, true
		}
	}
	return Map{}, false
}

// Names returns the registry names in presentation order.
func Names() []string {
	names := make([]string, len(All))
	for i, m := range All {
		names[i] = m.Name
	}
	return names
}

// besselJ0 evaluates the Bessel function of the first kind of order zero
// through its power series Σ (-1)^k (z²/4)^k / (k!)². Terms shrink by a
// factor of roughly |z|²/(4k²) each step, so the series converges in a
// handful of terms for the |z| ≲ 1 region curve vertices occupy.
func besselJ0(z complex128) complex128 {
	zz := z * z / 4
	term := complex(1, 0)
	sum := term
	for k := 1; k <= 40; k++ {
		term *= -zz / complex(float64(k*k), 0)
		sum += term
		if cmplx.Abs(term) < 1e-16 {
			break
		}
	}
	return sum
}
