// Package euler defines the conserved state vector and the configuration
// surface of the gamma-law state model.
package euler

import "errors"

// Sentinel errors returned by the euler package.
var (
	// ErrBadDimension indicates a spatial dimension outside {1, 2, 3}.
	ErrBadDimension = errors.New("euler: dimension must be 1, 2 or 3")

	// ErrBadGamma indicates a ratio of specific heats γ ≤ 1, for which
	// the gamma-law closure is not hyperbolic.
	ErrBadGamma = errors.New("euler: gamma must be greater than 1")

	// ErrBadState indicates a state vector whose length does not match
	// the model's problem dimension (dim + 2).
	ErrBadState = errors.New("euler: state length does not match problem dimension")
)

// State is a conserved state vector: density, dim momentum components,
// and total energy, in that order. Its length is dim+2 ("problem
// dimension"). States are plain slices so hot loops can view sub-ranges
// of a flat solution array without copying.
type State []float64

// NewState allocates a zero conserved state for the given spatial
// dimension. It panics on an invalid dimension; use Model constructors
// for validated configuration paths.
func NewState(dim int) State {
	if dim < 1 || dim > 3 {
		panic(ErrBadDimension.Error())
	}

	return make(State, dim+2)
}

// Copy duplicates u into a freshly allocated State.
func (u State) Copy() State {
	v := make(State, len(u))
	copy(v, u)

	return v
}

// Add stores u + v into dst. All three must share a length; dst may
// alias u or v.
func (u State) Add(v, dst State) {
	for k := range u {
		dst[k] = u[k] + v[k]
	}
}

// AddScaled stores u + t·p into dst. All three must share a length;
// dst may alias u.
func (u State) AddScaled(t float64, p, dst State) {
	for k := range u {
		dst[k] = u[k] + t*p[k]
	}
}

// Scale stores t·u into dst; dst may alias u.
func (u State) Scale(t float64, dst State) {
	for k := range u {
		dst[k] = t * u[k]
	}
}

// Mean stores the arithmetic mean ½(u+v) into dst.
func (u State) Mean(v, dst State) {
	for k := range u {
		dst[k] = 0.5 * (u[k] + v[k])
	}
}

// Options configures a Model.
//
// Gamma – ratio of specific heats γ. Must be > 1. Default 1.4 (diatomic
// ideal gas), the value used throughout the test suites and the demo
// driver.
type Options struct {
	Gamma float64
}

// Option is a functional option for configuring a Model.
type Option func(*Options)

// WithGamma sets the ratio of specific heats. Values ≤ 1 are rejected
// by NewModel with ErrBadGamma.
func WithGamma(gamma float64) Option {
	return func(o *Options) {
		o.Gamma = gamma
	}
}

// DefaultOptions returns the default model configuration (γ = 1.4).
func DefaultOptions() Options {
	return Options{Gamma: 1.4}
}
