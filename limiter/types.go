// Package limiter defines the configuration surface of the convex
// limiting core: the runtime-selected variant, the functional options,
// the bounds value and the state-model capability it consumes.
package limiter

import (
	"errors"
	"math"

	"github.com/ymelnyk/idpeuler/euler"
)

// Sentinel errors returned by the limiter package.
var (
	// ErrNilModel indicates that New was called without a state model.
	ErrNilModel = errors.New("limiter: state model is nil")

	// ErrUnknownVariant indicates an unrecognized limiter variant name.
	ErrUnknownVariant = errors.New("limiter: unknown variant")

	// ErrBadRelaxationOrder indicates a relaxation order below 1, for
	// which the relaxation radius would not shrink under refinement.
	ErrBadRelaxationOrder = errors.New("limiter: relaxation order must be at least 1")

	// ErrBadNewtonIter indicates a Newton iteration cap below 1.
	ErrBadNewtonIter = errors.New("limiter: newton iteration cap must be at least 1")

	// ErrInconsistentBounds indicates ρ_min > ρ_max or a non-finite
	// entropy bound. This is a programming-contract violation of the
	// accumulate/relax sequence, surfaced by Bounds.Validate in tests;
	// production paths clamp to the low-order fallback instead.
	ErrInconsistentBounds = errors.New("limiter: inconsistent bounds")
)

// epsilon is the machine epsilon of the working scalar type (float64).
// All bound comparisons are slackened by multiples of it so rounding
// never rejects an update that is admissible in exact arithmetic.
const epsilon = 0x1p-52

// Variant selects which local minimum principles the limiter enforces.
// The variant is fixed per Limiter instance but chosen at runtime, so
// one binary can switch modes without recompilation.
type Variant int

const (
	// VariantNone disables limiting: bounds stay inert and Limit
	// returns t_max unconditionally.
	VariantNone Variant = iota

	// VariantDensity enforces ρ_min ≤ ρ(U+tP) ≤ ρ_max only. Density is
	// affine in t, so this variant never iterates.
	VariantDensity

	// VariantSpecificEntropy additionally enforces the specific entropy
	// minimum principle s(U+tP) ≥ s_min via the safeguarded root search.
	VariantSpecificEntropy

	// VariantEntropyInequality enforces the local discrete entropy
	// inequality, realised as a Harten-entropy floor η(U+tP) ≥ η_min,
	// with the same root-search machinery.
	VariantEntropyInequality
)

// variantNames maps configuration strings to variants; the inverse of
// Variant.String.
var variantNames = map[string]Variant{
	"none":               VariantNone,
	"density":            VariantDensity,
	"specific-entropy":   VariantSpecificEntropy,
	"entropy-inequality": VariantEntropyInequality,
}

// ParseVariant resolves a configuration string ("none", "density",
// "specific-entropy", "entropy-inequality") to a Variant. Unknown names
// yield ErrUnknownVariant; this is a setup-time (fatal) condition, never
// a per-step one.
func ParseVariant(name string) (Variant, error) {
	v, ok := variantNames[name]
	if !ok {
		return VariantNone, ErrUnknownVariant
	}

	return v, nil
}

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantDensity:
		return "density"
	case VariantSpecificEntropy:
		return "specific-entropy"
	case VariantEntropyInequality:
		return "entropy-inequality"
	default:
		return "unknown"
	}
}

// entropic reports whether the variant carries an entropy bound.
func (v Variant) entropic() bool {
	return v == VariantSpecificEntropy || v == VariantEntropyInequality
}

// StateModel is the capability the limiter consumes from the state/flux
// model: pure, side-effect-free evaluators. euler.Model satisfies it.
//
// SpecificEntropyDot and MathEntropyDot return the directional
// derivative ∇s(U)·P resp. ∇η(U)·P at the evaluation point U, the
// quantity the Newton step divides by.
type StateModel interface {
	Density(U euler.State) float64
	SpecificEntropy(U euler.State) float64
	SpecificEntropyDot(U, P euler.State) float64
	MathEntropy(U euler.State) float64
	MathEntropyDot(U, P euler.State) float64
}

// Bounds is the per-node admissibility window: density interval plus
// the entropy floor. SMin carries the specific entropy floor in
// VariantSpecificEntropy and the Harten-entropy floor in
// VariantEntropyInequality; it is unused otherwise.
//
// A Bounds value is owned by exactly one node evaluation: reset,
// accumulated over the incident edges, optionally relaxed, consumed by
// Limit, discarded. It never outlives a time-step sub-stage.
type Bounds struct {
	RhoMin float64
	RhoMax float64
	SMin   float64
}

// Validate checks the structural invariant ρ_min ≤ ρ_max and that the
// entropy floor is not NaN. A violation means the accumulate/relax
// sequence was driven incorrectly; Limit itself clamps silently and
// never produces an inadmissible state, so Validate is for tests and
// debug builds.
func (b Bounds) Validate() error {
	if b.RhoMin > b.RhoMax || math.IsNaN(b.SMin) {
		return ErrInconsistentBounds
	}

	return nil
}

// Options configures a Limiter.
//
//   - Variant: which minimum principles to enforce.
//     Default VariantSpecificEntropy.
//   - RelaxBounds: whether ApplyRelaxation widens the raw bounds.
//     Default true.
//   - RelaxationOrder: order p of the mesh-dependent relaxation radius
//     r_i = 2·(hd_i^¼)^p. Must be ≥ 1. Default 3.
//   - MaxNewtonIter: iteration cap of the entropy root search. Must be
//     ≥ 1. Default 2; the scheme accepts a slightly conservative
//     coefficient rather than paying for full convergence.
type Options struct {
	Variant         Variant
	RelaxBounds     bool
	RelaxationOrder int
	MaxNewtonIter   int
}

// Option is a functional option for configuring a Limiter.
type Option func(*Options)

// WithVariant selects the limiting variant.
func WithVariant(v Variant) Option {
	return func(o *Options) {
		o.Variant = v
	}
}

// WithoutRelaxation disables the bound relaxation stage. The scheme
// becomes noticeably more diffusive at smooth extrema but remains
// admissible; mainly useful for debugging and convergence studies.
func WithoutRelaxation() Option {
	return func(o *Options) {
		o.RelaxBounds = false
	}
}

// WithRelaxationOrder sets the relaxation order p. Values below 1 are
// rejected by New with ErrBadRelaxationOrder.
func WithRelaxationOrder(order int) Option {
	return func(o *Options) {
		o.RelaxationOrder = order
	}
}

// WithNewtonMaxIter sets the entropy root-search iteration cap. Values
// below 1 are rejected by New with ErrBadNewtonIter.
func WithNewtonMaxIter(n int) Option {
	return func(o *Options) {
		o.MaxNewtonIter = n
	}
}

// DefaultOptions returns the default limiter configuration:
// specific-entropy variant, relaxation enabled with order 3, Newton
// iteration cap 2.
func DefaultOptions() Options {
	return Options{
		Variant:         VariantSpecificEntropy,
		RelaxBounds:     true,
		RelaxationOrder: 3,
		MaxNewtonIter:   2,
	}
}
