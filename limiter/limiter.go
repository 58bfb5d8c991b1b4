package limiter

import (
	"math"

	"github.com/ymelnyk/idpeuler/euler"
)

// variationWeight scales the β-weighted variation average that drives
// the additive density relaxation. The value 8 is empirical (it is
// halved by the two-sided average below).
const variationWeight = 8.0

// Limiter is the per-node bounds accumulator plus the scalar limit
// computation. One instance serves exactly one node evaluation at a
// time: Reset, Accumulate over every incident edge, ApplyRelaxation,
// then Limit against the harvested bounds.
//
// A Limiter is not safe for concurrent use; create one per worker. The
// scratch states make Accumulate and Limit allocation-free after the
// first call.
type Limiter struct {
	model StateModel
	opts  Options

	bounds Bounds

	variations               float64
	rhoRelaxationNumerator   float64
	rhoRelaxationDenominator float64
	sInterpMax               float64

	mean  euler.State // midpoint scratch for the interpolated entropy
	trial euler.State // U + t·P scratch for the root search
}

// New validates the configuration and returns a Limiter bound to the
// given state model.
//
// Preconditions and validation (in order):
//  1. model must be non-nil (ErrNilModel).
//  2. RelaxationOrder must be ≥ 1 (ErrBadRelaxationOrder).
//  3. MaxNewtonIter must be ≥ 1 (ErrBadNewtonIter).
func New(model StateModel, opts ...Option) (*Limiter, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if model == nil {
		return nil, ErrNilModel
	}
	if cfg.RelaxationOrder < 1 {
		return nil, ErrBadRelaxationOrder
	}
	if cfg.MaxNewtonIter < 1 {
		return nil, ErrBadNewtonIter
	}

	return &Limiter{model: model, opts: cfg}, nil
}

// Options returns the validated configuration.
func (l *Limiter) Options() Options { return l.opts }

// Bounds returns the current accumulated (and possibly relaxed) bounds.
func (l *Limiter) Bounds() Bounds { return l.bounds }

// Reset initializes the accumulator for a new node evaluation:
// ρ_min = +∞, ρ_max = 0, and in the entropy variants s_min = +∞ with a
// zeroed interpolated-entropy tracker. No-op for VariantNone (the
// bounds stay inert).
func (l *Limiter) Reset() {
	if l.opts.Variant == VariantNone {
		return
	}

	l.bounds.RhoMin = math.Inf(1)
	l.bounds.RhoMax = 0

	l.rhoRelaxationNumerator = 0
	l.rhoRelaxationDenominator = 0

	if l.opts.Variant.entropic() {
		l.bounds.SMin = math.Inf(1)
		l.sInterpMax = 0
	}
}

// Accumulate widens the bounds with one incident edge. It must be
// called once per edge of the node's stencil, including exactly one
// self edge (isDiagonal = true) carrying the node's own bar state.
//
//   - [ρ_min, ρ_max] is widened to include the bar-state density.
//   - In the entropy variants s_min is lowered to the neighbor entropy
//     entropyJ (specific entropy or Harten entropy, matching the
//     variant). On off-diagonal edges only, the interpolated maximum
//     tracker is raised with the entropy of the edge midpoint
//     ½(U_i+U_j). The tracker caps how far ApplyRelaxation may lower
//     the entropy floor.
func (l *Limiter) Accumulate(Ui, Uj, Ubar euler.State, entropyJ float64, isDiagonal bool) {
	if l.opts.Variant == VariantNone {
		return
	}

	rho := l.model.Density(Ubar)
	l.bounds.RhoMin = math.Min(l.bounds.RhoMin, rho)
	l.bounds.RhoMax = math.Max(l.bounds.RhoMax, rho)

	if !l.opts.Variant.entropic() {
		return
	}

	l.bounds.SMin = math.Min(l.bounds.SMin, entropyJ)

	if !isDiagonal {
		l.ensureScratch(len(Ui))
		Ui.Mean(Uj, l.mean)
		l.sInterpMax = math.Max(l.sInterpMax, l.entropy(l.mean))
	}
}

// ResetVariations starts the (decoupled) variation sweep with the
// node's own smoothness indicator. The sweep is separate from
// Accumulate because the indicator is produced by a second pass of the
// orchestrator.
func (l *Limiter) ResetVariations(variationsI float64) {
	l.variations = variationsI
}

// AccumulateVariations folds one neighbor's smoothness indicator into
// the β-weighted average that drives the additive density relaxation.
func (l *Limiter) AccumulateVariations(variationsJ, betaIJ float64) {
	l.rhoRelaxationNumerator += variationWeight * 0.5 * betaIJ * (l.variations + variationsJ)
	l.rhoRelaxationDenominator += betaIJ
}

// ApplyRelaxation widens the accumulated bounds by a mesh-size- and
// variation-dependent margin. hdI is the node's local length-scale
// measure. No-op when relaxation is disabled or for VariantNone.
//
// Each bound takes the tighter of two independent relaxations: a
// multiplicative one capped by the radius r_i = 2·(hd_i^¼)^order, and
// an additive one driven by the accumulated local variation. The
// ε-guarded denominator covers the zero-neighbor (isolated node) case.
//
// Postcondition: ρ_min ≤ ρ_max whenever it held before the call.
func (l *Limiter) ApplyRelaxation(hdI float64) {
	if !l.opts.RelaxBounds || l.opts.Variant == VariantNone {
		return
	}

	rI := 2. * fixedPower(math.Sqrt(math.Sqrt(hdI)), l.opts.RelaxationOrder)

	rhoRelaxation := math.Abs(l.rhoRelaxationNumerator) /
		(math.Abs(l.rhoRelaxationDenominator) + epsilon)

	l.bounds.RhoMin = math.Max((1.-rI)*l.bounds.RhoMin, l.bounds.RhoMin-rhoRelaxation)
	l.bounds.RhoMax = math.Min((1.+rI)*l.bounds.RhoMax, l.bounds.RhoMax+rhoRelaxation)

	if l.opts.Variant.entropic() {
		l.bounds.SMin = math.Max((1.-rI)*l.bounds.SMin, 2.*l.bounds.SMin-l.sInterpMax)
	}
}

// entropy evaluates the variant's entropy functional at U.
func (l *Limiter) entropy(U euler.State) float64 {
	if l.opts.Variant == VariantEntropyInequality {
		return l.model.MathEntropy(U)
	}

	return l.model.SpecificEntropy(U)
}

// entropyDot evaluates the directional derivative of the variant's
// entropy functional at U along P.
func (l *Limiter) entropyDot(U, P euler.State) float64 {
	if l.opts.Variant == VariantEntropyInequality {
		return l.model.MathEntropyDot(U, P)
	}

	return l.model.SpecificEntropyDot(U, P)
}

// ensureScratch sizes the scratch states for the problem dimension seen
// at the call site. Allocates at most once per Limiter lifetime.
func (l *Limiter) ensureScratch(n int) {
	if len(l.mean) != n {
		l.mean = make(euler.State, n)
		l.trial = make(euler.State, n)
	}
}

// fixedPower computes x^n for small positive integer n without the
// generality (and cost) of math.Pow.
func fixedPower(x float64, n int) float64 {
	p := 1.
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			p *= x
		}
		x *= x
	}

	return p
}
