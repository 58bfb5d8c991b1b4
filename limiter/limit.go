package limiter

import (
	"math"

	"github.com/ymelnyk/idpeuler/euler"
)

// Limit computes the maximal t in [tMin, tMax] such that U + t·P obeys
// every minimum principle selected by the variant, for the given
// bounds. U is the node's admissible base state (typically the
// low-order update), P the proposed antidiffusive correction.
//
// The bounds are never mutated; for fixed scratch sizing the call is
// allocation-free, and there is no cross-node state, so results do not
// depend on node processing order.
//
//   - VariantNone: returns tMax.
//   - Density bound: ρ is affine in t, so the bound reduces to two
//     linear inequalities intersected with [tMin, tMax]. If no t > tMin
//     satisfies them the low-order fallback tMin is returned, never a
//     coefficient that violates density positivity.
//   - Internal energy (VariantDensity only): ρ²e is quadratic in t and
//     positive at t = 0, so positivity of the internal energy is
//     enforced by capping t at the smallest positive root, in closed
//     form. The entropy variants imply it through their floor.
//   - Entropy bound: the largest t with s(U+tP) ≥ s_min is found by a
//     safeguarded Newton iteration on the residual, bisecting whenever
//     the Newton step leaves the known bracket (see the package
//     documentation for the bracketing strategy).
//
// All comparisons carry an ε-scaled slack so rounding never rejects an
// update that is admissible in exact arithmetic (in particular t = 1
// survives when the unlimited update is already admissible).
func (l *Limiter) Limit(b Bounds, U, P euler.State, tMin, tMax float64) float64 {
	if l.opts.Variant == VariantNone {
		return tMax
	}

	t := l.limitDensity(b, U, P, tMin, tMax)

	if l.opts.Variant.entropic() {
		t = l.limitEntropy(b, U, P, tMin, t)
	} else {
		// Without an entropy floor nothing keeps ρe positive; the
		// density variant must enforce it directly to stay inside the
		// invariant domain.
		t = l.limitInternalEnergy(U, P, tMin, t)
	}

	return t
}

// energySlack is the relative margin shaved off the energy-positivity
// root so the accepted state keeps strictly positive internal energy
// after rounding.
const energySlack = 0x1p-26

// limitDensity intersects [tMin, tMax] with the two affine density
// inequalities ρ_min ≤ ρ(U) + t·ρ(P) ≤ ρ_max.
func (l *Limiter) limitDensity(b Bounds, U, P euler.State, tMin, tMax float64) float64 {
	rhoU := l.model.Density(U)
	rhoP := l.model.Density(P)

	// Corrections with a density component below this threshold cannot
	// move ρ across either bound within t ≤ 1.
	small := epsilon * math.Max(b.RhoMax, math.Abs(rhoU))
	slack := epsilon * b.RhoMax

	t := tMax
	if rhoP > small {
		t = math.Min(t, (b.RhoMax-rhoU+slack)/rhoP)
	} else if rhoP < -small {
		t = math.Min(t, (b.RhoMin-rhoU-slack)/rhoP)
	}

	// An empty intersection (base state pressed against a bound by
	// rounding) falls back to the least diffusive admissible value.
	if t < tMin {
		return tMin
	}
	if t > tMax {
		return tMax
	}

	return t
}

// limitInternalEnergy caps t so the internal energy of U + tP stays
// strictly positive. ρe itself is not polynomial in t, but
//
//	q(t) = ρ(t)·E(t) − ½|m(t)|² = ρ²e (U + tP)
//
// is a quadratic with q(0) > 0 on an admissible base state, and ρ > 0
// is already guaranteed by the density interval, so ρe > 0 exactly
// where q > 0. The cap is the smallest positive root of q, shaved by
// energySlack, computed with the numerically stable root form
// 2c/(−b + √(b²−4ac)) which covers the degenerate linear case too.
func (l *Limiter) limitInternalEnergy(U, P euler.State, tMin, tMax float64) float64 {
	n := len(U)
	a := P[0] * P[n-1]
	bq := U[0]*P[n-1] + P[0]*U[n-1]
	c := U[0] * U[n-1]
	for k := 1; k < n-1; k++ {
		a -= 0.5 * P[k] * P[k]
		bq -= U[k] * P[k]
		c -= 0.5 * U[k] * U[k]
	}

	disc := bq*bq - 4*a*c
	if disc < 0 {
		return tMax // q never crosses zero
	}
	denom := -bq + math.Sqrt(disc)
	if denom <= 0 {
		return tMax // no positive root: q stays above zero for t ≥ 0
	}

	t := (1 - energySlack) * 2 * c / denom
	if t >= tMax {
		return tMax
	}
	if t < tMin {
		return tMin
	}

	return t
}

// limitEntropy shrinks t until the entropy residual
// ψ(t) = entropy(U+tP) − s_min is non-negative, via the safeguarded
// Newton/bisection hybrid. tl must be admissible on entry (the
// low-order fallback); tr is the density-admissible upper end.
func (l *Limiter) limitEntropy(b Bounds, U, P euler.State, tl, tr float64) float64 {
	l.ensureScratch(len(U))

	tol := epsilon * (math.Abs(b.SMin) + 1.)

	// The upper end is usually admissible already (smooth regions);
	// return t_max-equivalent without iterating.
	if l.residual(b, U, P, tr) >= -tol {
		return tr
	}

	// Contract violation guard: if even the low-order end fails the
	// bound the bracket contains no root. Clamp to the safe fallback
	// rather than halting a long-running simulation.
	if l.residual(b, U, P, tl) < -tol {
		return tl
	}

	for it := 0; it < l.opts.MaxNewtonIter; it++ {
		// Newton step from the inadmissible right end.
		U.AddScaled(tr, P, l.trial)
		psiR := l.entropy(l.trial) - b.SMin
		if psiR >= -tol {
			return tr
		}
		dpsi := l.entropyDot(l.trial, P)

		tn := tr
		if dpsi != 0 {
			tn = tr - psiR/dpsi
		}
		// Safeguard: bisect whenever the step leaves the open bracket
		// or the derivative degenerated (tn NaN fails both tests).
		if !(tn > tl && tn < tr) {
			tn = 0.5 * (tl + tr)
		}

		if l.residual(b, U, P, tn) >= 0 {
			tl = tn
		} else {
			tr = tn
		}
	}

	// Bounded iteration budget exhausted: return the known-admissible
	// end. Slightly conservative, never inadmissible.
	return tl
}

// residual evaluates ψ(t) = entropy(U+tP) − s_min into the trial
// scratch.
func (l *Limiter) residual(b Bounds, U, P euler.State, t float64) float64 {
	U.AddScaled(t, P, l.trial)

	return l.entropy(l.trial) - b.SMin
}
