// Package limiter implements the convex limiting core of the
// invariant-domain-preserving scheme: per-node admissibility bounds
// accumulated from low-order bar states, a mesh-size-dependent bound
// relaxation, and the scalar search for the maximal admissible blending
// coefficient.
//
// 🚀 What is convex limiting?
//
//	The low-order graph-viscosity update is provably admissible but
//	diffusive. The high-order update is accurate but may leave the
//	invariant domain (positive density, entropy minimum principle).
//	Convex limiting blends the two: for each node i and antidiffusive
//	correction P the limiter returns the largest t ∈ [t_min, t_max]
//	such that
//
//	    U + t·P
//
//	stays inside the node-local bounds harvested from the bar states.
//	t = t_min recovers the safe low-order update, t = t_max the full
//	high-order one.
//
// Algorithm outline (one node, one sub-step):
//
//  1. Reset() — clear the accumulator: ρ_min = +∞, ρ_max = 0, and in
//     the entropy variants s_min = +∞ with the interpolated-entropy
//     tracker zeroed.
//  2. Accumulate(U_i, U_j, Ū_ij, s_j, diag) — once per incident edge,
//     including exactly one self edge: widen [ρ_min, ρ_max] to the bar
//     state density; in the entropy variants lower s_min to the
//     neighbor entropy and (off-diagonal only) raise the interpolated
//     maximum with the entropy of ½(U_i+U_j).
//  3. ResetVariations / AccumulateVariations — a decoupled second sweep
//     averaging a smoothness indicator, β_ij-weighted; it feeds only
//     the relaxation.
//  4. ApplyRelaxation(hd_i) — widen each bound by the tighter of a
//     multiplicative margin r_i = 2·(hd_i^¼)^order and an additive,
//     variation-driven margin. Widening shrinks under mesh refinement,
//     preserving formal accuracy without admitting unphysical states.
//  5. Limit(bounds, U, P, t_min, t_max) — the scalar search. Density is
//     affine in t, so its bound is a closed-form interval intersection.
//     The entropy bound is nonlinear; it is solved by a safeguarded
//     Newton iteration with bisection fallback (see below). Without an
//     entropy floor, internal-energy positivity is enforced separately:
//     ρ²e is quadratic in t, and the cap is its smallest positive root.
//
// Root search (entropy constraint):
//
//	The residual ψ(t) = s(U+tP) − s_min is known non-negative at the
//	left bracket end (the low-order fallback is admissible) and checked
//	at the right end first, so the bracket always contains the
//	crossing. Each iteration takes a Newton step from the inadmissible
//	right end and falls back to bisection whenever the step leaves the
//	open bracket or the derivative degenerates; whichever end the trial
//	point lands on, the bracket shrinks monotonically. After the fixed
//	iteration budget (default 2) the known-admissible left end is
//	returned. A slightly conservative t is acceptable; the scheme
//	needs cheap accuracy recovery, not the exact root.
//
// Variants (runtime-selected):
//
//   - VariantNone              — limiting disabled, Limit returns t_max
//   - VariantDensity           — density bounds + internal-energy
//     positivity, both in closed form
//   - VariantSpecificEntropy   — density bounds + specific entropy floor
//   - VariantEntropyInequality — density bounds + Harten-entropy floor
//     realising the local discrete entropy inequality
//
// Errors (sentinel, all detected at construction):
//
//   - ErrNilModel           — no state model supplied
//   - ErrUnknownVariant     — ParseVariant received an unknown name
//   - ErrBadRelaxationOrder — relaxation order < 1
//   - ErrBadNewtonIter      — Newton iteration cap < 1
//
// Concurrency:
//
//	A Limiter is the per-node accumulator for exactly one evaluation at
//	a time and is not safe for concurrent use; create one per worker.
//	Limit never mutates the bounds and holds no cross-node state, so
//	results are independent of node processing order.
//
// Complexity: accumulation is O(node degree), the root search is O(1)
// (fixed iteration count); nothing allocates inside a time step.
package limiter
