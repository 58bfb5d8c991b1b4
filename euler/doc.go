// Package euler provides the gamma-law (ideal polytropic gas) state
// model for the compressible Euler equations: pure, side-effect-free
// evaluators mapping a conserved state vector to density, momentum,
// internal energy, pressure, specific entropy and fluxes.
//
// 🚀 What is the state model?
//
//	A conserved state U is a flat vector of dim+2 scalars,
//
//	    U = (ρ, m_1, …, m_dim, E),
//
//	where ρ is the density, m the momentum and E the total energy.
//	The model closes the system with the gamma-law equation of state
//
//	    p = (γ − 1) · (E − |m|²/(2ρ)).
//
// Evaluators (all pure, allocation-free unless noted):
//
//   - Density, Momentum, TotalEnergy      — component accessors
//   - InternalEnergy                      — ρe = E − |m|²/(2ρ)
//   - Pressure, SpeedOfSound              — gamma-law closure
//   - SpecificEntropy                     — s(U) = ρe · ρ^(−γ)
//   - MathEntropy                         — Harten-type entropy
//     η(U) = (ρ²e)^(1/(γ+1))
//   - SpecificEntropyDot, MathEntropyDot  — directional derivatives
//     d/dt s(U+tP)|_{t=0} consumed by the limiter's Newton search
//   - FluxDot                             — f(U)·c contracted against a
//     direction vector, the form the graph scheme needs
//   - Admissible                          — ρ > 0 and ρe > 0
//
// Construction:
//
//	model, err := euler.NewModel(1, euler.WithGamma(1.4))
//	if err != nil { … } // ErrBadDimension, ErrBadGamma
//
// Complexity: every evaluator is O(dim) time, O(1) memory.
//
// The model satisfies the limiter.StateModel capability; the limiter
// package never sees the equation of state beyond that interface.
package euler
