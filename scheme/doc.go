// Package scheme is the limiting orchestrator: it drives one forward
// Euler sub-step of the invariant-domain-preserving graph scheme,
// wiring the offline graph data, the gamma-law state model and the
// convex limiter into the two-pass limited update.
//
// 🚀 One sub-step, phase by phase:
//
//	 1. per node   — variant entropy s_j and the β-weighted density
//	                 variation indicator
//	 2. per edge   — graph viscosity d_ij = λ_max(U_i, U_j, n_ij)·|c_ij|
//	                 with a two-sided (Davis-type) wave-speed estimate,
//	                 then symmetrised d_ij = d_ji = max of both sides
//	 3. reduction  — maximal CFL time step τ = cfl·min_i m_i/(2 Σ_j d_ij)
//	                 (when the caller did not fix τ)
//	 4. per node   — bar states
//	                   Ū_ij = ½(U_i+U_j) − (f(U_j)−f(U_i))·c_ij/(2 d_ij),
//	                 the provably admissible low-order update
//	                   U_i^L = U_i + τ/m_i Σ_j 2 d_ij (Ū_ij − U_i),
//	                 and the limiter sweep: reset, accumulate every
//	                 incident edge (self edge first), variation sweep,
//	                 relaxation — yielding the node bounds
//	 5. per edge   — candidate antidiffusive correction
//	                   P_ij = τ/m_i · d_ij (U_i − U_j)
//	                 and its admissible coefficient
//	                   t_ij = Limit(bounds_i, U_i^L, P_ij, 0, 1)
//	 6. barrier    — symmetrisation ℓ_ij = min(t_ij, t_ji); both
//	                 directions must exist before either edge's final
//	                 coefficient is fixed, so this is a separate phase
//	 7. per node   — apply U_i ← U_i^L + Σ_j ℓ_ij τ/m_i d_ij (U_i − U_j)
//
//	Because the limited flux is antisymmetric and ℓ_ij = ℓ_ji, the
//	mass-weighted totals Σ m_i U_i are conserved exactly.
//
// Concurrency:
//
//	Every per-node phase runs thread-parallel over contiguous node
//	shards (sync.WaitGroup barriers between phases); each worker owns
//	its Limiter instance and flux scratch, shares the offline data
//	read-only, and never touches another shard's output slots. Results
//	are bit-identical for any shard count.
//
// Boundary treatment: none; boundary nodes evolve freely under the
// surface terms the c_ij coefficients carry. Keep waves away from the
// boundary or embed the domain accordingly.
//
// Errors (construction): ErrNilModel, ErrNilData, ErrDimensionMismatch,
// ErrBadCFL, ErrBadParallelDegree. Per step: ErrWrongStateCount,
// ErrNonAdmissibleState (the incoming state must lie in the invariant
// domain; this is a caller bug, not a runtime condition the scheme can
// repair).
package scheme
