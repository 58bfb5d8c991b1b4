// Package offline holds the precomputed, solution-independent graph
// data the IDP scheme consumes: CSR connectivity, lumped mass, the
// c_ij transport coefficients, the β_ij smoothness weights and the
// node length scales.
//
// 🚀 What is offline data?
//
//	For a continuous P1 finite-element discretisation the stencil of a
//	degree of freedom i is the set of j with overlapping shape-function
//	support. Everything the per-step kernels need about the mesh is a
//	handful of sparse matrices assembled once:
//
//	    m_i   = ∫ φ_i            (lumped mass)
//	    c_ij  = ∫ φ_i ∇φ_j       (transport direction & strength)
//	    β_ij  = ∫ ∇φ_i · ∇φ_j    (stiffness; variation weighting)
//
//	plus the node length scale hd_i = m_i^(1/dim) feeding the limiter's
//	bound relaxation.
//
// Storage layout:
//
//	Compressed sparse rows with the diagonal entry FIRST in every row;
//	the accumulation kernels rely on visiting the self edge exactly
//	once and first. Column indices, c_ij (flattened dim-vectors), β_ij
//	and the transpose permutation share the edge indexing, so an edge
//	index k obtained while sweeping row i addresses every per-edge
//	array, and Transpose(k) addresses the mirrored edge (j, i).
//
// Builders:
//
//   - NewLine1D(cells, length) — uniform P1 Lagrange elements on a
//     line, assembled from 2×2 element matrices (gonum mat.Dense) and
//     compressed. Row sums of c vanish on every row (partition of
//     unity) while the boundary columns carry the surface term, and
//     c_ij = −c_ji off the diagonal, exactly as the continuous
//     integration by parts dictates.
//
// Errors:
//
//   - ErrTooFewCells — a 1D mesh needs at least 2 cells
//   - ErrBadLength   — non-positive domain length
//
// All accessors are read-only after construction; a Data is safe for
// concurrent use by any number of node workers.
package offline
