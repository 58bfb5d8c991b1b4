// Package idpeuler is an invariant-domain-preserving (IDP) solver kernel
// for the compressible Euler equations on unstructured meshes, built
// around a graph-viscosity low-order method and convex limiting.
//
// 🚀 What is idpeuler?
//
//	A small, allocation-conscious library that brings together:
//		• euler/   — gamma-law state model: density, momentum, pressure,
//		             specific entropy and fluxes as pure evaluators
//		• limiter/ — the convex limiting core: per-node admissibility
//		             bounds, mesh-dependent bound relaxation, and the
//		             scalar blending-coefficient search
//		• offline/ — precomputed graph data: CSR connectivity, lumped
//		             mass, c_ij / β_ij coefficients, node diameters
//		• scheme/  — the limiting orchestrator: one forward-Euler IDP
//		             sub-step with two-phase symmetrized limiting
//		• initial/ — initial-state catalog (uniform, contrast, shock
//		             front, ramp-up) with optional random perturbation
//
// ✨ Why choose idpeuler?
//
//   - Hard admissibility guarantee – no state with non-positive density
//     or out-of-bounds entropy ever leaves the scheme, for any time step
//     and any mesh topology
//   - Hot-loop friendly – per-node accumulators are worker-local, the
//     stepping scratch is preallocated, and the limiter never allocates
//     inside a time step
//   - Runtime-selected limiting variant – none, density, specific
//     entropy, or entropy inequality, switchable without recompilation
//
// Quick sketch of one sub-step:
//
//	bar states → low-order update → bounds + relaxation per node
//	           → scalar limiting per edge → min(t_ij, t_ji) → apply
//
// Dive into the per-package doc.go files for algorithm details, and into
// cmd/shocktube for a complete 1D Sod shock-tube driver.
//
//	go get github.com/ymelnyk/idpeuler
package idpeuler
