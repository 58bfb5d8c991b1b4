// Package initial provides a small catalog of closed-form flow
// configurations used to seed time integration: uniform flow, a
// two-state contrast, a moving shock front built from the
// Rankine-Hugoniot conditions, and a time-dependent ramp between two
// states. Each configuration is a pointwise function of space and
// time that can be sampled onto a mesh with Interpolate.
//
// 🚀 What the package offers
//
//   - Func, the pointwise initial state f(x, t).
//   - Uniform, Contrast, ShockFront and RampUp constructors that
//     validate their primitive inputs against a gas model.
//   - Perturb, a deterministic multiplicative noise wrapper for
//     stability experiments.
//   - Interpolate, nodal sampling of a Func onto precomputed mesh
//     data.
//   - ByName, a lookup of default-parameter configurations for
//     drivers that select a setup from a string.
//
// ✨ Primitive inputs
//
// Configurations are described in primitive variables via the
// Primitive triple (density, velocity, pressure). Constructors reject
// non-positive density or pressure with ErrBadPrimitive; the conversion
// to conservative variables uses the model's equation of state.
//
// ✨ The shock front
//
// ShockFront takes the quiescent right state and a shock Mach number
// M > 1 and derives the post-shock left state from the
// Rankine-Hugoniot jump conditions:
//
//	rho_L = rho_R * (γ+1)M² / ((γ-1)M² + 2)
//	p_L   = p_R  * (2γM² - (γ-1)) / (γ+1)
//	u_L   = (1 - rho_R/rho_L)*S + (rho_R/rho_L)*u_R
//
// with shock speed S = u_R + M*a_R. The returned Func tracks the
// front: f(x, t) is the left state for x < position + S*t and the
// right state otherwise.
//
// ✨ Determinism of Perturb
//
// Perturb draws one uniform factor per state component from a
// math/rand source seeded by the caller. The noise therefore depends
// on the order of evaluation; sampling the same Func onto the same
// mesh with the same seed reproduces the field exactly.
package initial
