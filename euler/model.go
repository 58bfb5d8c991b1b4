package euler

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model evaluates gamma-law thermodynamics for a fixed spatial
// dimension. All methods are pure; a Model is safe for concurrent use.
type Model struct {
	dim   int
	gamma float64
}

// NewModel validates the configuration and returns a Model for the
// given spatial dimension.
//
// Preconditions:
//  1. dim must be 1, 2 or 3 (ErrBadDimension).
//  2. γ must be > 1 (ErrBadGamma).
func NewModel(dim int, opts ...Option) (*Model, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if dim < 1 || dim > 3 {
		return nil, ErrBadDimension
	}
	if cfg.Gamma <= 1 {
		return nil, ErrBadGamma
	}

	return &Model{dim: dim, gamma: cfg.Gamma}, nil
}

// Dim returns the spatial dimension.
func (m *Model) Dim() int { return m.dim }

// Gamma returns the ratio of specific heats.
func (m *Model) Gamma() float64 { return m.gamma }

// ProblemDimension returns the number of conserved components, dim+2.
func (m *Model) ProblemDimension() int { return m.dim + 2 }

// CheckState verifies that U has the model's problem dimension.
// Hot-loop evaluators skip this check; call it once at ingestion.
func (m *Model) CheckState(U State) error {
	if len(U) != m.dim+2 {
		return ErrBadState
	}

	return nil
}

// Density returns ρ.
func (m *Model) Density(U State) float64 { return U[0] }

// Momentum returns the momentum components of U. The returned slice
// aliases U; callers must not mutate it.
func (m *Model) Momentum(U State) []float64 { return U[1 : 1+m.dim] }

// TotalEnergy returns E.
func (m *Model) TotalEnergy(U State) float64 { return U[m.dim+1] }

// InternalEnergy returns ρe = E − |m|²/(2ρ).
func (m *Model) InternalEnergy(U State) float64 {
	return U[m.dim+1] - 0.5*m.momentumSquared(U)/U[0]
}

// SpecificInternalEnergy returns e = (E − |m|²/(2ρ)) / ρ.
func (m *Model) SpecificInternalEnergy(U State) float64 {
	return m.InternalEnergy(U) / U[0]
}

// Pressure returns p = (γ−1) · ρe.
func (m *Model) Pressure(U State) float64 {
	return (m.gamma - 1.) * m.InternalEnergy(U)
}

// SpeedOfSound returns a = sqrt(γ p / ρ).
func (m *Model) SpeedOfSound(U State) float64 {
	return math.Sqrt(m.gamma * m.Pressure(U) / U[0])
}

// SpecificEntropy returns s(U) = ρe · ρ^(−γ), an entropy surrogate that
// satisfies a local minimum principle under the low-order graph scheme.
func (m *Model) SpecificEntropy(U State) float64 {
	return m.InternalEnergy(U) * math.Pow(U[0], -m.gamma)
}

// SpecificEntropyDot returns the directional derivative
// d/dt s(U + t·P) evaluated at t = 0, i.e. ∇s(U)·P.
func (m *Model) SpecificEntropyDot(U, P State) float64 {
	rho := U[0]
	rhoPow := math.Pow(rho, -m.gamma)
	ie := m.InternalEnergy(U)

	// ∂s/∂ρ = ρ^(−γ)·|m|²/(2ρ²) − γ ρ^(−γ−1)·ρe
	dot := (rhoPow*0.5*m.momentumSquared(U)/(rho*rho) - m.gamma*rhoPow/rho*ie) * P[0]
	for k := 1; k <= m.dim; k++ {
		dot += -rhoPow * U[k] / rho * P[k] // ∂s/∂m_k = −ρ^(−γ)·m_k/ρ
	}
	dot += rhoPow * P[m.dim+1] // ∂s/∂E = ρ^(−γ)

	return dot
}

// MathEntropy returns the Harten-type entropy η(U) = (ρ²e)^(1/(γ+1)),
// with ρ²e = ρ·(ρe). η is concave on the admissible set, which is what
// the entropy-inequality limiting variant relies on.
func (m *Model) MathEntropy(U State) float64 {
	q := U[0] * m.InternalEnergy(U)
	if q <= 0 {
		return 0
	}

	return math.Pow(q, 1./(m.gamma+1.))
}

// MathEntropyDot returns ∇η(U)·P.
func (m *Model) MathEntropyDot(U, P State) float64 {
	rho := U[0]
	ie := m.InternalEnergy(U)
	q := rho * ie
	if q <= 0 {
		return 0
	}
	scale := 1. / (m.gamma + 1.) * math.Pow(q, 1./(m.gamma+1.)-1.)

	// q = ρ²E − |m|²/2 factored as ρ·ρe; differentiate the product.
	dot := (ie + rho*0.5*m.momentumSquared(U)/(rho*rho)) * P[0]
	for k := 1; k <= m.dim; k++ {
		dot += -U[k] * P[k]
	}
	dot += rho * P[m.dim+1]

	return scale * dot
}

// FluxDot stores f(U)·c into dst, where f is the Euler flux and c a
// direction vector of length dim. The hot loops of the graph scheme use
// only this contracted form; Flux materialises the full tensor.
//
//	(f·c)_ρ = m·c
//	(f·c)_m = (m·c)/ρ · m + p·c
//	(f·c)_E = (E + p)(m·c)/ρ
func (m *Model) FluxDot(U State, c []float64, dst State) {
	rho := U[0]
	p := m.Pressure(U)

	mc := 0.
	for d := 0; d < m.dim; d++ {
		mc += U[1+d] * c[d]
	}

	dst[0] = mc
	for k := 0; k < m.dim; k++ {
		dst[1+k] = mc/rho*U[1+k] + p*c[k]
	}
	dst[m.dim+1] = (U[m.dim+1] + p) * mc / rho
}

// Flux returns the full Euler flux tensor as a dim × (dim+2) matrix:
// row d holds the flux of every conserved component along axis d, so
// cᵀ·Flux(U) reproduces FluxDot(U, c). Allocates; meant for assembly
// and diagnostics, not for the stepping loops.
func (m *Model) Flux(U State) *mat.Dense {
	rho := U[0]
	p := m.Pressure(U)
	f := mat.NewDense(m.dim, m.dim+2, nil)

	for d := 0; d < m.dim; d++ {
		md := U[1+d]
		f.Set(d, 0, md)
		for k := 0; k < m.dim; k++ {
			v := md / rho * U[1+k]
			if k == d {
				v += p
			}
			f.Set(d, 1+k, v)
		}
		f.Set(d, m.dim+1, (U[m.dim+1]+p)*md/rho)
	}

	return f
}

// Admissible reports whether U lies in the invariant domain: positive
// density and positive internal energy (finite specific entropy).
func (m *Model) Admissible(U State) bool {
	return U[0] > 0 && m.InternalEnergy(U) > 0
}

// FromPrimitive converts a primitive triple (ρ, velocity along the first
// axis, p) to a conserved state. Transverse momentum components are
// zero. Used by the initial-state catalog and tests.
func (m *Model) FromPrimitive(rho, u, p float64) State {
	U := NewState(m.dim)
	U[0] = rho
	U[1] = rho * u
	U[m.dim+1] = p/(m.gamma-1.) + 0.5*rho*u*u

	return U
}

// momentumSquared returns |m|².
func (m *Model) momentumSquared(U State) float64 {
	sq := 0.
	for k := 1; k <= m.dim; k++ {
		sq += U[k] * U[k]
	}

	return sq
}
