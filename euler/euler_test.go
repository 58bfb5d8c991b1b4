// Package euler_test validates the gamma-law state model: constructor
// validation, equation-of-state identities, flux contraction, and the
// directional entropy derivatives against finite differences.
package euler_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ymelnyk/idpeuler/euler"
)

// ------------------------------------------------------------------------
// 1. Validation: constructor rejects invalid configuration.
// ------------------------------------------------------------------------

func TestNewModel_BadDimension(t *testing.T) {
	_, err := euler.NewModel(0)
	require.ErrorIs(t, err, euler.ErrBadDimension)

	_, err = euler.NewModel(4)
	require.ErrorIs(t, err, euler.ErrBadDimension)
}

func TestNewModel_BadGamma(t *testing.T) {
	_, err := euler.NewModel(1, euler.WithGamma(1.0))
	require.ErrorIs(t, err, euler.ErrBadGamma)

	_, err = euler.NewModel(1, euler.WithGamma(0.3))
	require.ErrorIs(t, err, euler.ErrBadGamma)
}

func TestModel_CheckState(t *testing.T) {
	m, err := euler.NewModel(2)
	require.NoError(t, err)
	require.NoError(t, m.CheckState(euler.NewState(2)))
	require.ErrorIs(t, m.CheckState(euler.NewState(1)), euler.ErrBadState)
}

// ------------------------------------------------------------------------
// 2. Equation-of-state identities on a primitive round trip.
// ------------------------------------------------------------------------

func TestModel_PrimitiveRoundTrip(t *testing.T) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	require.NoError(t, err)

	const rho, u, p = 1.25, 0.75, 2.5
	U := m.FromPrimitive(rho, u, p)

	require.InDelta(t, rho, m.Density(U), 1e-14)
	require.InDelta(t, rho*u, m.Momentum(U)[0], 1e-14)
	require.InDelta(t, p, m.Pressure(U), 1e-13)
	require.InDelta(t, math.Sqrt(1.4*p/rho), m.SpeedOfSound(U), 1e-13)
	require.True(t, m.Admissible(U))
}

func TestModel_InternalEnergySplitsKinetic(t *testing.T) {
	m, err := euler.NewModel(3)
	require.NoError(t, err)

	U := euler.State{2.0, 1.0, -2.0, 0.5, 10.0}
	// |m|² = 1 + 4 + 0.25 = 5.25, kinetic = 5.25/(2·2) = 1.3125
	require.InDelta(t, 10.0-1.3125, m.InternalEnergy(U), 1e-14)
	require.InDelta(t, (10.0-1.3125)/2.0, m.SpecificInternalEnergy(U), 1e-14)
}

func TestModel_AdmissibleRejectsVacuumAndColdStates(t *testing.T) {
	m, err := euler.NewModel(1)
	require.NoError(t, err)

	require.False(t, m.Admissible(euler.State{0, 0, 1}))     // vacuum
	require.False(t, m.Admissible(euler.State{1, 2, 1}))     // ρe = 1 − 2 < 0
	require.True(t, m.Admissible(euler.State{1, 0.5, 1.0}))  // ρe = 0.875
}

// ------------------------------------------------------------------------
// 3. Entropy evaluators and their directional derivatives.
// ------------------------------------------------------------------------

func TestModel_SpecificEntropyValue(t *testing.T) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	require.NoError(t, err)

	U := euler.State{2.0, 0.0, 6.0}
	// s = ρe · ρ^(−γ) = 6 · 2^(−1.4)
	require.InDelta(t, 6.0*math.Pow(2.0, -1.4), m.SpecificEntropy(U), 1e-13)
}

// finiteDifference approximates d/dt f(U+tP) at t=0 with a central stencil.
func finiteDifference(f func(euler.State) float64, U, P euler.State) float64 {
	const h = 1e-6
	up := make(euler.State, len(U))
	um := make(euler.State, len(U))
	U.AddScaled(h, P, up)
	U.AddScaled(-h, P, um)

	return (f(up) - f(um)) / (2 * h)
}

func TestModel_SpecificEntropyDotMatchesFiniteDifference(t *testing.T) {
	m, err := euler.NewModel(2, euler.WithGamma(1.4))
	require.NoError(t, err)

	U := euler.State{1.3, 0.4, -0.2, 4.0}
	P := euler.State{0.1, -0.3, 0.2, 0.5}

	want := finiteDifference(m.SpecificEntropy, U, P)
	require.InDelta(t, want, m.SpecificEntropyDot(U, P), 1e-7)
}

func TestModel_MathEntropyDotMatchesFiniteDifference(t *testing.T) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	require.NoError(t, err)

	U := euler.State{1.1, 0.3, 3.0}
	P := euler.State{-0.2, 0.1, 0.4}

	want := finiteDifference(m.MathEntropy, U, P)
	require.InDelta(t, want, m.MathEntropyDot(U, P), 1e-7)
}

// ------------------------------------------------------------------------
// 4. Flux contraction.
// ------------------------------------------------------------------------

func TestModel_FluxDot1D(t *testing.T) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	require.NoError(t, err)

	U := m.FromPrimitive(1.0, 2.0, 1.5)
	c := []float64{0.5}
	got := euler.NewState(1)
	m.FluxDot(U, c, got)

	rho, u, p := 1.0, 2.0, 1.5
	E := m.TotalEnergy(U)
	require.InDelta(t, rho*u*0.5, got[0], 1e-13)
	require.InDelta(t, (rho*u*u+p)*0.5, got[1], 1e-13)
	require.InDelta(t, (E+p)*u*0.5, got[2], 1e-13)
}

func TestModel_FluxDotZeroDirection(t *testing.T) {
	m, err := euler.NewModel(2)
	require.NoError(t, err)

	U := euler.State{1.0, 0.7, -0.1, 3.0}
	got := euler.NewState(2)
	m.FluxDot(U, []float64{0, 0}, got)
	for k := range got {
		require.Zero(t, got[k])
	}
}

func TestModel_FluxMatchesContraction(t *testing.T) {
	m, err := euler.NewModel(2, euler.WithGamma(1.4))
	require.NoError(t, err)

	U := euler.State{1.3, 0.7, -0.4, 4.2}
	c := []float64{0.6, -0.3}

	want := euler.NewState(2)
	m.FluxDot(U, c, want)

	f := m.Flux(U)
	r, cols := f.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 4, cols)

	for k := 0; k < cols; k++ {
		got := 0.0
		for d := 0; d < r; d++ {
			got += c[d] * f.At(d, k)
		}
		require.InDelta(t, want[k], got, 1e-13, "component %d", k)
	}
}

// ------------------------------------------------------------------------
// 5. State helpers.
// ------------------------------------------------------------------------

func TestState_AddScaledAndMean(t *testing.T) {
	u := euler.State{1, 2, 3}
	p := euler.State{2, -2, 4}

	dst := euler.NewState(1)
	u.AddScaled(0.5, p, dst)
	require.Equal(t, euler.State{2, 1, 5}, dst)

	u.Mean(p, dst)
	require.Equal(t, euler.State{1.5, 0, 3.5}, dst)

	u.Add(p, dst)
	require.Equal(t, euler.State{3, 0, 7}, dst)

	u.Scale(2, dst)
	require.Equal(t, euler.State{2, 4, 6}, dst)

	cp := u.Copy()
	cp[0] = 42
	require.Equal(t, 1.0, u[0])
}
