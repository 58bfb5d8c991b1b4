package initial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ymelnyk/idpeuler/euler"
	"github.com/ymelnyk/idpeuler/initial"
	"github.com/ymelnyk/idpeuler/offline"
)

func newTestModel(t *testing.T) *euler.Model {
	t.Helper()

	model, err := euler.NewModel(1, euler.WithGamma(1.4))
	require.NoError(t, err)

	return model
}

// ------------------------------------------------------------------------
// 1. Validation.
// ------------------------------------------------------------------------

func TestConstructors_Validation(t *testing.T) {
	model := newTestModel(t)
	good := initial.Primitive{Rho: 1, U: 0, P: 1}
	bad := initial.Primitive{Rho: -1, U: 0, P: 1}

	_, err := initial.Uniform(nil, good)
	require.ErrorIs(t, err, initial.ErrNilModel)

	_, err = initial.Uniform(model, bad)
	require.ErrorIs(t, err, initial.ErrBadPrimitive)

	_, err = initial.Uniform(model, initial.Primitive{Rho: 1, U: 0, P: 0})
	require.ErrorIs(t, err, initial.ErrBadPrimitive)

	_, err = initial.Contrast(model, good, bad, 0.5)
	require.ErrorIs(t, err, initial.ErrBadPrimitive)

	_, err = initial.ShockFront(model, good, 1.0, 0.5)
	require.ErrorIs(t, err, initial.ErrBadMach)

	_, err = initial.ShockFront(model, good, math.NaN(), 0.5)
	require.ErrorIs(t, err, initial.ErrBadMach)

	_, err = initial.RampUp(model, good, good, 1, 1)
	require.ErrorIs(t, err, initial.ErrBadRamp)

	_, err = initial.ByName(model, "vortex")
	require.ErrorIs(t, err, initial.ErrUnknownConfiguration)
}

// ------------------------------------------------------------------------
// 2. Uniform and contrast.
// ------------------------------------------------------------------------

func TestUniform_ConstantEverywhere(t *testing.T) {
	model := newTestModel(t)
	f, err := initial.Uniform(model, initial.Primitive{Rho: 2, U: 0.3, P: 1.5})
	require.NoError(t, err)

	want := model.FromPrimitive(2, 0.3, 1.5)
	for _, x := range []float64{-1, 0, 0.7, 10} {
		require.Equal(t, want, f(x, 0.25))
	}

	// Returned states are caller-owned.
	a := f(0, 0)
	a[0] = 42
	require.Equal(t, want, f(0, 0))
}

func TestContrast_SplitsAtPosition(t *testing.T) {
	model := newTestModel(t)
	f, err := initial.Contrast(model,
		initial.Primitive{Rho: 1, U: 0, P: 1},
		initial.Primitive{Rho: 0.125, U: 0, P: 0.1},
		0.5)
	require.NoError(t, err)

	require.Equal(t, 1.0, model.Density(f(0.49, 0)))
	require.Equal(t, 0.125, model.Density(f(0.5, 0)))
	require.Equal(t, 0.125, model.Density(f(0.51, 3.0)))
}

// ------------------------------------------------------------------------
// 3. The shock front satisfies the jump conditions and moves.
// ------------------------------------------------------------------------

func TestShockFront_RankineHugoniot(t *testing.T) {
	model := newTestModel(t)
	right := initial.Primitive{Rho: 1, U: 0.1, P: 1}
	const mach = 2.5
	const position = 0.3

	f, err := initial.ShockFront(model, right, mach, position)
	require.NoError(t, err)

	uL := f(position-1e-9, 0)
	uR := f(position+1e-9, 0)
	require.True(t, model.Admissible(uL))

	// Shock speed as documented.
	aR := model.SpeedOfSound(uR)
	speed := right.U + mach*aR

	// Jump conditions in the shock frame: continuity of mass,
	// momentum and energy fluxes across the discontinuity.
	flux := func(U euler.State) [3]float64 {
		rho := model.Density(U)
		u := model.Momentum(U)[0] / rho
		p := model.Pressure(U)
		E := model.TotalEnergy(U)
		v := u - speed

		return [3]float64{
			rho * v,
			rho*u*v + p,
			E*v + p*u,
		}
	}

	fL, fR := flux(uL), flux(uR)
	for k := 0; k < 3; k++ {
		require.InDelta(t, fR[k], fL[k], 1e-12, "jump condition %d", k)
	}

	// The front travels with the shock speed.
	ahead := position + speed*0.1
	require.Equal(t, model.Density(uL), model.Density(f(ahead-1e-6, 0.1)))
	require.Equal(t, model.Density(uR), model.Density(f(ahead+1e-6, 0.1)))

	// A compressive shock: denser and hotter behind the front.
	require.Greater(t, model.Density(uL), model.Density(uR))
	require.Greater(t, model.Pressure(uL), model.Pressure(uR))
}

// ------------------------------------------------------------------------
// 4. Ramp-up.
// ------------------------------------------------------------------------

func TestRampUp_InterpolatesPrimitives(t *testing.T) {
	model := newTestModel(t)
	low := initial.Primitive{Rho: 1, U: 0, P: 1}
	high := initial.Primitive{Rho: 2, U: 1, P: 3}

	f, err := initial.RampUp(model, low, high, 1, 3)
	require.NoError(t, err)

	require.Equal(t, model.FromPrimitive(1, 0, 1), f(0, 0.5))
	require.Equal(t, model.FromPrimitive(1, 0, 1), f(0, 1))
	require.Equal(t, model.FromPrimitive(2, 1, 3), f(0, 3))
	require.Equal(t, model.FromPrimitive(2, 1, 3), f(0, 7))

	mid := f(0, 2)
	require.InDelta(t, 1.5, model.Density(mid), 1e-15)
	require.InDelta(t, 2.0, model.Pressure(mid), 1e-12)
}

// ------------------------------------------------------------------------
// 5. Perturbation determinism.
// ------------------------------------------------------------------------

func TestPerturb_DeterministicPerSeed(t *testing.T) {
	model := newTestModel(t)
	data, err := offline.NewLine1D(16, 1.0)
	require.NoError(t, err)

	base, err := initial.ByName(model, "contrast")
	require.NoError(t, err)

	a := initial.Interpolate(initial.Perturb(base, 0.01, 7), data, 0)
	b := initial.Interpolate(initial.Perturb(base, 0.01, 7), data, 0)
	c := initial.Interpolate(initial.Perturb(base, 0.01, 8), data, 0)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	// Small perturbations stay close and admissible.
	clean := initial.Interpolate(base, data, 0)
	for i := range a {
		require.True(t, model.Admissible(a[i]), "node %d", i)
		for k := range a[i] {
			if clean[i][k] == 0 {
				require.Equal(t, 0.0, a[i][k])
				continue
			}
			require.InDelta(t, 1.0, a[i][k]/clean[i][k], 0.011)
		}
	}
}

func TestPerturb_ZeroMagnitudeIsIdentity(t *testing.T) {
	model := newTestModel(t)
	base, err := initial.ByName(model, "uniform")
	require.NoError(t, err)

	f := initial.Perturb(base, 0, 123)
	require.Equal(t, base(0.3, 0), f(0.3, 0))
}

// ------------------------------------------------------------------------
// 6. Interpolation and the catalog.
// ------------------------------------------------------------------------

func TestInterpolate_SamplesNodePositions(t *testing.T) {
	model := newTestModel(t)
	data, err := offline.NewLine1D(10, 1.0)
	require.NoError(t, err)

	f, err := initial.Contrast(model,
		initial.Primitive{Rho: 1, U: 0, P: 1},
		initial.Primitive{Rho: 0.125, U: 0, P: 0.1},
		0.55)
	require.NoError(t, err)

	U := initial.Interpolate(f, data, 0)
	require.Len(t, U, data.NumNodes())

	for i := range U {
		if data.Position(i)[0] < 0.55 {
			require.Equal(t, 1.0, model.Density(U[i]), "node %d", i)
		} else {
			require.Equal(t, 0.125, model.Density(U[i]), "node %d", i)
		}
	}
}

func TestByName_CatalogEntries(t *testing.T) {
	model := newTestModel(t)

	for _, name := range []string{"uniform", "contrast", "shockfront", "ramp-up"} {
		f, err := initial.ByName(model, name)
		require.NoError(t, err, name)
		require.True(t, model.Admissible(f(0.1, 0)), name)
	}
}
