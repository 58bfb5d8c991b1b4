package initial

import (
	"errors"
	"math"
	"math/rand"

	"github.com/ymelnyk/idpeuler/euler"
	"github.com/ymelnyk/idpeuler/offline"
)

var (
	// ErrNilModel is returned when a constructor receives a nil gas
	// model.
	ErrNilModel = errors.New("initial: nil model")

	// ErrBadPrimitive is returned when a primitive triple carries a
	// non-positive or non-finite density or pressure.
	ErrBadPrimitive = errors.New("initial: primitive density and pressure must be positive and finite")

	// ErrBadMach is returned when the shock Mach number is not
	// strictly greater than one.
	ErrBadMach = errors.New("initial: shock Mach number must exceed 1")

	// ErrBadRamp is returned when the ramp interval is empty or
	// reversed.
	ErrBadRamp = errors.New("initial: ramp requires t0 < t1")

	// ErrUnknownConfiguration is returned by ByName for a name not in
	// the catalog.
	ErrUnknownConfiguration = errors.New("initial: unknown configuration")
)

// Func is a pointwise initial state: the conservative state of the gas
// at position x and time t. Implementations must return a fresh or
// otherwise caller-owned slice on every call.
type Func func(x, t float64) euler.State

// Primitive describes a gas state in primitive variables: density,
// velocity and pressure.
type Primitive struct {
	Rho float64
	U   float64
	P   float64
}

func (p Primitive) valid() bool {
	return p.Rho > 0 && p.P > 0 &&
		!math.IsInf(p.Rho, 1) && !math.IsInf(p.P, 1) &&
		!math.IsNaN(p.U) && !math.IsInf(p.U, 0)
}

// Uniform returns the constant configuration f(x, t) = prim.
//
// Validation:
//  1. model must be non-nil, otherwise ErrNilModel;
//  2. prim must carry positive finite density and pressure, otherwise
//     ErrBadPrimitive.
func Uniform(model *euler.Model, prim Primitive) (Func, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if !prim.valid() {
		return nil, ErrBadPrimitive
	}

	state := model.FromPrimitive(prim.Rho, prim.U, prim.P)

	return func(x, t float64) euler.State {
		return state.Copy()
	}, nil
}

// Contrast returns the stationary two-state configuration that is
// left for x < position and right otherwise. It is the classic
// shock-tube setup when both velocities vanish.
//
// Validation:
//  1. model must be non-nil, otherwise ErrNilModel;
//  2. both primitive triples must be valid, otherwise ErrBadPrimitive.
func Contrast(model *euler.Model, left, right Primitive, position float64) (Func, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if !left.valid() || !right.valid() {
		return nil, ErrBadPrimitive
	}

	uL := model.FromPrimitive(left.Rho, left.U, left.P)
	uR := model.FromPrimitive(right.Rho, right.U, right.P)

	return func(x, t float64) euler.State {
		if x < position {
			return uL.Copy()
		}

		return uR.Copy()
	}, nil
}

// ShockFront returns a right-moving shock located at position at time
// zero, travelling into the quiescent right state with shock Mach
// number mach. The post-shock left state follows from the
// Rankine-Hugoniot conditions; see the package documentation for the
// closed forms.
//
// Validation:
//  1. model must be non-nil, otherwise ErrNilModel;
//  2. right must be a valid primitive triple, otherwise
//     ErrBadPrimitive;
//  3. mach must be finite and strictly greater than 1, otherwise
//     ErrBadMach.
func ShockFront(model *euler.Model, right Primitive, mach, position float64) (Func, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if !right.valid() {
		return nil, ErrBadPrimitive
	}
	if !(mach > 1) || math.IsInf(mach, 1) {
		return nil, ErrBadMach
	}

	gamma := model.Gamma()
	aR := math.Sqrt(gamma * right.P / right.Rho)
	speed := right.U + mach*aR

	m2 := mach * mach
	left := Primitive{
		Rho: right.Rho * (gamma + 1) * m2 / ((gamma-1)*m2 + 2),
		P:   right.P * (2*gamma*m2 - (gamma - 1)) / (gamma + 1),
	}
	ratio := right.Rho / left.Rho
	left.U = (1-ratio)*speed + ratio*right.U

	uL := model.FromPrimitive(left.Rho, left.U, left.P)
	uR := model.FromPrimitive(right.Rho, right.U, right.P)

	return func(x, t float64) euler.State {
		if x < position+speed*t {
			return uL.Copy()
		}

		return uR.Copy()
	}, nil
}

// RampUp returns a spatially uniform configuration that transitions
// from low to high over the time interval [t0, t1]. Primitives are
// interpolated linearly in time and converted to a conservative state
// afterwards; outside the interval the respective plateau holds.
//
// Validation:
//  1. model must be non-nil, otherwise ErrNilModel;
//  2. both primitive triples must be valid, otherwise ErrBadPrimitive;
//  3. t0 < t1 must hold, otherwise ErrBadRamp.
func RampUp(model *euler.Model, low, high Primitive, t0, t1 float64) (Func, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if !low.valid() || !high.valid() {
		return nil, ErrBadPrimitive
	}
	if !(t0 < t1) {
		return nil, ErrBadRamp
	}

	return func(x, t float64) euler.State {
		switch {
		case t <= t0:
			return model.FromPrimitive(low.Rho, low.U, low.P)
		case t >= t1:
			return model.FromPrimitive(high.Rho, high.U, high.P)
		}

		w := (t - t0) / (t1 - t0)
		rho := (1-w)*low.Rho + w*high.Rho
		u := (1-w)*low.U + w*high.U
		p := (1-w)*low.P + w*high.P

		return model.FromPrimitive(rho, u, p)
	}, nil
}

// Perturb wraps f with a multiplicative random perturbation: every
// state component is scaled by 1 + magnitude*xi with xi uniform on
// [-1, 1]. The draw sequence is seeded once, so the noise field is
// reproducible for a fixed seed and evaluation order. A zero magnitude
// returns f unchanged.
func Perturb(f Func, magnitude float64, seed int64) Func {
	if magnitude == 0 {
		return f
	}

	rng := rand.New(rand.NewSource(seed))

	return func(x, t float64) euler.State {
		state := f(x, t)
		for k := range state {
			state[k] *= 1 + magnitude*(2*rng.Float64()-1)
		}

		return state
	}
}

// Interpolate samples f at every node position of data at time t and
// returns the nodal states. The result slice owns its states; callers
// may step it in place.
func Interpolate(f Func, data *offline.Data, t float64) []euler.State {
	U := make([]euler.State, data.NumNodes())
	for i := range U {
		U[i] = f(data.Position(i)[0], t)
	}

	return U
}

// ByName looks up a default-parameter configuration:
//
//   - "uniform": quiescent gas at density 1 and pressure 1;
//   - "contrast": the Sod shock tube split at x = 0.5;
//   - "shockfront": a Mach 2 shock at x = 0.25 running into quiescent
//     gas at density 1 and pressure 1;
//   - "ramp-up": a uniform ramp from pressure 1 to pressure 2 over
//     t in [0, 1].
//
// Unknown names yield ErrUnknownConfiguration.
func ByName(model *euler.Model, name string) (Func, error) {
	switch name {
	case "uniform":
		return Uniform(model, Primitive{Rho: 1, U: 0, P: 1})
	case "contrast":
		return Contrast(model,
			Primitive{Rho: 1, U: 0, P: 1},
			Primitive{Rho: 0.125, U: 0, P: 0.1},
			0.5)
	case "shockfront":
		return ShockFront(model, Primitive{Rho: 1, U: 0, P: 1}, 2, 0.25)
	case "ramp-up":
		return RampUp(model,
			Primitive{Rho: 1, U: 0, P: 1},
			Primitive{Rho: 1, U: 0, P: 2},
			0, 1)
	default:
		return nil, ErrUnknownConfiguration
	}
}
