// Package scheme defines the configuration surface of the limiting
// orchestrator.
package scheme

import (
	"errors"

	"github.com/ymelnyk/idpeuler/limiter"
)

// Sentinel errors returned by the scheme package.
var (
	// ErrNilModel indicates that New was called without a state model.
	ErrNilModel = errors.New("scheme: state model is nil")

	// ErrNilData indicates that New was called without offline data.
	ErrNilData = errors.New("scheme: offline data is nil")

	// ErrDimensionMismatch indicates that the model and the offline
	// data disagree about the spatial dimension.
	ErrDimensionMismatch = errors.New("scheme: model and mesh dimension differ")

	// ErrBadCFL indicates a CFL number outside (0, 1].
	ErrBadCFL = errors.New("scheme: CFL number must be in (0, 1]")

	// ErrBadParallelDegree indicates a non-positive worker count.
	ErrBadParallelDegree = errors.New("scheme: parallel degree must be positive")

	// ErrWrongStateCount indicates a solution slice whose length does
	// not match the mesh node count, or a state of the wrong length.
	ErrWrongStateCount = errors.New("scheme: solution does not match mesh")

	// ErrNonAdmissibleState indicates an incoming state outside the
	// invariant domain. The scheme preserves admissibility; it cannot
	// create it.
	ErrNonAdmissibleState = errors.New("scheme: state is not admissible")
)

// Options configures a Module.
//
//   - CFL: Courant number scaling the maximal admissible time step.
//     Must be in (0, 1]. Default 0.9.
//   - ParallelDegree: number of node shards / workers. 0 selects
//     runtime.NumCPU() capped by the node count; negative values are
//     rejected.
//   - Limiter: functional options forwarded to the per-worker limiter
//     instances (variant, relaxation, Newton cap).
type Options struct {
	CFL            float64
	ParallelDegree int
	Limiter        []limiter.Option
}

// Option is a functional option for configuring a Module.
type Option func(*Options)

// WithCFL sets the Courant number. Values outside (0, 1] are rejected
// by New with ErrBadCFL.
func WithCFL(cfl float64) Option {
	return func(o *Options) {
		o.CFL = cfl
	}
}

// WithParallelDegree sets the number of workers. 0 restores the
// automatic choice; negative values are rejected by New with
// ErrBadParallelDegree.
func WithParallelDegree(n int) Option {
	return func(o *Options) {
		o.ParallelDegree = n
	}
}

// WithLimiterOptions forwards options to the per-worker limiters.
func WithLimiterOptions(opts ...limiter.Option) Option {
	return func(o *Options) {
		o.Limiter = append(o.Limiter, opts...)
	}
}

// DefaultOptions returns the default orchestrator configuration.
// ParallelDegree 0 means "choose at construction" (runtime.NumCPU
// capped by the node count).
func DefaultOptions() Options {
	return Options{CFL: 0.9}
}
