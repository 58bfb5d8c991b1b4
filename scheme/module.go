package scheme

import (
	"math"
	"runtime"
	"sync"

	"github.com/ymelnyk/idpeuler/euler"
	"github.com/ymelnyk/idpeuler/limiter"
	"github.com/ymelnyk/idpeuler/offline"
)

// workspace is the per-worker flux scratch. One per shard, never
// shared, so the hot loops stay allocation-free and lock-free.
type workspace struct {
	fi  euler.State // f(U_i)·c_ij
	fj  euler.State // f(U_j)·c_ij
	bar euler.State // Ū_ij
	p   euler.State // candidate antidiffusive correction
}

// Module drives IDP forward Euler sub-steps over one mesh. All scratch
// is preallocated at construction; Step does not allocate.
type Module struct {
	model *euler.Model
	data  *offline.Data
	opts  Options

	variant limiter.Variant

	nParts    int
	partBegin []int
	partEnd   []int

	limiters []*limiter.Limiter
	work     []workspace

	// Per-node scratch.
	entropies  []float64
	variations []float64
	dDiag      []float64
	tauLocal   []float64
	boundsAt   []limiter.Bounds
	lowOrder   []euler.State
	uNext      []euler.State

	// Per-edge scratch (shared edge indexing with the offline data).
	dRaw  []float64
	d     []float64
	tEdge []float64
}

// New validates the configuration and preallocates every per-step
// scratch array for the given mesh.
//
// Preconditions and validation (in order):
//  1. model must be non-nil (ErrNilModel).
//  2. data must be non-nil (ErrNilData).
//  3. model and data must agree on the dimension (ErrDimensionMismatch).
//  4. CFL must be in (0, 1] (ErrBadCFL).
//  5. ParallelDegree must be non-negative (ErrBadParallelDegree).
//
// Limiter options are validated by limiter.New and surface unchanged.
func New(model *euler.Model, data *offline.Data, opts ...Option) (*Module, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if model == nil {
		return nil, ErrNilModel
	}
	if data == nil {
		return nil, ErrNilData
	}
	if model.Dim() != data.Dim() {
		return nil, ErrDimensionMismatch
	}
	if cfg.CFL <= 0 || cfg.CFL > 1 {
		return nil, ErrBadCFL
	}
	if cfg.ParallelDegree < 0 {
		return nil, ErrBadParallelDegree
	}

	n := data.NumNodes()
	nParts := cfg.ParallelDegree
	if nParts == 0 {
		nParts = runtime.NumCPU()
	}
	if nParts > n {
		nParts = n
	}

	m := &Module{
		model:      model,
		data:       data,
		opts:       cfg,
		nParts:     nParts,
		dRaw:       make([]float64, data.NumEdges()),
		d:          make([]float64, data.NumEdges()),
		tEdge:      make([]float64, data.NumEdges()),
		dDiag:      make([]float64, n),
		tauLocal:   make([]float64, nParts),
		entropies:  make([]float64, n),
		variations: make([]float64, n),
		boundsAt:   make([]limiter.Bounds, n),
	}

	// Contiguous node shards, remainder spread over the first shards.
	m.partBegin = make([]int, nParts)
	m.partEnd = make([]int, nParts)
	chunk, rem := n/nParts, n%nParts
	at := 0
	for p := 0; p < nParts; p++ {
		m.partBegin[p] = at
		at += chunk
		if p < rem {
			at++
		}
		m.partEnd[p] = at
	}

	// Per-worker limiters and flux scratch.
	m.limiters = make([]*limiter.Limiter, nParts)
	m.work = make([]workspace, nParts)
	pd := model.ProblemDimension()
	for p := 0; p < nParts; p++ {
		lim, err := limiter.New(model, cfg.Limiter...)
		if err != nil {
			return nil, err
		}
		m.limiters[p] = lim
		m.work[p] = workspace{
			fi:  make(euler.State, pd),
			fj:  make(euler.State, pd),
			bar: make(euler.State, pd),
			p:   make(euler.State, pd),
		}
	}
	m.variant = m.limiters[0].Options().Variant

	// Low-order and next-step states carved from flat backing arrays.
	m.lowOrder = carve(n, pd)
	m.uNext = carve(n, pd)

	return m, nil
}

// carve allocates n states of length pd over one backing array.
func carve(n, pd int) []euler.State {
	backing := make([]float64, n*pd)
	states := make([]euler.State, n)
	for i := range states {
		states[i] = backing[i*pd : (i+1)*pd]
	}

	return states
}

// Data returns the mesh the module steps on.
func (m *Module) Data() *offline.Data { return m.data }

// Model returns the state model.
func (m *Module) Model() *euler.Model { return m.model }

// forEachShard runs fn once per worker shard and waits for all.
func (m *Module) forEachShard(fn func(p, begin, end int)) {
	var wg sync.WaitGroup
	wg.Add(m.nParts)
	for p := 0; p < m.nParts; p++ {
		go func(p int) {
			defer wg.Done()
			fn(p, m.partBegin[p], m.partEnd[p])
		}(p)
	}
	wg.Wait()
}

// checkSolution validates shape and admissibility of the incoming
// solution. O(n); negligible next to one sub-step.
func (m *Module) checkSolution(U []euler.State) error {
	if len(U) != m.data.NumNodes() {
		return ErrWrongStateCount
	}
	pd := m.model.ProblemDimension()
	for i := range U {
		if len(U[i]) != pd {
			return ErrWrongStateCount
		}
		if !m.model.Admissible(U[i]) {
			return ErrNonAdmissibleState
		}
	}

	return nil
}

// entropyOf evaluates the limiting variant's entropy functional.
func (m *Module) entropyOf(U euler.State) float64 {
	if m.variant == limiter.VariantEntropyInequality {
		return m.model.MathEntropy(U)
	}

	return m.model.SpecificEntropy(U)
}

// MaxTimeStep returns the maximal CFL-scaled admissible time step for
// the current solution: τ = cfl · min_i m_i / (2 Σ_j d_ij).
func (m *Module) MaxTimeStep(U []euler.State) (float64, error) {
	if err := m.checkSolution(U); err != nil {
		return 0, err
	}
	m.computeViscosities(U)

	return m.cflTimeStep(), nil
}

// Step advances U by one limited forward Euler sub-step in place.
// For tau > 0 that step size is used as given (the caller owns its CFL
// validity); tau == 0 selects the maximal admissible step. The step
// size actually taken is returned.
func (m *Module) Step(U []euler.State, tau float64) (float64, error) {
	if err := m.checkSolution(U); err != nil {
		return 0, err
	}

	// Phase 1: nodal entropies and variation indicators.
	m.forEachShard(func(p, begin, end int) {
		for i := begin; i < end; i++ {
			m.entropies[i] = m.entropyOf(U[i])

			// Second-order density variation: Σ_j β_ij ρ_j. The β row
			// sums vanish, so this is a discrete Laplacian of ρ.
			v := 0.0
			kBegin, kEnd := m.data.RowRange(i)
			for k := kBegin; k < kEnd; k++ {
				v += m.data.Betaij(k) * m.model.Density(U[m.data.Col(k)])
			}
			m.variations[i] = v
		}
	})

	// Phases 2-3: graph viscosities and their symmetrisation.
	m.computeViscosities(U)

	if tau <= 0 {
		tau = m.cflTimeStep()
	}

	// Phase 4: bar states, low-order update, bounds per node.
	m.forEachShard(func(p, begin, end int) {
		lim := m.limiters[p]
		w := &m.work[p]
		for i := begin; i < end; i++ {
			m.accumulateNode(U, i, tau, lim, w)
		}
	})

	// Phase 5: one limiting coefficient per directed edge.
	m.forEachShard(func(p, begin, end int) {
		lim := m.limiters[p]
		w := &m.work[p]
		for i := begin; i < end; i++ {
			minv := m.data.MassLumpedInv(i)
			kBegin, kEnd := m.data.RowRange(i)
			m.tEdge[kBegin] = 1 // self edge carries no flux
			for k := kBegin + 1; k < kEnd; k++ {
				j := m.data.Col(k)
				scale := tau * minv * m.d[k]
				for c := range w.p {
					w.p[c] = scale * (U[i][c] - U[j][c])
				}
				m.tEdge[k] = lim.Limit(m.boundsAt[i], m.lowOrder[i], w.p, 0, 1)
			}
		}
	})

	// Phase 6+7: symmetrise min(t_ij, t_ji) and apply the limited
	// antidiffusive fluxes. Both directions exist now; the shard
	// barrier above is the required two-phase boundary.
	m.forEachShard(func(p, begin, end int) {
		for i := begin; i < end; i++ {
			minv := m.data.MassLumpedInv(i)
			next := m.uNext[i]
			copy(next, m.lowOrder[i])
			kBegin, kEnd := m.data.RowRange(i)
			for k := kBegin + 1; k < kEnd; k++ {
				j := m.data.Col(k)
				l := math.Min(m.tEdge[k], m.tEdge[m.data.Transpose(k)])
				scale := l * tau * minv * m.d[k]
				for c := range next {
					next[c] += scale * (U[i][c] - U[j][c])
				}
			}
		}
	})

	// Publish: the old solution was read until the last phase, so the
	// write-back is a separate sweep.
	m.forEachShard(func(p, begin, end int) {
		for i := begin; i < end; i++ {
			copy(U[i], m.uNext[i])
		}
	})

	return tau, nil
}

// Advance integrates U from time 0 to tFinal with maximal admissible
// steps, shortening the last step to land on tFinal exactly. Returns
// the number of steps taken.
func (m *Module) Advance(U []euler.State, tFinal float64) (int, error) {
	steps := 0
	for t := 0.0; t < tFinal; steps++ {
		tauMax, err := m.MaxTimeStep(U)
		if err != nil {
			return steps, err
		}
		tau := math.Min(tauMax, tFinal-t)
		if _, err := m.Step(U, tau); err != nil {
			return steps, err
		}
		t += tau
	}

	return steps, nil
}

// computeViscosities fills dRaw, d and dDiag from the current solution:
// a Davis-type two-sided wave-speed bound per directed edge, then the
// symmetrised maximum of both directions.
func (m *Module) computeViscosities(U []euler.State) {
	dim := m.data.Dim()

	m.forEachShard(func(p, begin, end int) {
		for i := begin; i < end; i++ {
			kBegin, kEnd := m.data.RowRange(i)
			m.dRaw[kBegin] = 0
			for k := kBegin + 1; k < kEnd; k++ {
				j := m.data.Col(k)
				c := m.data.Cij(k)

				norm := 0.0
				for x := 0; x < dim; x++ {
					norm += c[x] * c[x]
				}
				norm = math.Sqrt(norm)
				if norm == 0 {
					m.dRaw[k] = 0

					continue
				}

				m.dRaw[k] = norm * math.Max(
					m.normalWaveSpeed(U[i], c, norm),
					m.normalWaveSpeed(U[j], c, norm),
				)
			}
		}
	})

	m.forEachShard(func(p, begin, end int) {
		for i := begin; i < end; i++ {
			sum := 0.0
			kBegin, kEnd := m.data.RowRange(i)
			for k := kBegin + 1; k < kEnd; k++ {
				m.d[k] = math.Max(m.dRaw[k], m.dRaw[m.data.Transpose(k)])
				sum += m.d[k]
			}
			m.d[kBegin] = -sum
			m.dDiag[i] = sum
		}
	})
}

// normalWaveSpeed bounds |u·n| + a for the state U along the direction
// c/norm.
func (m *Module) normalWaveSpeed(U euler.State, c []float64, norm float64) float64 {
	rho := m.model.Density(U)
	un := 0.0
	for x := 0; x < m.data.Dim(); x++ {
		un += U[1+x] * c[x]
	}
	un /= rho * norm

	return math.Abs(un) + m.model.SpeedOfSound(U)
}

// cflTimeStep reduces the per-shard minima of m_i/(2 Σ_j d_ij) and
// applies the CFL number. Isolated nodes (zero viscosity row) do not
// restrict the step.
func (m *Module) cflTimeStep() float64 {
	m.forEachShard(func(p, begin, end int) {
		local := math.Inf(1)
		for i := begin; i < end; i++ {
			if m.dDiag[i] > 0 {
				local = math.Min(local, m.data.MassLumped(i)/(2*m.dDiag[i]))
			}
		}
		m.tauLocal[p] = local
	})

	tau := math.Inf(1)
	for p := 0; p < m.nParts; p++ {
		tau = math.Min(tau, m.tauLocal[p])
	}

	return m.opts.CFL * tau
}

// accumulateNode runs the full per-node limiter sweep for node i:
// bar states, low-order update, bounds accumulation, variation sweep,
// relaxation.
func (m *Module) accumulateNode(U []euler.State, i int, tau float64, lim *limiter.Limiter, w *workspace) {
	minv := m.data.MassLumpedInv(i)
	low := m.lowOrder[i]
	copy(low, U[i])

	lim.Reset()
	lim.Accumulate(U[i], U[i], U[i], m.entropies[i], true)

	kBegin, kEnd := m.data.RowRange(i)
	for k := kBegin + 1; k < kEnd; k++ {
		j := m.data.Col(k)
		c := m.data.Cij(k)
		d := m.d[k]

		U[i].Mean(U[j], w.bar)
		if d > 0 {
			m.model.FluxDot(U[i], c, w.fi)
			m.model.FluxDot(U[j], c, w.fj)
			for x := range w.bar {
				w.bar[x] -= (w.fj[x] - w.fi[x]) / (2 * d)
			}
		}

		lim.Accumulate(U[i], U[j], w.bar, m.entropies[j], false)

		scale := tau * minv * 2 * d
		for x := range low {
			low[x] += scale * (w.bar[x] - U[i][x])
		}
	}

	lim.ResetVariations(m.variations[i])
	for k := kBegin + 1; k < kEnd; k++ {
		lim.AccumulateVariations(m.variations[m.data.Col(k)], m.data.Betaij(k))
	}

	lim.ApplyRelaxation(m.data.Diameter(i))
	m.boundsAt[i] = lim.Bounds()
}
