package limiter_test

import (
	"math/rand"
	"testing"

	"github.com/ymelnyk/idpeuler/euler"
	"github.com/ymelnyk/idpeuler/limiter"
)

// benchmarkLimit drives Limit over a fixed pool of random states so the
// hot path (and not the RNG) dominates the measurement.
func benchmarkLimit(b *testing.B, variant limiter.Variant) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	if err != nil {
		b.Fatalf("NewModel failed: %v", err)
	}
	l, err := limiter.New(m, limiter.WithVariant(variant))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	const pool = 1024
	rng := rand.New(rand.NewSource(3))
	Us := make([]euler.State, pool)
	Ps := make([]euler.State, pool)
	bs := make([]limiter.Bounds, pool)
	for i := range Us {
		Us[i] = m.FromPrimitive(0.5+1.5*rng.Float64(), rng.Float64()-0.5, 0.5+1.5*rng.Float64())
		Ps[i] = euler.State{0.4 * (rng.Float64() - 0.5), 0.4 * (rng.Float64() - 0.5), rng.Float64() - 0.5}
		bs[i] = limiter.Bounds{
			RhoMin: 0.8 * m.Density(Us[i]),
			RhoMax: 1.2 * m.Density(Us[i]),
			SMin:   0.9 * m.SpecificEntropy(Us[i]),
		}
	}

	// Prime the scratch so allocations do not pollute the loop.
	_ = l.Limit(bs[0], Us[0], Ps[0], 0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := i & (pool - 1)
		_ = l.Limit(bs[k], Us[k], Ps[k], 0, 1)
	}
}

// BenchmarkLimit_Density measures the closed-form density-only path.
func BenchmarkLimit_Density(b *testing.B) {
	benchmarkLimit(b, limiter.VariantDensity)
}

// BenchmarkLimit_SpecificEntropy measures the Newton/bisection path.
func BenchmarkLimit_SpecificEntropy(b *testing.B) {
	benchmarkLimit(b, limiter.VariantSpecificEntropy)
}

// BenchmarkAccumulate measures one full per-node accumulation sweep
// over a degree-6 stencil.
func BenchmarkAccumulate(b *testing.B) {
	m, err := euler.NewModel(1, euler.WithGamma(1.4))
	if err != nil {
		b.Fatalf("NewModel failed: %v", err)
	}
	l, err := limiter.New(m)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	rng := rand.New(rand.NewSource(5))
	Ui := m.FromPrimitive(1.0, 0.1, 1.0)
	const degree = 6
	Ujs := make([]euler.State, degree)
	bars := make([]euler.State, degree)
	ss := make([]float64, degree)
	for j := range Ujs {
		Ujs[j] = m.FromPrimitive(0.5+1.5*rng.Float64(), rng.Float64()-0.5, 0.5+1.5*rng.Float64())
		bars[j] = euler.NewState(1)
		Ui.Mean(Ujs[j], bars[j])
		ss[j] = m.SpecificEntropy(Ujs[j])
	}
	si := m.SpecificEntropy(Ui)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reset()
		l.Accumulate(Ui, Ui, Ui, si, true)
		for j := 0; j < degree; j++ {
			l.Accumulate(Ui, Ujs[j], bars[j], ss[j], false)
		}
		l.ResetVariations(0.1)
		for j := 0; j < degree; j++ {
			l.AccumulateVariations(0.2, 1.0)
		}
		l.ApplyRelaxation(1e-3)
	}
}
