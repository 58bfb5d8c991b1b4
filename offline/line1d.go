package offline

import "gonum.org/v1/gonum/mat"

// NewLine1D assembles the offline data of a uniform 1D mesh with
// continuous P1 Lagrange elements on [0, length]: cells elements,
// cells+1 nodes.
//
// Element matrices on a cell of width h (local nodes a, b):
//
//	mass  = h/6 · [[2, 1], [1, 2]]
//	c     =       [[−½, ½], [−½, ½]]    (∫ φ_a φ_b′)
//	β     = 1/h · [[1, −1], [−1, 1]]    (∫ φ_a′ φ_b′)
//
// The element contributions are scattered into dense accumulators and
// compressed into the diagonal-first CSR layout. The lumped mass is the
// row sum of the consistent mass matrix.
//
// Preconditions and validation (in order):
//  1. cells must be ≥ 2 (ErrTooFewCells).
//  2. length must be > 0 (ErrBadLength).
//
// Complexity: O(cells) assembly work on O(n²) dense scratch; the
// returned Data holds O(n) memory only.
func NewLine1D(cells int, length float64) (*Data, error) {
	if cells < 2 {
		return nil, ErrTooFewCells
	}
	if length <= 0 {
		return nil, ErrBadLength
	}

	n := cells + 1
	h := length / float64(cells)

	elemMass := mat.NewDense(2, 2, []float64{
		2 * h / 6, h / 6,
		h / 6, 2 * h / 6,
	})
	elemC := mat.NewDense(2, 2, []float64{
		-0.5, 0.5,
		-0.5, 0.5,
	})
	elemBeta := mat.NewDense(2, 2, []float64{
		1 / h, -1 / h,
		-1 / h, 1 / h,
	})

	massAcc := mat.NewDense(n, n, nil)
	cAcc := mat.NewDense(n, n, nil)
	betaAcc := mat.NewDense(n, n, nil)

	// Scatter: cell e couples global nodes e and e+1.
	for e := 0; e < cells; e++ {
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				i, j := e+a, e+b
				massAcc.Set(i, j, massAcc.At(i, j)+elemMass.At(a, b))
				cAcc.Set(i, j, cAcc.At(i, j)+elemC.At(a, b))
				betaAcc.Set(i, j, betaAcc.At(i, j)+elemBeta.At(a, b))
			}
		}
	}

	d := &Data{dim: 1, n: n}

	// Compress the tridiagonal pattern, diagonal entry first per row.
	d.rowPtr = make([]int, n+1)
	for i := 0; i < n; i++ {
		deg := 1 // self edge
		if i > 0 {
			deg++
		}
		if i < n-1 {
			deg++
		}
		d.rowPtr[i+1] = d.rowPtr[i] + deg
	}

	nnz := d.rowPtr[n]
	d.colIdx = make([]int, 0, nnz)
	d.cij = make([]float64, 0, nnz)
	d.betaij = make([]float64, 0, nnz)

	for i := 0; i < n; i++ {
		cols := []int{i}
		if i > 0 {
			cols = append(cols, i-1)
		}
		if i < n-1 {
			cols = append(cols, i+1)
		}
		for _, j := range cols {
			d.colIdx = append(d.colIdx, j)
			d.cij = append(d.cij, cAcc.At(i, j))
			d.betaij = append(d.betaij, betaAcc.At(i, j))
		}
	}

	// Lumped mass and nodal positions.
	d.massLumped = make([]float64, n)
	d.position = make([]float64, n)
	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}
	var lumped mat.VecDense
	lumped.MulVec(massAcc, ones)
	for i := 0; i < n; i++ {
		d.massLumped[i] = lumped.AtVec(i)
		d.position[i] = float64(i) * h
	}

	d.finalize()

	return d, nil
}
