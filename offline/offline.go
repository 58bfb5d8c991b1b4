package offline

import (
	"errors"
	"math"
)

// Sentinel errors returned by the offline package.
var (
	// ErrTooFewCells indicates a 1D mesh with fewer than 2 cells, for
	// which no node has a full interior stencil.
	ErrTooFewCells = errors.New("offline: mesh needs at least 2 cells")

	// ErrBadLength indicates a non-positive domain length.
	ErrBadLength = errors.New("offline: domain length must be positive")
)

// Data is the precomputed graph of one mesh: CSR connectivity with
// diagonal-first rows, per-node mass and length scale, and per-edge
// c_ij / β_ij coefficients. Immutable after construction.
type Data struct {
	dim int
	n   int

	rowPtr []int // n+1 offsets into the edge arrays
	colIdx []int // n_edges column indices, diagonal first per row

	cij       []float64 // n_edges × dim, flattened
	betaij    []float64 // n_edges
	transpose []int     // edge k ↦ edge index of (j, i)

	massLumped    []float64
	massLumpedInv []float64
	diameter      []float64 // hd_i = m_i^(1/dim)
	position      []float64 // n × dim nodal coordinates

	measure float64
}

// Dim returns the spatial dimension of the mesh.
func (d *Data) Dim() int { return d.dim }

// NumNodes returns the number of degrees of freedom.
func (d *Data) NumNodes() int { return d.n }

// NumEdges returns the total number of stored edges including the
// diagonal self edges.
func (d *Data) NumEdges() int { return len(d.colIdx) }

// RowRange returns the half-open edge index interval [begin, end) of
// row i. The first edge of every row is the diagonal self edge.
func (d *Data) RowRange(i int) (int, int) { return d.rowPtr[i], d.rowPtr[i+1] }

// Col returns the column (neighbor node) of edge k.
func (d *Data) Col(k int) int { return d.colIdx[k] }

// Degree returns the number of off-diagonal neighbors of node i.
func (d *Data) Degree(i int) int { return d.rowPtr[i+1] - d.rowPtr[i] - 1 }

// Cij returns the dim-vector transport coefficient of edge k. The
// returned slice aliases internal storage; callers must not mutate it.
func (d *Data) Cij(k int) []float64 { return d.cij[k*d.dim : (k+1)*d.dim] }

// Betaij returns the stiffness coefficient of edge k.
func (d *Data) Betaij(k int) float64 { return d.betaij[k] }

// Transpose returns the edge index of the mirrored edge: if k addresses
// (i, j), Transpose(k) addresses (j, i). Diagonal edges map to
// themselves.
func (d *Data) Transpose(k int) int { return d.transpose[k] }

// MassLumped returns the lumped mass m_i.
func (d *Data) MassLumped(i int) float64 { return d.massLumped[i] }

// MassLumpedInv returns 1/m_i.
func (d *Data) MassLumpedInv(i int) float64 { return d.massLumpedInv[i] }

// Diameter returns the node length scale hd_i = m_i^(1/dim) consumed
// by the limiter's bound relaxation.
func (d *Data) Diameter(i int) float64 { return d.diameter[i] }

// Position returns the coordinates of node i. The returned slice
// aliases internal storage; callers must not mutate it.
func (d *Data) Position(i int) []float64 { return d.position[i*d.dim : (i+1)*d.dim] }

// MeasureOfOmega returns the total mesh measure Σ m_i.
func (d *Data) MeasureOfOmega() float64 { return d.measure }

// finalize derives the inverse mass, the length scales and the total
// measure from the assembled lumped mass, and the transpose edge
// permutation from the CSR pattern.
func (d *Data) finalize() {
	d.massLumpedInv = make([]float64, d.n)
	d.diameter = make([]float64, d.n)
	d.measure = 0
	for i := 0; i < d.n; i++ {
		d.massLumpedInv[i] = 1. / d.massLumped[i]
		d.diameter[i] = math.Pow(d.massLumped[i], 1./float64(d.dim))
		d.measure += d.massLumped[i]
	}

	d.transpose = make([]int, len(d.colIdx))
	for i := 0; i < d.n; i++ {
		for k := d.rowPtr[i]; k < d.rowPtr[i+1]; k++ {
			j := d.colIdx[k]
			d.transpose[k] = d.edgeIndex(j, i)
		}
	}
}

// edgeIndex locates the edge (i, j) in row i; -1 when absent. The CSR
// pattern is symmetric by construction, so finalize never sees -1.
func (d *Data) edgeIndex(i, j int) int {
	for k := d.rowPtr[i]; k < d.rowPtr[i+1]; k++ {
		if d.colIdx[k] == j {
			return k
		}
	}

	return -1
}
