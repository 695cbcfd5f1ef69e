// Package encoding builds the HoloStor encoding matrix (systematic +
// parity + Cauchy rows, §4.4) and, from it, the per-fault recovery
// matrix (§4.5) that the coding layer compiles into bit-slice programs.
package encoding

import (
	"github.com/samber/lo"

	"github.com/MyronZimmerman/holostor/gf16"
	"github.com/MyronZimmerman/holostor/matrix"
	"github.com/MyronZimmerman/holostor/tuple"
)

// BuildMatrix returns the (n+k) x n encoding matrix E: n systematic rows,
// one all-ones parity row, then k-1 Cauchy rows. The result is MDS by
// construction (spec.md §4.4): every n x n sub-matrix of E is invertible.
func BuildMatrix(n, k int) *matrix.Matrix {
	e := matrix.New(n+k, n)
	if e.IsNil() {
		return e
	}
	for i := 0; i < n; i++ {
		e.Set(i, i, gf16.New(1))
	}
	for j := 0; j < n; j++ {
		e.Set(n, j, gf16.New(1))
	}
	one := gf16.New(1)
	for x := 0; x < k-1; x++ {
		alpha := gf16.New(uint8(x))
		for j := 0; j < n; j++ {
			beta := gf16.New(uint8(j + k - 1))
			e.Set(n+1+x, j, one.Div(alpha.Add(beta)))
		}
	}
	return e
}

// Recovery is the output of Build: the coefficients
// driving every block of the reliability group from the surviving
// blocks named by ColID, plus the bookkeeping needed to select the rows
// that rebuild a specific fault set.
type Recovery struct {
	ColID []int          // the n lowest-numbered surviving block indices, ascending
	C     *matrix.Matrix // (n+k) x n: row i expresses block i from the ColID columns
}

// Build computes the recovery matrix for the given fault tuple against
// encoding matrix e (an (n+k) x n matrix as produced by BuildMatrix).
// faults.Dim() must be at most k; ok is false if the n x n survivor
// sub-matrix turns out not to be invertible (which MDS construction
// guarantees cannot happen for a legal configuration).
func Build(e *matrix.Matrix, faults tuple.Tuple) (Recovery, bool) {
	n := e.Cols()
	total := e.Rows()
	faulty := make([]bool, total)
	for _, idx := range faults.Members() {
		faulty[idx] = true
	}

	survivors := lo.Filter(lo.Range(total), func(row int, _ int) bool { return !faulty[row] })
	if len(survivors) < n {
		return Recovery{}, false
	}
	colID := survivors[:n]

	b := matrix.New(n, n)
	if b.IsNil() {
		return Recovery{}, false
	}
	for i, row := range colID {
		for j := 0; j < n; j++ {
			b.Set(i, j, e.At(row, j))
		}
	}

	bInv := matrix.New(n, n)
	if err := b.Inverse(bInv); err != nil {
		return Recovery{}, false
	}

	c := matrix.Mul(e, bInv)
	if c.IsNil() {
		return Recovery{}, false
	}
	return Recovery{ColID: colID, C: c}, true
}
