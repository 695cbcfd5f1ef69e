// Package matrix implements dense matrix arithmetic over gf16.Element:
// addition, multiplication, transpose, determinant and Gauss-Jordan
// inversion with row pivoting.
package matrix

import (
	"errors"

	"github.com/MyronZimmerman/holostor/gf16"
)

// ErrNotInvertible is returned by Inverse when the matrix is singular.
var ErrNotInvertible = errors.New("matrix: not invertible")

// Matrix is a dense, row-major matrix of gf16.Element. The zero value is
// Nil (see IsNil).
type Matrix struct {
	rows, cols int
	data       []gf16.Element // nil when the matrix is Nil
}

// New allocates an m x n matrix of zero elements. m or n of zero yields a
// Nil matrix, matching HoloStor's setDim(0,0) convention.
func New(m, n int) *Matrix {
	mx := &Matrix{rows: m, cols: n}
	if m <= 0 || n <= 0 {
		mx.rows, mx.cols = 0, 0
		return mx
	}
	mx.data = make([]gf16.Element, m*n)
	return mx
}

// Nil returns a matrix in the degraded Nil state.
func Nil() *Matrix { return &Matrix{} }

// IsNil reports whether the matrix is in the degraded "propagate failure"
// state — any dimensional allocation failure, or an explicit SetNil, puts
// it there.
func (m *Matrix) IsNil() bool { return m == nil || m.data == nil }

// SetNil forces the matrix into the Nil state, releasing its storage.
func (m *Matrix) SetNil() {
	m.rows, m.cols = 0, 0
	m.data = nil
}

// Rows returns the row count (0 for Nil).
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count (0 for Nil).
func (m *Matrix) Cols() int { return m.cols }

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) gf16.Element { return m.data[i*m.cols+j] }

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v gf16.Element) { m.data[i*m.cols+j] = v }

// Clone returns a deep copy, preserving Nil-ness.
func (m *Matrix) Clone() *Matrix {
	if m.IsNil() {
		return Nil()
	}
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	out := New(n, n)
	if out.IsNil() {
		return out
	}
	for i := 0; i < n; i++ {
		out.Set(i, i, gf16.New(1))
	}
	return out
}

// Add computes a+b elementwise. Dimension mismatch or either operand Nil
// propagates to a Nil result.
func Add(a, b *Matrix) *Matrix {
	if a.IsNil() || b.IsNil() || a.rows != b.rows || a.cols != b.cols {
		return Nil()
	}
	out := New(a.rows, a.cols)
	if out.IsNil() {
		return out
	}
	for i := range out.data {
		out.data[i] = a.data[i].Add(b.data[i])
	}
	return out
}

// Mul computes a*b. a.cols must equal b.rows; either operand Nil or a
// dimension mismatch propagates to a Nil result.
func Mul(a, b *Matrix) *Matrix {
	if a.IsNil() || b.IsNil() || a.cols != b.rows {
		return Nil()
	}
	out := New(a.rows, b.cols)
	if out.IsNil() {
		return out
	}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var sum gf16.Element
			for k := 0; k < a.cols; k++ {
				sum = sum.Add(a.At(i, k).Mul(b.At(k, j)))
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	if m.IsNil() {
		return Nil()
	}
	out := New(m.cols, m.rows)
	if out.IsNil() {
		return out
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Determinant computes det(m) by reducing an upper-triangular form. m must
// be square; a Nil matrix has determinant 0.
func (m *Matrix) Determinant() gf16.Element {
	if m.IsNil() || !m.IsSquare() {
		return 0
	}
	work := m.Clone()
	n := work.rows
	det := gf16.New(1)
	for k := 0; k < n; k++ {
		if work.At(k, k) == 0 {
			pivot := -1
			for i := k + 1; i < n; i++ {
				if work.At(i, k) != 0 {
					pivot = i
					break
				}
			}
			if pivot < 0 {
				return 0
			}
			work.swapRows(k, pivot)
		}
		det = det.Mul(work.At(k, k))
		for i := k + 1; i < n; i++ {
			factor := work.At(i, k).Div(work.At(k, k))
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				work.Set(i, j, work.At(i, j).Sub(factor.Mul(work.At(k, j))))
			}
		}
	}
	return det
}

func (m *Matrix) swapRows(a, b int) {
	if a == b {
		return
	}
	rowA := m.data[a*m.cols : a*m.cols+m.cols]
	rowB := m.data[b*m.cols : b*m.cols+m.cols]
	for j := range rowA {
		rowA[j], rowB[j] = rowB[j], rowA[j]
	}
}

// Inverse computes m^-1 by Gauss-Jordan elimination with row pivoting,
// writing the result into out. It reports ErrNotInvertible (and sets out
// Nil) if m is singular. m must be square.
func (m *Matrix) Inverse(out *Matrix) error {
	if m.IsNil() || !m.IsSquare() {
		out.SetNil()
		return ErrNotInvertible
	}
	n := m.rows
	*out = *New(n, n)
	if out.IsNil() {
		return ErrNotInvertible
	}

	aug := New(n, 2*n)
	if aug.IsNil() {
		out.SetNil()
		return ErrNotInvertible
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, m.At(i, j))
		}
		aug.Set(i, n+i, gf16.New(1))
	}

	for k := 0; k < n; k++ {
		if aug.At(k, k) == 0 {
			pivot := -1
			for i := k + 1; i < n; i++ {
				if aug.At(i, k) != 0 {
					pivot = i
					break
				}
			}
			if pivot < 0 {
				out.SetNil()
				return ErrNotInvertible
			}
			aug.swapRows(k, pivot)
		}
		scale := aug.At(k, k)
		for j := k; j < 2*n; j++ {
			aug.Set(k, j, aug.At(k, j).Div(scale))
		}
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			factor := aug.At(i, k)
			if factor == 0 {
				continue
			}
			for j := k; j < 2*n; j++ {
				aug.Set(i, j, aug.At(i, j).Sub(factor.Mul(aug.At(k, j))))
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, aug.At(i, n+j))
		}
	}
	return nil
}
