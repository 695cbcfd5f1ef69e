package coding

import (
	"github.com/MyronZimmerman/holostor/bitslice"
	"github.com/MyronZimmerman/holostor/encoding"
	"github.com/MyronZimmerman/holostor/matrix"
	"github.com/MyronZimmerman/holostor/tuple"
)

// Matrix is one recoverable fault subset's coding matrix: which blocks it
// rebuilds (RowID, in fault-tuple order), which surviving blocks it reads
// (ColID, ascending), and the bit-slice multiplier driving each
// (row, col) pair.
type Matrix struct {
	RowID []int
	ColID []int
	ops   []bitslice.Multiplier // row-major, len(RowID) x len(ColID)
}

// BuildMatrix compiles the coding matrix for fault tuple faults against
// encoding matrix e. ok is false if no recovery matrix exists (never
// happens for a legally constructed MDS encoding matrix and a fault
// count within K, but is checked rather than assumed).
func BuildMatrix(e *matrix.Matrix, faults tuple.Tuple) (*Matrix, bool) {
	rec, ok := encoding.Build(e, faults)
	if !ok {
		return nil, false
	}
	rowID := append([]int(nil), faults.Members()...)
	cols := len(rec.ColID)
	ops := make([]bitslice.Multiplier, len(rowID)*cols)
	for i, row := range rowID {
		for j := 0; j < cols; j++ {
			ops[i*cols+j] = bitslice.NewMultiplier(rec.C.At(row, j))
		}
	}
	return &Matrix{RowID: rowID, ColID: rec.ColID, ops: ops}, true
}

func (m *Matrix) op(i, j int) bitslice.Multiplier { return m.ops[i*len(m.ColID)+j] }

// Rebuild restores block(s) of blocks, a slice of N+K block buffers, using
// the surviving blocks named by ColID. If which >= 0, only the row whose
// RowID equals which is rebuilt; if which < 0, every row is. Destination
// blocks are zeroed first because the XOR kernel only accumulates.
func (m *Matrix) Rebuild(blocks [][]byte, which int) {
	if which >= 0 {
		bitslice.Zero(blocks[which])
	} else {
		for _, row := range m.RowID {
			bitslice.Zero(blocks[row])
		}
	}
	for i, row := range m.RowID {
		if which >= 0 && row != which {
			continue
		}
		for j, col := range m.ColID {
			bitslice.MultiplyAdd(m.op(i, j), blocks[row], blocks[col])
		}
	}
}

// EncodeDelta applies this (single-row) coding matrix's delta-update
// path: newECC = oldECC, then newECC ^= M(0, deltaIdx) * deltaBlock. It is
// used for the coding matrix whose sole fault is one ECC block.
func (m *Matrix) EncodeDelta(deltaIdx int, deltaBlock, oldECC, newECC []byte) {
	copy(newECC, oldECC)
	col := -1
	for j, c := range m.ColID {
		if c == deltaIdx {
			col = j
			break
		}
	}
	if col < 0 {
		return
	}
	bitslice.MultiplyAdd(m.op(0, col), newECC, deltaBlock)
}
