package coding

import (
	"github.com/samber/lo"

	"github.com/MyronZimmerman/holostor/combin"
	"github.com/MyronZimmerman/holostor/matrix"
)

// Table holds one Matrix for every recoverable fault subset of a
// configuration (every non-empty subset of size 1..K of the N+K blocks),
// plus a dense Mask2Index -> slot lookup, built once at session
// construction so Rebuild/EncodeDelta are O(1) table lookups.
type Table struct {
	n, k     int
	matrices []*Matrix
	lookup   []int32 // indexed by Mask2Index(mask, n+k); -1 means absent
}

const absent = -1

// BuildTable constructs the full coding table for an (n, k) configuration
// from encoding matrix e. ok is false only if a matrix allocation failed
// along the way (out of memory), mirroring HoloStor's CodingTable
// constructor.
func BuildTable(e *matrix.Matrix, n, k int) (*Table, bool) {
	base := n + k
	maxHash := MaxHash(n, k)
	t := &Table{
		n:      n,
		k:      k,
		lookup: lo.Fill(make([]int32, maxHash+1), absent),
	}

	for size := 1; size <= k; size++ {
		it := combin.New(base, size)
		for {
			faults, ok := it.Next()
			if !ok {
				break
			}
			cm, ok := BuildMatrix(e, faults)
			if !ok {
				return nil, false
			}
			idx := Mask2Index(faults.Mask(), base)
			t.matrices = append(t.matrices, cm)
			t.lookup[idx] = int32(len(t.matrices) - 1)
		}
	}
	return t, true
}

// Lookup returns the coding matrix for fault mask, or nil if the mask is
// unrecoverable (too many faulty blocks, or mask not covered — including
// mask == 0, which callers should special-case before reaching here).
func (t *Table) Lookup(mask uint32) *Matrix {
	idx := Mask2Index(mask, t.n+t.k)
	if idx < 0 || idx >= len(t.lookup) {
		return nil
	}
	slot := t.lookup[idx]
	if slot == absent {
		return nil
	}
	return t.matrices[slot]
}
