package coding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyronZimmerman/holostor/coding"
	"github.com/MyronZimmerman/holostor/combin"
	"github.com/MyronZimmerman/holostor/encoding"
	"github.com/MyronZimmerman/holostor/tuple"
)

// TestMask2IndexIsInjective checks that distinct masks of popcount <= k
// fold to distinct fingerprints, each within [0, MaxHash(n,k)].
func TestMask2IndexIsInjective(t *testing.T) {
	n, k := 6, 3
	base := n + k
	maxHash := coding.MaxHash(n, k)

	seen := map[int]uint32{}
	for size := 1; size <= k; size++ {
		it := combin.New(base, size)
		for {
			faults, ok := it.Next()
			if !ok {
				break
			}
			mask := faults.Mask()
			idx := coding.Mask2Index(mask, base)
			require.GreaterOrEqual(t, idx, 0)
			require.LessOrEqual(t, idx, maxHash)
			if prev, ok := seen[idx]; ok {
				require.Equal(t, prev, mask, "collision at idx=%d", idx)
			}
			seen[idx] = mask
		}
	}
}

func TestMask2IndexOfZeroIsZero(t *testing.T) {
	require.Equal(t, 0, coding.Mask2Index(0, 7))
}

func buildBlocks(n, k, blockSize int) [][]byte {
	blocks := make([][]byte, n+k)
	for i := range blocks {
		blocks[i] = make([]byte, blockSize)
	}
	for i := 0; i < n; i++ {
		for j := range blocks[i] {
			blocks[i][j] = byte((i*31 + j*7) % 251)
		}
	}
	return blocks
}

// TestRebuildSingleRowMatchesFullRebuild checks that rebuilding one row at
// a time (which >= 0) reproduces the same bytes as rebuilding every row of
// the fault tuple at once (which == -1).
func TestRebuildSingleRowMatchesFullRebuild(t *testing.T) {
	n, k, blockSize := 5, 2, 64
	e := encoding.BuildMatrix(n, k)
	faults := tuple.New([]int{4, 1})
	cm, ok := coding.BuildMatrix(e, faults)
	require.True(t, ok)

	blocksAll := buildBlocks(n, k, blockSize)
	cm.Rebuild(blocksAll, -1)

	blocksEach := buildBlocks(n, k, blockSize)
	for _, row := range faults.Members() {
		cm.Rebuild(blocksEach, row)
	}

	for _, row := range faults.Members() {
		require.Equal(t, blocksAll[row], blocksEach[row], "row %d", row)
	}
}

func TestEncodeDeltaMatchesRecompute(t *testing.T) {
	n, k, blockSize := 4, 2, 64
	e := encoding.BuildMatrix(n, k)
	eccIdx := n // the first ECC row
	faults := tuple.New([]int{eccIdx})
	cm, ok := coding.BuildMatrix(e, faults)
	require.True(t, ok)

	blocks := buildBlocks(n, k, blockSize)
	cm.Rebuild(blocks, -1)
	oldECC := append([]byte(nil), blocks[eccIdx]...)

	deltaIdx := 2
	delta := make([]byte, blockSize)
	for i := range delta {
		delta[i] = byte(i*3 + 1)
	}
	newData := make([]byte, blockSize)
	for i := range newData {
		newData[i] = blocks[deltaIdx][i] ^ delta[i]
	}

	newECC := make([]byte, blockSize)
	cm.EncodeDelta(deltaIdx, delta, oldECC, newECC)

	blocksRecomputed := buildBlocks(n, k, blockSize)
	blocksRecomputed[deltaIdx] = newData
	cm.Rebuild(blocksRecomputed, eccIdx)

	require.Equal(t, blocksRecomputed[eccIdx], newECC)
}

func TestTableLookupMissingMaskIsNil(t *testing.T) {
	n, k := 4, 1
	e := encoding.BuildMatrix(n, k)
	table, ok := coding.BuildTable(e, n, k)
	require.True(t, ok)

	// Two simultaneous faults exceed K=1 and must be unrecoverable.
	require.Nil(t, table.Lookup((1<<0)|(1<<1)))
}

func TestTableLookupCoversEverySingleFault(t *testing.T) {
	n, k := 4, 2
	e := encoding.BuildMatrix(n, k)
	table, ok := coding.BuildTable(e, n, k)
	require.True(t, ok)

	for i := 0; i < n+k; i++ {
		cm := table.Lookup(1 << uint(i))
		require.NotNil(t, cm, "block %d", i)
		require.Equal(t, []int{i}, cm.RowID)
	}
}
