package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyronZimmerman/holostor/combin"
	"github.com/MyronZimmerman/holostor/encoding"
	"github.com/MyronZimmerman/holostor/matrix"
	"github.com/MyronZimmerman/holostor/tuple"
)

func TestSystematicAndParityRows(t *testing.T) {
	n, k := 5, 3
	e := encoding.BuildMatrix(n, k)
	require.False(t, e.IsNil())
	require.Equal(t, n+k, e.Rows())
	require.Equal(t, n, e.Cols())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0
			if i == j {
				want = 1
			}
			require.EqualValues(t, want, e.At(i, j).Raw())
		}
	}
	for j := 0; j < n; j++ {
		require.EqualValues(t, 1, e.At(n, j).Raw())
	}
}

// TestMDS checks every N x N sub-matrix of the (N+K) x N encoding matrix
// is invertible, for every legal (N, K) pair.
func TestMDS(t *testing.T) {
	for n := 1; n <= 16; n++ {
		for k := 1; k <= 4; k++ {
			if n+k > 17 {
				continue
			}
			e := encoding.BuildMatrix(n, k)
			require.False(t, e.IsNil(), "n=%d k=%d", n, k)

			// Each N x N sub-matrix keeps N of the N+K rows; enumerate the K
			// rows left out, since combin.New only handles subsets of size
			// at most tuple.MaxSize.
			it := combin.New(n+k, k)
			for {
				dropped, ok := it.Next()
				if !ok {
					break
				}
				rows := make([]int, 0, n)
				for r := 0; r < n+k; r++ {
					if dropped.Mask()&(1<<uint(r)) == 0 {
						rows = append(rows, r)
					}
				}
				sub := matrix.New(n, n)
				for i, r := range rows {
					for c := 0; c < n; c++ {
						sub.Set(i, c, e.At(r, c))
					}
				}
				out := matrix.New(n, n)
				require.NoError(t, sub.Inverse(out), "n=%d k=%d rows=%v", n, k, rows)
			}
		}
	}
}

func TestRecoveryMatrixColIDIsLowestSurvivors(t *testing.T) {
	n, k := 4, 2
	e := encoding.BuildMatrix(n, k)
	faults := tuple.New([]int{5, 1}) // decreasing: blocks 5 and 1 are bad
	rec, ok := encoding.Build(e, faults)
	require.True(t, ok)
	require.Equal(t, []int{0, 2, 3, 4}, rec.ColID)
}
