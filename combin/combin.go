// Package combin enumerates k-subsets of {0, ..., n-1} in the canonical
// decreasing-tuple order HoloStor's CombinIter uses.
package combin

import "github.com/MyronZimmerman/holostor/tuple"

// Iterator produces every k-subset of {0, ..., n-1} exactly once, each as
// a tuple.Tuple in strictly decreasing order.
type Iterator struct {
	n, k    int
	current []int // current(0) is the "least significant" (largest-valued) coordinate
	more    bool
}

// New creates an Iterator over k-subsets of {0, ..., n-1}. k must be at
// most n and at most tuple.MaxSize.
func New(n, k int) *Iterator {
	if k > n || k < 0 || k > tuple.MaxSize {
		return &Iterator{more: false}
	}
	cur := make([]int, k)
	for i := 0; i < k; i++ {
		cur[i] = k - 1 - i
	}
	return &Iterator{n: n, k: k, current: cur, more: true}
}

// next advances current(nStart) and everything below it, returning false
// once the enumeration is exhausted.
func (it *Iterator) next(nStart int) bool {
	if nStart == it.k {
		return false // the most significant coordinate rolled over
	}
	if it.current[nStart] < it.n-1-nStart {
		it.current[nStart]++
	} else {
		if !it.next(nStart + 1) {
			return false
		}
		it.current[nStart] = it.current[nStart+1] + 1
	}
	return true
}

// Next yields the next k-subset, or ok=false when exhausted.
func (it *Iterator) Next() (t tuple.Tuple, ok bool) {
	if !it.more {
		return tuple.Tuple{}, false
	}
	t = tuple.New(it.current)
	it.more = it.next(0)
	return t, true
}

// Count returns C(n, k), the number of tuples New(n, k) will produce.
func Count(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
