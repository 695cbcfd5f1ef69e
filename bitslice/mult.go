package bitslice

import "github.com/MyronZimmerman/holostor/gf16"

// xorOp is one "dst slice i ^= src slice j" step of a lowered GF(2^4)
// multiplication program.
type xorOp struct {
	dst, src int
}

// Multiplier is a bit-slice multiplier descriptor: a raw GF(2^4) value
// that indexes one of the 16 fixed XOR programs implementing the linear
// map y <- v*x over the polynomial basis {1, a, a^2, a^3}.
type Multiplier struct {
	v gf16.Element
}

// NewMultiplier wraps a field value as a Multiplier.
func NewMultiplier(v gf16.Element) Multiplier { return Multiplier{v: v} }

// Value returns the underlying field element.
func (m Multiplier) Value() gf16.Element { return m.v }

// IsZero reports whether this multiplier's program is empty (y = 0*x = 0).
func (m Multiplier) IsZero() bool { return m.v == 0 }

// programs holds the 16 fixed XOR programs from spec.md §4.8, one per
// GF(2^4) value, each enumerated as (dst slice, src slice) pairs. They are
// the 4x4 GF(2) matrices representing left-multiplication by v on the
// basis {1, a, a^2, a^3} with reduction by x^4 + x + 1.
var programs = [16][]xorOp{
	0:  {},
	1:  {{0, 0}, {1, 1}, {2, 2}, {3, 3}},
	2:  {{0, 3}, {1, 0}, {1, 3}, {2, 1}, {3, 2}},
	3:  {{0, 0}, {0, 3}, {1, 0}, {1, 1}, {1, 3}, {2, 1}, {2, 2}, {3, 2}, {3, 3}},
	4:  {{0, 2}, {1, 2}, {1, 3}, {2, 0}, {2, 3}, {3, 1}},
	5:  {{0, 0}, {0, 2}, {1, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 2}, {2, 3}, {3, 1}, {3, 3}},
	6:  {{0, 2}, {0, 3}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 3}, {3, 1}, {3, 2}},
	7:  {{0, 0}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}},
	8:  {{0, 1}, {1, 1}, {1, 2}, {2, 2}, {2, 3}, {3, 0}, {3, 3}},
	9:  {{0, 0}, {0, 1}, {1, 2}, {2, 3}, {3, 0}},
	10: {{0, 1}, {0, 3}, {1, 0}, {1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}, {3, 0}, {3, 2}, {3, 3}},
	11: {{0, 0}, {0, 1}, {0, 3}, {1, 0}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 0}, {3, 2}},
	12: {{0, 1}, {0, 2}, {1, 1}, {1, 3}, {2, 0}, {2, 2}, {3, 0}, {3, 1}, {3, 3}},
	13: {{0, 0}, {0, 1}, {0, 2}, {1, 3}, {2, 0}, {3, 0}, {3, 1}},
	14: {{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {2, 0}, {2, 1}, {2, 2}, {3, 0}, {3, 1}, {3, 2}, {3, 3}},
	15: {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {2, 0}, {2, 1}, {3, 0}, {3, 1}, {3, 2}},
}

// program returns this multiplier's fixed XOR step list.
func (m Multiplier) program() []xorOp { return programs[m.v] }
