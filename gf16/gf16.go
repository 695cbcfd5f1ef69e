// Package gf16 implements scalar arithmetic over GF(2^4), the extension
// field generated by the primitive polynomial x^4 + x + 1.
package gf16

import "fmt"

// Order is the number of elements in the field.
const Order = 16

// Degree is log2(Order).
const Degree = 4

// log is the discrete-log table; log[0] is never read (multiplication and
// division both special-case a zero operand before consulting it).
var log = [Order]uint8{0, 0, 1, 4, 2, 8, 5, 10, 3, 14, 9, 7, 6, 13, 11, 12}

// exp is the anti-log table over the cyclic multiplicative group of order
// 15; index 15 repeats index 0 so log-sum/difference never needs a branch
// beyond the single reduction below.
var exp = [Order]uint8{1, 2, 4, 8, 3, 6, 12, 11, 5, 10, 7, 14, 15, 13, 9, 1}

// Element is a field value in [0, Order).
type Element uint8

// New constructs an Element, panicking if v is out of range — the same
// invariant HoloStor's GF16 constructor asserts.
func New(v uint8) Element {
	if v >= Order {
		panic(fmt.Sprintf("gf16: value %d out of range", v))
	}
	return Element(v)
}

// Raw returns the element's integer encoding.
func (a Element) Raw() uint8 { return uint8(a) }

func (a Element) String() string { return fmt.Sprintf("%d", uint8(a)) }

// Add is GF(2^4) addition, i.e. bitwise XOR.
func (a Element) Add(b Element) Element { return a ^ b }

// Sub is GF(2^4) subtraction; characteristic 2 makes it identical to Add.
func (a Element) Sub(b Element) Element { return a ^ b }

// Neg is the additive inverse, a no-op in characteristic 2.
func (a Element) Neg() Element { return a }

// Mul is GF(2^4) multiplication via the log/antilog tables.
func (a Element) Mul(b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	i := int(log[a]) + int(log[b])
	if i >= 15 {
		i -= 15
	}
	return Element(exp[i])
}

// Div is GF(2^4) division. b must be nonzero; callers at the API boundary
// are responsible for rejecting zero divisors earlier (this only guards
// the internal invariant).
func (a Element) Div(b Element) Element {
	if b == 0 {
		panic("gf16: division by zero")
	}
	if a == 0 {
		return 0
	}
	i := int(log[a]) - int(log[b])
	if i < 0 {
		i += 15
	}
	return Element(exp[i])
}

// Inv returns the multiplicative inverse of a. a must be nonzero.
func (a Element) Inv() Element {
	return Element(1).Div(a)
}

// Equal reports whether two elements hold the same value.
func (a Element) Equal(b Element) bool { return a == b }
