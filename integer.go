// integer.go: exact arbitrary-precision integers.
//
// Boo arithmetic never overflows and never loses precision. To keep the
// common case cheap, an Integer carries its value unboxed in an int64 for as
// long as it fits, and promotes to a math/big integer only when it must.
// Results of the big path are demoted back to the small representation when
// they fit, so equality and rendering never depend on how a value was
// computed.
package boo

import "math/big"

// Integer is an immutable arbitrary-precision integer.
//
// The zero value is 0. When large is non-nil it holds the value and small is
// meaningless; a large value never fits in an int64 (the constructors
// normalize).
type Integer struct {
	small int64
	large *big.Int
}

// IntegerFromInt64 builds an Integer from a machine integer.
func IntegerFromInt64(value int64) Integer {
	return Integer{small: value}
}

// ParseInteger parses a decimal string, with an optional leading '-'.
// Underscore separators must already have been stripped by the caller.
// Reports false if the string is not a valid decimal integer.
func ParseInteger(s string) (Integer, bool) {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{}, false
	}
	return normalize(value), true
}

func normalize(value *big.Int) Integer {
	if value.IsInt64() {
		return Integer{small: value.Int64()}
	}
	return Integer{large: value}
}

func (n Integer) big() *big.Int {
	if n.large != nil {
		return n.large
	}
	return big.NewInt(n.small)
}

// Add returns n + m.
func (n Integer) Add(m Integer) Integer {
	if n.large == nil && m.large == nil {
		if sum, ok := addSmall(n.small, m.small); ok {
			return Integer{small: sum}
		}
	}
	return normalize(new(big.Int).Add(n.big(), m.big()))
}

// Sub returns n - m.
func (n Integer) Sub(m Integer) Integer {
	if n.large == nil && m.large == nil {
		if diff, ok := subSmall(n.small, m.small); ok {
			return Integer{small: diff}
		}
	}
	return normalize(new(big.Int).Sub(n.big(), m.big()))
}

// Mul returns n * m.
func (n Integer) Mul(m Integer) Integer {
	if n.large == nil && m.large == nil {
		if product, ok := mulSmall(n.small, m.small); ok {
			return Integer{small: product}
		}
	}
	return normalize(new(big.Int).Mul(n.big(), m.big()))
}

// Neg returns -n.
func (n Integer) Neg() Integer {
	if n.large == nil && n.small != minInt64 {
		return Integer{small: -n.small}
	}
	return normalize(new(big.Int).Neg(n.big()))
}

// Cmp compares n and m, returning -1, 0 or +1.
func (n Integer) Cmp(m Integer) int {
	if n.large == nil && m.large == nil {
		switch {
		case n.small < m.small:
			return -1
		case n.small > m.small:
			return 1
		default:
			return 0
		}
	}
	return n.big().Cmp(m.big())
}

// Equal reports value equality.
func (n Integer) Equal(m Integer) bool {
	return n.Cmp(m) == 0
}

// String renders the value in decimal, with no precision loss.
func (n Integer) String() string {
	return n.big().String()
}

const minInt64 = -1 << 63

func addSmall(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

func subSmall(a, b int64) (int64, bool) {
	if b == minInt64 {
		return 0, false
	}
	return addSmall(a, -b)
}

func mulSmall(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == minInt64 || b == minInt64 {
		return 0, false
	}
	product := a * b
	if product/a != b {
		return 0, false
	}
	return product, true
}
