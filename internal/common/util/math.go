package util

import "golang.org/x/exp/constraints"

// CeilDiv returns n/d rounded up. d must be positive.
func CeilDiv[T constraints.Integer](n, d T) T {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}
