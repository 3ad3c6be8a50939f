package number

import (
	"math"
	"math/bits"

	"github.com/cottand/surd/surderr"
)

// All integer arithmetic stays within [-MaxInt64, MaxInt64] so that negation never overflows.

func overflow(op string, a, b int64) error {
	return surderr.New(surderr.Overflow, "integer overflow computing %d %s %d", a, op, b)
}

func abs64(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

func mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul64(abs64(a), abs64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, overflow("*", a, b)
	}
	r := int64(lo)
	if (a < 0) != (b < 0) {
		r = -r
	}
	return r, nil
}

func add64(a, b int64) (int64, error) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) || s == math.MinInt64 {
		return 0, overflow("+", a, b)
	}
	return s, nil
}

func sub64(a, b int64) (int64, error) {
	return add64(a, -b)
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	return mul64(a/gcd64(a, b), b)
}

func pow64(base int64, exp int64) (int64, error) {
	result := int64(1)
	for exp > 0 {
		var err error
		if exp&1 == 1 {
			if result, err = mul64(result, base); err != nil {
				return 0, err
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, err = mul64(base, base); err != nil {
				return 0, err
			}
		}
	}
	return result, nil
}

// floorDiv rounds towards negative infinity, d > 0
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

// powAtMost reports whether r^k <= n, treating overflow as exceeding n
func powAtMost(r, k, n int64) bool {
	p, err := pow64(r, k)
	return err == nil && p <= n
}

// iroot returns floor(n^(1/k)) for n >= 0
func iroot(n, k int64) int64 {
	if n < 2 || k == 1 {
		return n
	}
	r := int64(math.Pow(float64(n), 1/float64(k)))
	if r < 1 {
		r = 1
	}
	for r > 1 && !powAtMost(r, k, n) {
		r--
	}
	for powAtMost(r+1, k, n) {
		r++
	}
	return r
}
