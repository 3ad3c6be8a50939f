package number

// trialLimit bounds trial division. A cofactor left over past the limit is kept as a single
// base (after checking it for being a perfect power), which keeps factorization fast while
// staying deterministic for a given value.
const trialLimit = 1 << 20

type primePower struct {
	base, exp int64
}

// factorize splits n >= 1 into ascending prime powers
func factorize(n int64) []primePower {
	var out []primePower
	if n < 0 {
		n = -n
	}
	take := func(p int64) {
		e := int64(0)
		for n%p == 0 {
			n /= p
			e++
		}
		if e > 0 {
			out = append(out, primePower{base: p, exp: e})
		}
	}
	take(2)
	p := int64(3)
	for ; p <= trialLimit && p*p <= n; p += 2 {
		take(p)
	}
	if n == 1 {
		return out
	}
	if p*p > n {
		return append(out, primePower{base: n, exp: 1})
	}
	for k := int64(62); k >= 2; k-- {
		r := iroot(n, k)
		if r > 1 && powAtMost(r, k, n) && !powAtMost(r, k, n-1) {
			return append(out, primePower{base: r, exp: k})
		}
	}
	return append(out, primePower{base: n, exp: 1})
}
