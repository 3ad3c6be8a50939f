package number

import (
	"maps"
	"slices"

	"github.com/cottand/surd/surderr"
)

// frac is a small exponent fraction, d > 0
type frac struct {
	n, d int64
}

func (f frac) add(o frac) (frac, error) {
	l, err := lcm64(f.d, o.d)
	if err != nil {
		return frac{}, err
	}
	a, err := mul64(f.n, l/f.d)
	if err != nil {
		return frac{}, err
	}
	b, err := mul64(o.n, l/o.d)
	if err != nil {
		return frac{}, err
	}
	s, err := add64(a, b)
	if err != nil {
		return frac{}, err
	}
	g := gcd64(s, l)
	if g == 0 {
		return frac{n: 0, d: 1}, nil
	}
	return frac{n: s / g, d: l / g}, nil
}

// builder accumulates sign * num/den * prod base^exp and produces the canonical Number.
type builder struct {
	num, den int64
	exps     map[int64]frac
}

func newBuilder(num, den int64) *builder {
	return &builder{num: num, den: den, exps: make(map[int64]frac)}
}

func (b *builder) addPower(base int64, e frac) error {
	if base == 1 || e.n == 0 {
		return nil
	}
	cur, ok := b.exps[base]
	if !ok {
		cur = frac{n: 0, d: 1}
	}
	sum, err := cur.add(e)
	if err != nil {
		return err
	}
	b.exps[base] = sum
	return nil
}

// addInteger records v^e for an integer v >= 1 by splitting it into prime powers
func (b *builder) addInteger(v int64, e frac) error {
	for _, pp := range factorize(v) {
		pe, err := mul64(pp.exp, e.n)
		if err != nil {
			return err
		}
		if err := b.addPower(pp.base, frac{n: pe, d: e.d}); err != nil {
			return err
		}
	}
	return nil
}

// addRadicals records the radical part of n, with every root exponent scaled by scale
func (b *builder) addRadicals(n Number, scale frac) error {
	itr := n.rads().Iterator()
	for !itr.Done() {
		index, radicand, _ := itr.Next()
		d, err := mul64(index, scale.d)
		if err != nil {
			return err
		}
		if err := b.addInteger(radicand, frac{n: scale.n, d: d}); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) finish() (Number, error) {
	if b.den == 0 {
		return Number{}, surderr.New(surderr.DivisionByZero, "division by zero")
	}
	if b.num == 0 {
		return Zero, nil
	}
	num, den := b.num, b.den
	if den < 0 {
		num, den = -num, -den
	}
	radicands := make(map[int64]int64)
	for _, base := range slices.Sorted(maps.Keys(b.exps)) {
		e := b.exps[base]
		g := gcd64(e.n, e.d)
		e = frac{n: e.n / g, d: e.d / g}
		whole := floorDiv(e.n, e.d)
		rem := e.n - whole*e.d
		var err error
		switch {
		case whole > 0:
			p, perr := pow64(base, whole)
			if perr != nil {
				return Number{}, perr
			}
			num, err = mul64(num, p)
		case whole < 0:
			p, perr := pow64(base, -whole)
			if perr != nil {
				return Number{}, perr
			}
			den, err = mul64(den, p)
		}
		if err != nil {
			return Number{}, err
		}
		if rem == 0 {
			continue
		}
		p, err := pow64(base, rem)
		if err != nil {
			return Number{}, err
		}
		r, ok := radicands[e.d]
		if !ok {
			r = 1
		}
		if radicands[e.d], err = mul64(r, p); err != nil {
			return Number{}, err
		}
	}
	g := gcd64(num, den)
	out := Number{num: num / g, den: den / g, radicals: emptyRadicals}
	for index, radicand := range radicands {
		if radicand != 1 {
			out.radicals = out.radicals.Set(index, radicand)
		}
	}
	return out, nil
}

func rational(num, den int64) (Number, error) {
	if den == 0 {
		return Number{}, surderr.New(surderr.DivisionByZero, "division by zero in %d/0", num)
	}
	if num == 0 {
		return Zero, nil
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd64(num, den)
	return Number{num: num / g, den: den / g, radicals: emptyRadicals}, nil
}
