package number

import (
	"github.com/cottand/surd/surderr"
)

// Add fails with surderr.IncompatibleRadicals unless both operands share the same radical
// part; only numbers with matching irrational parts can be combined.
func (n Number) Add(o Number) (Number, error) {
	if n.IsZero() {
		return o, nil
	}
	if o.IsZero() {
		return n, nil
	}
	if !sameRadicals(n, o) {
		return Number{}, surderr.New(surderr.IncompatibleRadicals, "cannot add %v and %v", n, o)
	}
	l, err := lcm64(n.denom(), o.denom())
	if err != nil {
		return Number{}, err
	}
	a, err := mul64(n.num, l/n.denom())
	if err != nil {
		return Number{}, err
	}
	b, err := mul64(o.num, l/o.denom())
	if err != nil {
		return Number{}, err
	}
	s, err := add64(a, b)
	if err != nil {
		return Number{}, err
	}
	out, err := rational(s, l)
	if err != nil || out.IsZero() {
		return out, err
	}
	out.radicals = n.rads()
	return out, nil
}

func (n Number) Sub(o Number) (Number, error) {
	return n.Add(o.Neg())
}

func (n Number) Mul(o Number) (Number, error) {
	if n.IsZero() || o.IsZero() {
		return Zero, nil
	}
	g1 := gcd64(n.num, o.denom())
	g2 := gcd64(o.num, n.denom())
	num, err := mul64(n.num/g1, o.num/g2)
	if err != nil {
		return Number{}, err
	}
	den, err := mul64(n.denom()/g2, o.denom()/g1)
	if err != nil {
		return Number{}, err
	}
	if n.IsRational() && o.IsRational() {
		return rational(num, den)
	}
	b := newBuilder(num, den)
	if err := b.addRadicals(n, frac{n: 1, d: 1}); err != nil {
		return Number{}, err
	}
	if err := b.addRadicals(o, frac{n: 1, d: 1}); err != nil {
		return Number{}, err
	}
	return b.finish()
}

// Inv returns 1/n, moving every radical out of the denominator
func (n Number) Inv() (Number, error) {
	if n.IsZero() {
		return Number{}, surderr.New(surderr.DivisionByZero, "division by zero")
	}
	num, den := n.denom(), n.num
	if den < 0 {
		num, den = -num, -den
	}
	if n.IsRational() {
		return rational(num, den)
	}
	b := newBuilder(num, den)
	if err := b.addRadicals(n, frac{n: -1, d: 1}); err != nil {
		return Number{}, err
	}
	return b.finish()
}

func (n Number) Div(o Number) (Number, error) {
	inv, err := o.Inv()
	if err != nil {
		return Number{}, err
	}
	return n.Mul(inv)
}

// Root returns the principal real index-th root of n.
// Even roots of negative numbers fail with surderr.NegativeEvenRoot.
func (n Number) Root(index int64) (Number, error) {
	if index < 1 {
		return Number{}, surderr.New(surderr.IrrationalExponent, "invalid root index %d", index)
	}
	if index == 1 || n.IsZero() {
		return n, nil
	}
	sign := int64(1)
	if n.num < 0 {
		if index%2 == 0 {
			return Number{}, surderr.New(surderr.NegativeEvenRoot, "root of index %d of negative %v", index, n)
		}
		sign = -1
	}
	b := newBuilder(sign, 1)
	scale := frac{n: 1, d: index}
	if err := b.addInteger(abs(n.num), scale); err != nil {
		return Number{}, err
	}
	if err := b.addInteger(n.denom(), frac{n: -1, d: index}); err != nil {
		return Number{}, err
	}
	if err := b.addRadicals(n, scale); err != nil {
		return Number{}, err
	}
	return b.finish()
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// Raise returns n^power for a rational power p/q: the q-th root is taken first and the result
// is then raised to p by repeated squaring (or inverted first when p is negative).
// 0^0 is 1.
func (n Number) Raise(power Number) (Number, error) {
	if !power.IsRational() {
		return Number{}, surderr.New(surderr.IrrationalExponent, "cannot raise %v to irrational power %v", n, power)
	}
	base := n
	if q := power.denom(); q != 1 {
		var err error
		if base, err = base.Root(q); err != nil {
			return Number{}, err
		}
	}
	p := power.num
	if p < 0 {
		var err error
		if base, err = base.Inv(); err != nil {
			return Number{}, err
		}
		p = -p
	}
	result := One
	for p > 0 {
		var err error
		if p&1 == 1 {
			if result, err = result.Mul(base); err != nil {
				return Number{}, err
			}
		}
		p >>= 1
		if p > 0 {
			if base, err = base.Mul(base); err != nil {
				return Number{}, err
			}
		}
	}
	return result, nil
}

// GCD is componentwise: gcd of the numerators over the lcm of the denominators, times the
// index-wise gcd of radicands present in both. The result is never negative.
func GCD(a, b Number) (Number, error) {
	if a.IsZero() {
		return b.Abs(), nil
	}
	if b.IsZero() {
		return a.Abs(), nil
	}
	den, err := lcm64(a.denom(), b.denom())
	if err != nil {
		return Number{}, err
	}
	bld := newBuilder(gcd64(a.num, b.num), den)
	itr := a.rads().Iterator()
	for !itr.Done() {
		index, ra, _ := itr.Next()
		rb, ok := b.rads().Get(index)
		if !ok {
			continue
		}
		if err := bld.addInteger(gcd64(ra, rb), frac{n: 1, d: index}); err != nil {
			return Number{}, err
		}
	}
	return bld.finish()
}
