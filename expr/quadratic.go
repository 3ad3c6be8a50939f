package expr

import (
	"github.com/cottand/surd/number"
)

// Quadratic is p read as A*v^(2k) + B*v^k + C for a symbol v, where A, B and C do not
// mention v and A is not zero
type Quadratic struct {
	Symbol  string
	Step    number.Number // k
	A, B, C Polynomial
}

// QuadraticIn reports whether p is a quadratic in sym^k for some positive rational k.
// The v^k term may be missing, so x^2-36 is a quadratic in x with B = 0, but the constant
// term may not be, as that is not a quadratic but a plain power.
func QuadraticIn(p Polynomial, sym string) (Quadratic, bool) {
	byExp := make(map[string][]Monomial)
	var exps []number.Number
	var constant []Monomial
	for _, t := range p.terms {
		e, ok := t.Exponent(sym)
		rest := t.withoutVar(sym)
		if rest.Mentions(sym) {
			return Quadratic{}, false
		}
		if !ok {
			constant = append(constant, rest)
			continue
		}
		if e.Sign() < 0 {
			return Quadratic{}, false
		}
		key := e.String()
		if _, seen := byExp[key]; !seen {
			exps = append(exps, e)
		}
		byExp[key] = append(byExp[key], rest)
	}
	if len(constant) == 0 {
		return Quadratic{}, false
	}
	var high, low number.Number
	switch len(exps) {
	case 1:
		high = exps[0]
	case 2:
		high, low = exps[0], exps[1]
		if high.Compare(low) < 0 {
			high, low = low, high
		}
		twice, err := low.Mul(number.Int(2))
		if err != nil || !twice.Equal(high) {
			return Quadratic{}, false
		}
	default:
		return Quadratic{}, false
	}
	step, err := high.Div(number.Int(2))
	if err != nil {
		return Quadratic{}, false
	}
	q := Quadratic{Symbol: sym, Step: step}
	if q.A, err = New(byExp[high.String()]...); err != nil {
		return Quadratic{}, false
	}
	if len(exps) == 2 {
		if q.B, err = New(byExp[low.String()]...); err != nil {
			return Quadratic{}, false
		}
	}
	if q.C, err = New(constant...); err != nil {
		return Quadratic{}, false
	}
	if q.A.IsZero() || q.C.IsZero() {
		return Quadratic{}, false
	}
	return q, true
}

// Discriminant is B^2 - 4AC
func (q Quadratic) Discriminant() (Polynomial, error) {
	bb, err := Mul(q.B, q.B)
	if err != nil {
		return Polynomial{}, err
	}
	ac, err := Mul(q.A, q.C)
	if err != nil {
		return Polynomial{}, err
	}
	ac4, err := Scale(ac, number.Int(4))
	if err != nil {
		return Polynomial{}, err
	}
	return Sub(bb, ac4)
}

// Roots returns the values y = v^k solving A*y^2 + B*y + C = 0 as (-B ± √D)/2A.
// A negative constant discriminant gives roots in i. A zero discriminant gives one root.
func (q Quadratic) Roots() ([]Polynomial, error) {
	d, err := q.Discriminant()
	if err != nil {
		return nil, err
	}
	sq, err := Pow(d, Constant(half))
	if err != nil {
		return nil, err
	}
	twoA, err := Scale(q.A, number.Int(2))
	if err != nil {
		return nil, err
	}
	negB := Neg(q.B)
	plus, err := Add(negB, sq)
	if err != nil {
		return nil, err
	}
	if plus, err = Quotient(plus, twoA); err != nil {
		return nil, err
	}
	if d.IsZero() {
		return []Polynomial{plus}, nil
	}
	minus, err := Sub(negB, sq)
	if err != nil {
		return nil, err
	}
	if minus, err = Quotient(minus, twoA); err != nil {
		return nil, err
	}
	return []Polynomial{plus, minus}, nil
}

var half = number.MustParse("0.5")
