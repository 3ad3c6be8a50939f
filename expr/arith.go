package expr

import (
	"github.com/cottand/surd/number"
	"github.com/cottand/surd/surderr"
)

func Add(p, q Polynomial) (Polynomial, error) {
	terms := make([]Monomial, 0, len(p.terms)+len(q.terms))
	terms = append(terms, p.terms...)
	terms = append(terms, q.terms...)
	return normalize(terms, false)
}

func Sub(p, q Polynomial) (Polynomial, error) {
	return Add(p, Neg(q))
}

// Neg flips the sign of every term. It cannot fail and keeps the equation flag.
func Neg(p Polynomial) Polynomial {
	terms := make([]Monomial, len(p.terms))
	for i, t := range p.terms {
		terms[i] = t.WithCoefficient(t.coef.Neg())
	}
	// negation reverses the coefficient order among otherwise equal terms
	out, _ := normalize(terms, p.equation)
	return out
}

// Scale multiplies every term of p by the constant c
func Scale(p Polynomial, c number.Number) (Polynomial, error) {
	return MulMonomial(p, Term(c))
}

func MulMonomial(p Polynomial, m Monomial) (Polynomial, error) {
	return Mul(p, FromMonomial(m))
}

// DivMonomial divides every term of p by m
func DivMonomial(p Polynomial, m Monomial) (Polynomial, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Polynomial{}, err
	}
	return MulMonomial(p, inv)
}

// Mul distributes p over q. Irreducible entries whose exponents add up to an integer are
// expanded back into ordinary terms.
func Mul(p, q Polynomial) (Polynomial, error) {
	terms := make([]Monomial, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			m, err := a.Mul(b)
			if err != nil {
				return Polynomial{}, err
			}
			if !m.HasIrreducibles() {
				terms = append(terms, m)
				continue
			}
			expanded, err := expandFoldable(m)
			if err != nil {
				return Polynomial{}, err
			}
			terms = append(terms, expanded.terms...)
		}
	}
	return normalize(terms, false)
}

// Quotient returns p/q. A multi-term q is kept as the irreducible entry q^-1.
func Quotient(p, q Polynomial) (Polynomial, error) {
	if q.IsZero() {
		return Polynomial{}, surderr.New(surderr.DivisionByZero, "division of %v by zero", p)
	}
	if m, ok := q.Monomial(); ok {
		return DivMonomial(p, m)
	}
	inv, err := Pow(q, Integer(-1))
	if err != nil {
		return Polynomial{}, err
	}
	return Mul(p, inv)
}

// Pow raises base to exp.
//
// A rational constant exponent is applied directly to a single-term base; an even root of a
// negative coefficient brings in i when the root is a square root. A multi-term base is
// expanded for non-negative integer exponents. Everything else is kept as an irreducible
// entry.
func Pow(base, exp Polynomial) (Polynomial, error) {
	base, exp = base.plain(), exp.plain()
	if e, ok := exp.rationalConstant(); ok {
		return powRational(base, e)
	}
	if c, ok := base.ConstantValue(); ok && (c.IsZero() || c.IsOne()) {
		return base, nil
	}
	return irreducible(base, exp), nil
}

func powRational(base Polynomial, e number.Number) (Polynomial, error) {
	switch {
	case e.IsZero():
		return Integer(1), nil
	case e.IsOne():
		return base, nil
	case base.IsZero():
		if e.Sign() < 0 {
			return Polynomial{}, surderr.New(surderr.DivisionByZero, "0 raised to negative power %v", e)
		}
		return Zero(), nil
	}
	if m, ok := base.Monomial(); ok {
		return raiseMonomial(m, e)
	}
	if n, ok := e.Int64(); ok && n > 0 {
		return expandPower(base, n)
	}
	return irreducible(base, Constant(e)), nil
}

// expandPower multiplies base out n times by repeated squaring
func expandPower(base Polynomial, n int64) (Polynomial, error) {
	result := Integer(1)
	for n > 0 {
		var err error
		if n&1 == 1 {
			if result, err = Mul(result, base); err != nil {
				return Polynomial{}, err
			}
		}
		n >>= 1
		if n > 0 {
			if base, err = Mul(base, base); err != nil {
				return Polynomial{}, err
			}
		}
	}
	return result, nil
}

func raiseMonomial(m Monomial, e number.Number) (Polynomial, error) {
	r, err := m.Raise(e)
	if err == nil {
		return expandFoldable(r)
	}
	if !surderr.Is(err, surderr.NegativeEvenRoot) {
		return Polynomial{}, err
	}
	if e.Den() != 2 {
		return irreducible(FromMonomial(m), Constant(e)), nil
	}
	// (-c)^(p/2) = c^(p/2) * i^p
	r, err = m.WithCoefficient(m.coef.Neg()).Raise(e)
	if err != nil {
		return Polynomial{}, err
	}
	if r, err = r.mulVar(ImaginaryUnit, number.Int(e.Num())); err != nil {
		return Polynomial{}, err
	}
	return expandFoldable(r)
}

func irreducible(base, exp Polynomial) Polynomial {
	pw := Power{Base: base.plain(), Exp: exp.plain()}
	m := Term(number.One)
	m.irr = m.irrMap().Set(pw.key(), pw)
	return FromMonomial(m)
}

// expandFoldable turns irreducible entries of m whose exponent became an integer back into
// ordinary polynomial factors
func expandFoldable(m Monomial) (Polynomial, error) {
	rest := m
	factors := make([]Polynomial, 0)
	for pw := range m.Irreducibles() {
		e, ok := pw.Exp.rationalConstant()
		if !ok {
			continue
		}
		n, isInt := e.Int64()
		_, single := pw.Base.Monomial()
		if !isInt || (n < 0 && !single) {
			continue
		}
		rest = rest.withoutIrreducible(pw.key())
		f, err := powRational(pw.Base, e)
		if err != nil {
			return Polynomial{}, err
		}
		factors = append(factors, f)
	}
	out := FromMonomial(rest)
	for _, f := range factors {
		var err error
		if out, err = Mul(out, f); err != nil {
			return Polynomial{}, err
		}
	}
	return out, nil
}
