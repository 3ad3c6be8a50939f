package expr

import (
	"math/cmplx"
)

// Substitute replaces every occurrence of sym in p with value, including inside irreducible
// entries, and renormalizes. The equation flag of p is kept.
func Substitute(p Polynomial, sym string, value Polynomial) (Polynomial, error) {
	value = value.plain()
	out := Zero()
	for _, t := range p.terms {
		if !t.Mentions(sym) {
			var err error
			if out, err = Add(out, FromMonomial(t)); err != nil {
				return Polynomial{}, err
			}
			continue
		}
		term, err := substituteTerm(t, sym, value)
		if err != nil {
			return Polynomial{}, err
		}
		if out, err = Add(out, term); err != nil {
			return Polynomial{}, err
		}
	}
	return out.AsEquation(p.equation), nil
}

func substituteTerm(t Monomial, sym string, value Polynomial) (Polynomial, error) {
	rest := t.withoutVar(sym)
	factors := make([]Polynomial, 0, 2)
	if e, ok := t.Exponent(sym); ok {
		f, err := powRational(value, e)
		if err != nil {
			return Polynomial{}, err
		}
		factors = append(factors, f)
	}
	for pw := range t.Irreducibles() {
		if !pw.Base.Mentions(sym) && !pw.Exp.Mentions(sym) {
			continue
		}
		rest = rest.withoutIrreducible(pw.key())
		base, err := Substitute(pw.Base, sym, value)
		if err != nil {
			return Polynomial{}, err
		}
		exp, err := Substitute(pw.Exp, sym, value)
		if err != nil {
			return Polynomial{}, err
		}
		f, err := Pow(base, exp)
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

// Eval computes p numerically. The imaginary unit always evaluates to i, whatever env says.
// A symbol missing from env makes the result NaN.
func Eval(p Polynomial, env map[string]complex128) complex128 {
	var sum complex128
	for _, t := range p.terms {
		sum += evalTerm(t, env)
	}
	return sum
}

func evalTerm(t Monomial, env map[string]complex128) complex128 {
	v := complex(t.coef.Float64(), 0)
	for sym, exp := range t.Vars() {
		x, ok := env[sym]
		if sym == ImaginaryUnit {
			x, ok = 1i, true
		}
		if !ok {
			return cmplx.NaN()
		}
		v *= powComplex(x, complex(exp.Float64(), 0))
	}
	for pw := range t.Irreducibles() {
		v *= powComplex(Eval(pw.Base, env), Eval(pw.Exp, env))
	}
	return v
}

// powComplex is cmplx.Pow with exact results for small integer powers, so that
// evaluating x^2 at a real x stays real
func powComplex(x, e complex128) complex128 {
	if imag(e) == 0 {
		if n := real(e); n == float64(int64(n)) && n >= -64 && n <= 64 {
			k := int64(n)
			inv := k < 0
			if inv {
				k = -k
			}
			r := complex(1, 0)
			for ; k > 0; k-- {
				r *= x
			}
			if inv {
				return 1 / r
			}
			return r
		}
	}
	return cmplx.Pow(x, e)
}
