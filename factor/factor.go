// Package factor splits a polynomial into a product of simpler polynomials.
package factor

import (
	"slices"
	"strings"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/number"
)

// Factor returns factors whose product is p, ignoring its equation flag.
//
// The greatest common monomial comes first, negated when the leading coefficient is negative and
// left out when it is 1. The rest follows in canonical order, with every quadratic in a single
// variable split into linear factors in v^k when its roots are real.
func Factor(p expr.Polynomial) ([]expr.Polynomial, error) {
	p = p.AsEquation(false)
	if p.IsZero() {
		return []expr.Polynomial{p}, nil
	}
	terms := p.Terms()
	g, err := expr.GCD(terms...)
	if err != nil {
		return nil, err
	}
	if terms[0].Coefficient().Sign() < 0 {
		g = g.WithCoefficient(g.Coefficient().Neg())
	}
	rest, err := expr.DivMonomial(p, g)
	if err != nil {
		return nil, err
	}

	f := &factoring{monomial: g}
	if err := f.split(rest); err != nil {
		return nil, err
	}
	slices.SortStableFunc(f.others, expr.Polynomial.Compare)

	out := make([]expr.Polynomial, 0, len(f.others)+1)
	if m := f.monomial; !m.Coefficient().IsOne() || !m.IsConstant() || len(f.others) == 0 {
		out = append(out, expr.FromMonomial(m))
	}
	return append(out, f.others...), nil
}

type factoring struct {
	monomial expr.Monomial
	others   []expr.Polynomial
}

func (f *factoring) split(q expr.Polynomial) error {
	if m, ok := q.Monomial(); ok {
		var err error
		f.monomial, err = f.monomial.Mul(m)
		return err
	}
	linear, lead, ok, err := splitQuadratic(q)
	if err != nil {
		return err
	}
	if !ok {
		f.others = append(f.others, q)
		return nil
	}
	if f.monomial, err = f.monomial.Mul(lead); err != nil {
		return err
	}
	for _, l := range linear {
		if err := f.split(l); err != nil {
			return err
		}
	}
	return nil
}

// splitQuadratic factors q = A(v^k - r1)(v^k - r2) when q is a quadratic in v^k for a single
// variable v, an integer k, constant coefficients and a real discriminant that is not negative
func splitQuadratic(q expr.Polynomial) ([]expr.Polynomial, expr.Monomial, bool, error) {
	vars := q.SortedVariables()
	if len(vars) != 1 || vars[0] == expr.ImaginaryUnit {
		return nil, expr.Monomial{}, false, nil
	}
	quad, ok := expr.QuadraticIn(q, vars[0])
	if !ok || !quad.Step.IsInteger() || !quad.A.IsConstant() || !quad.B.IsConstant() || !quad.C.IsConstant() {
		return nil, expr.Monomial{}, false, nil
	}
	lead, ok := quad.A.Monomial()
	if !ok {
		return nil, expr.Monomial{}, false, nil
	}
	d, err := quad.Discriminant()
	if err != nil {
		return nil, expr.Monomial{}, false, err
	}
	if !d.IsConstant() || real(expr.Eval(d, nil)) < 0 {
		return nil, expr.Monomial{}, false, nil
	}
	roots, err := quad.Roots()
	if err != nil {
		return nil, expr.Monomial{}, false, err
	}
	if len(roots) == 1 {
		roots = append(roots, roots[0])
	}
	power, err := expr.SymbolPower(quad.Symbol, quad.Step)
	if err != nil {
		return nil, expr.Monomial{}, false, err
	}
	linear := make([]expr.Polynomial, 0, 2)
	for _, r := range roots {
		l, err := expr.Sub(expr.FromMonomial(power), r)
		if err != nil {
			return nil, expr.Monomial{}, false, err
		}
		linear = append(linear, l)
	}
	return linear, lead, true, nil
}

// String renders factors as (f1)(f2)...
func String(factors []expr.Polynomial) string {
	sb := strings.Builder{}
	for _, f := range factors {
		sb.WriteByte('(')
		sb.WriteString(f.String())
		sb.WriteByte(')')
	}
	return sb.String()
}

// Distribute multiplies factors back into a single polynomial
func Distribute(factors []expr.Polynomial) (expr.Polynomial, error) {
	out := expr.Constant(number.One)
	for _, f := range factors {
		var err error
		if out, err = expr.Mul(out, f); err != nil {
			return expr.Polynomial{}, err
		}
	}
	return out, nil
}
