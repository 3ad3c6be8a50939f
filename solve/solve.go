// Package solve finds closed-form values for the variables of an equation.
package solve

import (
	"slices"
	"strings"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/factor"
	"github.com/cottand/surd/number"
	"github.com/cottand/surd/surderr"
)

// Solution holds the candidate values of one variable, in canonical order
type Solution struct {
	Variable string
	Values   []expr.Polynomial
}

func (s Solution) String() string {
	sb := strings.Builder{}
	sb.WriteString(s.Variable)
	sb.WriteByte('=')
	for i, v := range s.Values {
		if i > 0 {
			sb.WriteString(" or ")
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Solutions is ordered by variable
type Solutions []Solution

func (s Solutions) Lookup(variable string) (Solution, bool) {
	i, found := slices.BinarySearchFunc(s, variable, func(sol Solution, v string) int {
		return strings.Compare(sol.Variable, v)
	})
	if !found {
		return Solution{}, false
	}
	return s[i], true
}

func (s Solutions) String() string {
	parts := make([]string, len(s))
	for i, sol := range s {
		parts[i] = sol.String()
	}
	return strings.Join(parts, "; ")
}

// Solve factors p and treats every factor as a zero set. A monomial factor makes each of its
// variables zero. Any other factor is solved for each variable it contains by isolating the
// variable's single power, or with the quadratic formula when the factor is a quadratic in a
// power of the variable. Variables that fit neither shape are left out.
func Solve(p expr.Polynomial) (Solutions, error) {
	if !p.IsEquation() {
		return nil, surderr.New(surderr.NotAnEquation, "%v is not an equation", p)
	}
	factors, err := factor.Factor(p)
	if err != nil {
		return nil, err
	}
	acc := make(accumulator)
	for _, f := range factors {
		if m, ok := f.Monomial(); ok {
			for sym, exp := range m.Vars() {
				if sym != expr.ImaginaryUnit && exp.Sign() > 0 {
					acc.add(sym, expr.Zero())
				}
			}
			continue
		}
		for _, v := range f.SortedVariables() {
			if v == expr.ImaginaryUnit {
				continue
			}
			values, err := isolate(f, v)
			if err != nil {
				return nil, err
			}
			acc.add(v, values...)
		}
	}
	return acc.solutions(), nil
}

type accumulator map[string][]expr.Polynomial

func (a accumulator) add(v string, values ...expr.Polynomial) {
	for _, val := range values {
		if !slices.ContainsFunc(a[v], val.Equal) {
			a[v] = append(a[v], val)
		}
	}
}

func (a accumulator) solutions() Solutions {
	out := make(Solutions, 0, len(a))
	for v, values := range a {
		if len(values) == 0 {
			continue
		}
		sorted := slices.Clone(values)
		slices.SortFunc(sorted, expr.Polynomial.Compare)
		out = append(out, Solution{Variable: v, Values: sorted})
	}
	slices.SortFunc(out, func(x, y Solution) int { return strings.Compare(x.Variable, y.Variable) })
	return out
}

// isolate solves f = 0 for v
func isolate(f expr.Polynomial, v string) ([]expr.Polynomial, error) {
	var with, without []expr.Monomial
	var exp number.Number
	single := true
	for _, t := range f.Terms() {
		e, has := t.Exponent(v)
		if !has {
			if t.Mentions(v) {
				return nil, nil
			}
			without = append(without, t)
			continue
		}
		if len(with) > 0 && !e.Equal(exp) {
			single = false
		}
		exp = e
		pw, err := expr.SymbolPower(v, e)
		if err != nil {
			return nil, err
		}
		rest, err := expr.DivMonomial(expr.FromMonomial(t), pw)
		if err != nil {
			return nil, err
		}
		if rest.Mentions(v) {
			return nil, nil
		}
		with = append(with, rest.Terms()...)
	}
	if len(with) == 0 {
		return nil, nil
	}
	if single {
		return isolatePower(with, without, exp)
	}
	q, ok := expr.QuadraticIn(f, v)
	if !ok {
		return nil, nil
	}
	ys, err := q.Roots()
	if err != nil {
		return nil, err
	}
	var out []expr.Polynomial
	for _, y := range ys {
		roots, err := rootsOf(y, q.Step)
		if err != nil {
			return nil, err
		}
		out = append(out, roots...)
	}
	return out, nil
}

// isolatePower solves v^e * S + R = 0 as v^e = -R/S
func isolatePower(with, without []expr.Monomial, e number.Number) ([]expr.Polynomial, error) {
	s, err := expr.New(with...)
	if err != nil {
		return nil, err
	}
	r, err := expr.New(without...)
	if err != nil {
		return nil, err
	}
	rhs, err := expr.Quotient(expr.Neg(r), s)
	if err != nil {
		return nil, err
	}
	if rhs.IsZero() && e.Sign() < 0 {
		return nil, nil
	}
	return rootsOf(rhs, e)
}

// rootsOf returns every v with v^e = y: y^(1/e), and its negation when e has an even numerator
func rootsOf(y expr.Polynomial, e number.Number) ([]expr.Polynomial, error) {
	inv, err := e.Inv()
	if err != nil {
		return nil, err
	}
	r, err := expr.Pow(y, expr.Constant(inv))
	if err != nil {
		return nil, err
	}
	out := []expr.Polynomial{r}
	if e.Num()%2 == 0 {
		if neg := expr.Neg(r); !neg.Equal(r) {
			out = append(out, neg)
		}
	}
	return out, nil
}
