// Package expr holds the symbolic expression model: monomials, polynomials built from them and
// the normalizer that keeps every polynomial in its unique standard form.
//
// A Polynomial is always normalized: like terms are combined, zero terms are dropped and the
// remaining terms are in canonical order. Two polynomials are therefore equal exactly when their
// rendered text is equal.
package expr

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cottand/surd/number"
	"github.com/hashicorp/go-set/v3"
)

type Polynomial struct {
	terms []Monomial
	// equation marks a polynomial that stands for "terms = 0"
	equation bool
}

func Zero() Polynomial { return Polynomial{} }

func Constant(c number.Number) Polynomial {
	if c.IsZero() {
		return Polynomial{}
	}
	return Polynomial{terms: []Monomial{Term(c)}}
}

func Integer(n int64) Polynomial { return Constant(number.Int(n)) }

func Sym(sym string) Polynomial { return FromMonomial(Symbol(sym)) }

func FromMonomial(m Monomial) Polynomial {
	if m.coef.IsZero() {
		return Polynomial{}
	}
	return Polynomial{terms: []Monomial{m}}
}

// New normalizes terms into a Polynomial
func New(terms ...Monomial) (Polynomial, error) {
	return normalize(terms, false)
}

// Terms returns a copy of the terms of p in canonical order
func (p Polynomial) Terms() []Monomial { return slices.Clone(p.terms) }

func (p Polynomial) Len() int           { return len(p.terms) }
func (p Polynomial) Term(i int) Monomial { return p.terms[i] }
func (p Polynomial) IsZero() bool        { return len(p.terms) == 0 }
func (p Polynomial) IsEquation() bool    { return p.equation }

// AsEquation returns p with its equation flag set to eq
func (p Polynomial) AsEquation(eq bool) Polynomial {
	return Polynomial{terms: p.terms, equation: eq}
}

func (p Polynomial) plain() Polynomial { return p.AsEquation(false) }

// IsConstant is true when no term of p has a variable or an irreducible entry
func (p Polynomial) IsConstant() bool {
	for _, t := range p.terms {
		if !t.IsConstant() {
			return false
		}
	}
	return true
}

// Monomial returns the single term of p, if p has at most one
func (p Polynomial) Monomial() (Monomial, bool) {
	switch len(p.terms) {
	case 0:
		return Term(number.Zero), true
	case 1:
		return p.terms[0], true
	}
	return Monomial{}, false
}

// ConstantValue returns the value of p when p is a single constant
func (p Polynomial) ConstantValue() (number.Number, bool) {
	m, ok := p.Monomial()
	if !ok || !m.IsConstant() {
		return number.Number{}, false
	}
	return m.coef, true
}

func (p Polynomial) rationalConstant() (number.Number, bool) {
	c, ok := p.ConstantValue()
	if !ok || !c.IsRational() {
		return number.Number{}, false
	}
	return c, true
}

// bareSymbol reports whether p is exactly one symbol to the first power
func (p Polynomial) bareSymbol() (string, bool) {
	m, ok := p.Monomial()
	if !ok || !m.coef.IsOne() || m.HasIrreducibles() || m.varMap().Len() != 1 {
		return "", false
	}
	for sym, exp := range m.Vars() {
		if exp.IsOne() {
			return sym, true
		}
	}
	return "", false
}

// Mentions reports whether sym appears anywhere in p
func (p Polynomial) Mentions(sym string) bool {
	for _, t := range p.terms {
		if t.Mentions(sym) {
			return true
		}
	}
	return false
}

// Variables collects every symbol in p, including those inside irreducible entries
func (p Polynomial) Variables() *set.Set[string] {
	out := set.New[string](4)
	p.collectVariables(out)
	return out
}

func (p Polynomial) collectVariables(into *set.Set[string]) {
	for _, t := range p.terms {
		for sym := range t.Vars() {
			into.Insert(sym)
		}
		for pw := range t.Irreducibles() {
			pw.Base.collectVariables(into)
			pw.Exp.collectVariables(into)
		}
	}
}

// SortedVariables is Variables in symbol order
func (p Polynomial) SortedVariables() []string {
	return slices.Sorted(p.Variables().Items())
}

func (p Polynomial) Equal(o Polynomial) bool {
	if len(p.terms) != len(o.terms) || p.equation != o.equation {
		return false
	}
	for i := range p.terms {
		if !p.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// Compare orders polynomials term by term in canonical order. The zero polynomial sorts as the
// constant 0.
func (p Polynomial) Compare(o Polynomial) int {
	a, b := p.orderTerms(), o.orderTerms()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareMonomials(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func (p Polynomial) orderTerms() []Monomial {
	if len(p.terms) == 0 {
		return []Monomial{Term(number.Zero)}
	}
	return p.terms
}

func (p Polynomial) String() string {
	sb := strings.Builder{}
	if len(p.terms) == 0 {
		sb.WriteByte('0')
	}
	for i, t := range p.terms {
		s := t.String()
		if i > 0 && !strings.HasPrefix(s, "-") {
			sb.WriteByte('+')
		}
		sb.WriteString(s)
	}
	if p.equation {
		sb.WriteString("=0")
	}
	return sb.String()
}
