package expr

import (
	"iter"
	"strconv"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/surd/number"
)

// ImaginaryUnit is the symbol reserved for i. Its integer exponents are folded modulo 4.
const ImaginaryUnit = "i"

type symbolComparer struct{}

func (symbolComparer) Compare(a, b string) int { return strings.Compare(a, b) }

var (
	emptyVars        = immutable.NewSortedMap[string, number.Number](symbolComparer{})
	emptyIrreducible = immutable.NewSortedMap[string, Power](symbolComparer{})
)

// Power is an irreducible entry: a sub-expression raised to an exponent that could not be
// folded into variable powers, like (x+1)^(1/2) or 2^(a-1)
type Power struct {
	Base, Exp Polynomial
}

func (p Power) key() string { return p.Base.String() }

// Monomial is a coefficient times variable powers times irreducible powers.
// Variable exponents are always rational and never zero. Monomials are immutable.
type Monomial struct {
	coef number.Number
	vars *immutable.SortedMap[string, number.Number]
	// irr is keyed by the canonical text of each Power's base
	irr *immutable.SortedMap[string, Power]
}

// Term returns the constant monomial c
func Term(c number.Number) Monomial {
	return Monomial{coef: c, vars: emptyVars, irr: emptyIrreducible}
}

// Symbol returns the monomial sym^1
func Symbol(sym string) Monomial {
	return Monomial{coef: number.One, vars: emptyVars.Set(sym, number.One), irr: emptyIrreducible}
}

// SymbolPower returns sym^exp, exp must be rational
func SymbolPower(sym string, exp number.Number) (Monomial, error) {
	return Term(number.One).mulVar(sym, exp)
}

func (m Monomial) varMap() *immutable.SortedMap[string, number.Number] {
	if m.vars == nil {
		return emptyVars
	}
	return m.vars
}

func (m Monomial) irrMap() *immutable.SortedMap[string, Power] {
	if m.irr == nil {
		return emptyIrreducible
	}
	return m.irr
}

func (m Monomial) Coefficient() number.Number { return m.coef }

func (m Monomial) WithCoefficient(c number.Number) Monomial {
	return Monomial{coef: c, vars: m.varMap(), irr: m.irrMap()}
}

// Exponent returns the power sym is raised to in m
func (m Monomial) Exponent(sym string) (number.Number, bool) {
	return m.varMap().Get(sym)
}

// Vars yields every symbol with its exponent in symbol order
func (m Monomial) Vars() iter.Seq2[string, number.Number] {
	return func(yield func(string, number.Number) bool) {
		itr := m.varMap().Iterator()
		for !itr.Done() {
			sym, exp, _ := itr.Next()
			if !yield(sym, exp) {
				return
			}
		}
	}
}

// Irreducibles yields every irreducible entry ordered by the text of its base
func (m Monomial) Irreducibles() iter.Seq[Power] {
	return func(yield func(Power) bool) {
		itr := m.irrMap().Iterator()
		for !itr.Done() {
			_, p, _ := itr.Next()
			if !yield(p) {
				return
			}
		}
	}
}

func (m Monomial) symbols() []string {
	out := make([]string, 0, m.varMap().Len())
	for sym := range m.Vars() {
		out = append(out, sym)
	}
	return out
}

// IsConstant is true when m has neither variables nor irreducible entries
func (m Monomial) IsConstant() bool {
	return m.varMap().Len() == 0 && m.irrMap().Len() == 0
}

func (m Monomial) HasIrreducibles() bool { return m.irrMap().Len() > 0 }

// Mentions reports whether sym occurs anywhere in m, including inside irreducible entries
func (m Monomial) Mentions(sym string) bool {
	if _, ok := m.Exponent(sym); ok {
		return true
	}
	for p := range m.Irreducibles() {
		if p.Base.Mentions(sym) || p.Exp.Mentions(sym) {
			return true
		}
	}
	return false
}

// Degree is the highest variable exponent in m, or zero for a monomial without variables
func (m Monomial) Degree() number.Number {
	var best number.Number
	first := true
	for _, exp := range m.Vars() {
		if first || exp.Compare(best) > 0 {
			best = exp
			first = false
		}
	}
	if first {
		return number.Zero
	}
	return best
}

// withoutVar removes sym from m
func (m Monomial) withoutVar(sym string) Monomial {
	return Monomial{coef: m.coef, vars: m.varMap().Delete(sym), irr: m.irrMap()}
}

func (m Monomial) withoutIrreducible(key string) Monomial {
	return Monomial{coef: m.coef, vars: m.varMap(), irr: m.irrMap().Delete(key)}
}

// mulVar multiplies m by sym^exp
func (m Monomial) mulVar(sym string, exp number.Number) (Monomial, error) {
	vars := m.varMap()
	if cur, ok := vars.Get(sym); ok {
		var err error
		if exp, err = cur.Add(exp); err != nil {
			return Monomial{}, err
		}
	}
	out := Monomial{coef: m.coef, irr: m.irrMap()}
	if exp.IsZero() {
		out.vars = vars.Delete(sym)
	} else {
		out.vars = vars.Set(sym, exp)
	}
	return out.foldImaginary(), nil
}

// foldImaginary keeps an integer exponent of i in {1}, moving the sign of i^2 into the coefficient
func (m Monomial) foldImaginary() Monomial {
	exp, ok := m.varMap().Get(ImaginaryUnit)
	if !ok {
		return m
	}
	n, ok := exp.Int64()
	if !ok {
		return m
	}
	n %= 4
	if n < 0 {
		n += 4
	}
	coef := m.coef
	if n >= 2 {
		coef = coef.Neg()
		n -= 2
	}
	vars := m.varMap().Delete(ImaginaryUnit)
	if n == 1 {
		vars = vars.Set(ImaginaryUnit, number.One)
	}
	return Monomial{coef: coef, vars: vars, irr: m.irrMap()}
}

// Mul multiplies two monomials. Irreducible entries with the same base add their exponents.
func (m Monomial) Mul(o Monomial) (Monomial, error) {
	coef, err := m.coef.Mul(o.coef)
	if err != nil {
		return Monomial{}, err
	}
	out := Monomial{coef: coef, vars: m.varMap(), irr: m.irrMap()}
	for sym, exp := range o.Vars() {
		if out, err = out.mulVar(sym, exp); err != nil {
			return Monomial{}, err
		}
	}
	for p := range o.Irreducibles() {
		if out, err = out.mulPower(p); err != nil {
			return Monomial{}, err
		}
	}
	return out, nil
}

func (m Monomial) mulPower(p Power) (Monomial, error) {
	key := p.key()
	irr := m.irrMap()
	if cur, ok := irr.Get(key); ok {
		exp, err := Add(cur.Exp, p.Exp)
		if err != nil {
			return Monomial{}, err
		}
		if exp.IsZero() {
			return Monomial{coef: m.coef, vars: m.varMap(), irr: irr.Delete(key)}, nil
		}
		p = Power{Base: cur.Base, Exp: exp}
	}
	return Monomial{coef: m.coef, vars: m.varMap(), irr: irr.Set(key, p)}, nil
}

// Inverse returns 1/m
func (m Monomial) Inverse() (Monomial, error) {
	coef, err := m.coef.Inv()
	if err != nil {
		return Monomial{}, err
	}
	out := Term(coef)
	for sym, exp := range m.Vars() {
		if out, err = out.mulVar(sym, exp.Neg()); err != nil {
			return Monomial{}, err
		}
	}
	for p := range m.Irreducibles() {
		if out, err = out.mulPower(Power{Base: p.Base, Exp: Neg(p.Exp)}); err != nil {
			return Monomial{}, err
		}
	}
	return out, nil
}

// Raise returns m^e for a rational e. It fails with surderr.NegativeEvenRoot when the
// coefficient is negative and e has an even denominator; callers decide how to bring in i.
func (m Monomial) Raise(e number.Number) (Monomial, error) {
	coef, err := m.coef.Raise(e)
	if err != nil {
		return Monomial{}, err
	}
	out := Term(coef)
	for sym, exp := range m.Vars() {
		scaled, err := exp.Mul(e)
		if err != nil {
			return Monomial{}, err
		}
		if out, err = out.mulVar(sym, scaled); err != nil {
			return Monomial{}, err
		}
	}
	for p := range m.Irreducibles() {
		scaled, err := Scale(p.Exp, e)
		if err != nil {
			return Monomial{}, err
		}
		if out, err = out.mulPower(Power{Base: p.Base, Exp: scaled}); err != nil {
			return Monomial{}, err
		}
	}
	return out, nil
}

// shape renders the symbolic part of m: variables first, then irreducible entries.
// Two monomials are like terms exactly when their shapes are equal.
func (m Monomial) shape() string {
	sb := strings.Builder{}
	for sym, exp := range m.Vars() {
		sb.WriteString(sym)
		writeExponent(&sb, exp)
	}
	for p := range m.Irreducibles() {
		if sym, ok := p.Base.bareSymbol(); ok {
			sb.WriteString(sym)
		} else {
			sb.WriteByte('(')
			sb.WriteString(p.Base.String())
			sb.WriteByte(')')
		}
		sb.WriteByte('^')
		if c, ok := p.Exp.rationalConstant(); ok && c.IsInteger() {
			sb.WriteString(c.String())
		} else if sym, ok := p.Exp.bareSymbol(); ok {
			sb.WriteString(sym)
		} else {
			sb.WriteByte('(')
			sb.WriteString(p.Exp.String())
			sb.WriteByte(')')
		}
	}
	return sb.String()
}

func writeExponent(sb *strings.Builder, exp number.Number) {
	if exp.IsOne() {
		return
	}
	sb.WriteByte('^')
	if n, ok := exp.Int64(); ok {
		sb.WriteString(strconv.FormatInt(n, 10))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(exp.String())
	sb.WriteByte(')')
}

// LikeTerm reports whether m and o differ only in their coefficient
func (m Monomial) LikeTerm(o Monomial) bool {
	return m.shape() == o.shape()
}

func (m Monomial) Equal(o Monomial) bool {
	return m.coef.Equal(o.coef) && m.LikeTerm(o)
}

func (m Monomial) String() string {
	return m.coef.StringWith(m.shape())
}
