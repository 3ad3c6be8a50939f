package expr

import (
	"slices"
	"sort"

	"github.com/cottand/surd/number"
	sortset "github.com/xtgo/set"
)

// GCD returns the greatest common monomial divisor of terms: the gcd of the coefficients,
// every variable present in all terms at its smallest exponent, and every irreducible entry
// present in all terms, at its smallest exponent when the exponents are constants or at the
// shared exponent when they are identical.
func GCD(terms ...Monomial) (Monomial, error) {
	if len(terms) == 0 {
		return Term(number.Zero), nil
	}
	coef := terms[0].coef.Abs()
	for _, t := range terms[1:] {
		var err error
		if coef, err = number.GCD(coef, t.coef); err != nil {
			return Monomial{}, err
		}
	}
	out := Term(coef)

	for _, sym := range commonKeys(terms, Monomial.symbols) {
		least, _ := terms[0].Exponent(sym)
		for _, t := range terms[1:] {
			if e, _ := t.Exponent(sym); e.Compare(least) < 0 {
				least = e
			}
		}
		var err error
		if out, err = out.mulVar(sym, least); err != nil {
			return Monomial{}, err
		}
	}

	for _, key := range commonKeys(terms, Monomial.irreducibleKeys) {
		pw, ok := commonPower(terms, key)
		if !ok {
			continue
		}
		var err error
		if out, err = out.mulPower(pw); err != nil {
			return Monomial{}, err
		}
	}
	return out, nil
}

func (m Monomial) irreducibleKeys() []string {
	out := make([]string, 0, m.irrMap().Len())
	itr := m.irrMap().Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		out = append(out, k)
	}
	return out
}

// commonKeys intersects the sorted key lists of every term
func commonKeys(terms []Monomial, keys func(Monomial) []string) []string {
	common := keys(terms[0])
	for _, t := range terms[1:] {
		if len(common) == 0 {
			return nil
		}
		data := append(slices.Clone(common), keys(t)...)
		n := sortset.Inter(sort.StringSlice(data), len(common))
		common = data[:n]
	}
	return common
}

func commonPower(terms []Monomial, key string) (Power, bool) {
	first, _ := terms[0].irrMap().Get(key)
	least, constant := first.Exp.rationalConstant()
	same := true
	for _, t := range terms[1:] {
		pw, _ := t.irrMap().Get(key)
		same = same && pw.Exp.Equal(first.Exp)
		if !constant {
			continue
		}
		e, ok := pw.Exp.rationalConstant()
		if !ok {
			constant = false
			continue
		}
		if e.Compare(least) < 0 {
			least = e
		}
	}
	switch {
	case same:
		return first, true
	case constant:
		return Power{Base: first.Base, Exp: Constant(least)}, true
	}
	return Power{}, false
}
