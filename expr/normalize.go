package expr

import (
	"slices"

	"github.com/cottand/surd/number"
	"github.com/cottand/surd/surderr"
)

// likeGroup collects the coefficients of terms sharing one shape. A shape can hold several
// coefficients when their radical parts cannot be combined, as in √(2)x+√(3)x.
type likeGroup struct {
	proto Monomial
	coefs []number.Number
}

func normalize(terms []Monomial, equation bool) (Polynomial, error) {
	groups := make(map[string]*likeGroup, len(terms))
	order := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.coef.IsZero() {
			continue
		}
		key := t.shape()
		g, ok := groups[key]
		if !ok {
			g = &likeGroup{proto: t}
			groups[key] = g
			order = append(order, key)
		}
		if err := g.add(t.coef); err != nil {
			return Polynomial{}, err
		}
	}
	out := make([]Monomial, 0, len(order))
	for _, key := range order {
		g := groups[key]
		for _, c := range g.coefs {
			if !c.IsZero() {
				out = append(out, g.proto.WithCoefficient(c))
			}
		}
	}
	slices.SortFunc(out, compareMonomials)
	return Polynomial{terms: out, equation: equation}, nil
}

func (g *likeGroup) add(c number.Number) error {
	for i, acc := range g.coefs {
		sum, err := acc.Add(c)
		if surderr.Is(err, surderr.IncompatibleRadicals) {
			continue
		}
		if err != nil {
			return err
		}
		g.coefs[i] = sum
		return nil
	}
	g.coefs = append(g.coefs, c)
	return nil
}

// compareMonomials is the canonical term order:
//  1. higher degree first
//  2. variables compared pairwise in symbol order: smaller symbol first, then larger
//     exponent first; a monomial with more variables comes first
//  3. irreducible entries compared by base text, then exponent text; more entries first
//  4. larger coefficient first
func compareMonomials(a, b Monomial) int {
	if c := b.Degree().Compare(a.Degree()); c != 0 {
		return c
	}
	if c := compareVars(a, b); c != 0 {
		return c
	}
	if c := compareIrreducibles(a, b); c != 0 {
		return c
	}
	return b.coef.Compare(a.coef)
}

func compareVars(a, b Monomial) int {
	ia, ib := a.varMap().Iterator(), b.varMap().Iterator()
	for !ia.Done() && !ib.Done() {
		sa, ea, _ := ia.Next()
		sb, eb, _ := ib.Next()
		if sa != sb {
			if sa < sb {
				return -1
			}
			return 1
		}
		if c := eb.Compare(ea); c != 0 {
			return c
		}
	}
	switch {
	case !ia.Done():
		return -1
	case !ib.Done():
		return 1
	}
	return 0
}

func compareIrreducibles(a, b Monomial) int {
	ia, ib := a.irrMap().Iterator(), b.irrMap().Iterator()
	for !ia.Done() && !ib.Done() {
		ka, pa, _ := ia.Next()
		kb, pb, _ := ib.Next()
		if ka != kb {
			if ka < kb {
				return -1
			}
			return 1
		}
		ea, eb := pa.Exp.String(), pb.Exp.String()
		if ea != eb {
			if ea < eb {
				return -1
			}
			return 1
		}
	}
	switch {
	case !ia.Done():
		return -1
	case !ib.Done():
		return 1
	}
	return 0
}
