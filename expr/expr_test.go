package expr

import (
	"math"
	"testing"

	"github.com/cottand/surd/number"
	"github.com/cottand/surd/surderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frac(t *testing.T, num, den int64) number.Number {
	n, err := number.New(num, den)
	require.NoError(t, err)
	return n
}

func symPow(t *testing.T, sym string, exp int64) Monomial {
	m, err := SymbolPower(sym, number.Int(exp))
	require.NoError(t, err)
	return m
}

func scaled(t *testing.T, c int64, m Monomial) Monomial {
	out, err := Term(number.Int(c)).Mul(m)
	require.NoError(t, err)
	return out
}

func poly(t *testing.T, terms ...Monomial) Polynomial {
	p, err := New(terms...)
	require.NoError(t, err)
	return p
}

func TestNormalizeOrdersAndCombines(t *testing.T) {
	cases := []struct {
		name     string
		terms    []Monomial
		expected string
	}{
		{"descending degree", []Monomial{Term(number.Int(3)), Symbol("x"), symPow(t, "x", 2)}, "x^2+x+3"},
		{"like terms", []Monomial{Symbol("x"), Symbol("x")}, "2x"},
		{"cancel", []Monomial{Symbol("x"), scaled(t, -1, Symbol("x"))}, "0"},
		{"smaller symbol first", []Monomial{symPow(t, "y", 2), symPow(t, "x", 2)}, "x^2+y^2"},
		{"more vars first", []Monomial{Symbol("x"), must(Symbol("x").Mul(Symbol("y")))}, "xy+x"},
		{"negative exponents after constants", []Monomial{symPow(t, "x", -1), Term(number.One)}, "1+x^-1"},
		{"constants combine", []Monomial{Term(number.Int(-2)), Term(number.Int(5))}, "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, poly(t, tc.terms...).String())
		})
	}
}

func must(m Monomial, err error) Monomial {
	if err != nil {
		panic(err)
	}
	return m
}

func TestIncompatibleRadicalsStaySeparate(t *testing.T) {
	r2, err := number.Radical(2, 2)
	require.NoError(t, err)
	r3, err := number.Radical(3, 2)
	require.NoError(t, err)

	p := poly(t, Symbol("x").WithCoefficient(r2), Symbol("x").WithCoefficient(r3))
	assert.Equal(t, "√(3)x+√(2)x", p.String())
	assert.Equal(t, 2, p.Len())

	q := poly(t, Symbol("x").WithCoefficient(r2), Symbol("x").WithCoefficient(r2.Neg()))
	assert.True(t, q.IsZero())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	p := poly(t, Symbol("x"), Term(number.Int(7)), symPow(t, "y", 3), Symbol("x"))
	again, err := New(p.Terms()...)
	require.NoError(t, err)
	assert.True(t, p.Equal(again))
	assert.Equal(t, p.String(), again.String())
}

func TestMonomialFormat(t *testing.T) {
	r5, err := number.Radical(5, 2)
	require.NoError(t, err)
	cases := []struct {
		name     string
		m        Monomial
		expected string
	}{
		{"fraction coefficient", Symbol("x").WithCoefficient(frac(t, 5, 2)), "5x/2"},
		{"minus one", Symbol("x").WithCoefficient(number.Int(-1)), "-x"},
		{"radical times i", Symbol(ImaginaryUnit).WithCoefficient(r5), "√(5)i"},
		{"negative power", symPow(t, "x", -2), "x^-2"},
		{"fractional power", must(SymbolPower("x", frac(t, 1, 2))), "x^(1/2)"},
		{"constant", Term(number.Int(-4)), "-4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.m.String())
		})
	}
}

func TestImaginaryUnitFolds(t *testing.T) {
	i := Symbol(ImaginaryUnit)
	sq := must(i.Mul(i))
	assert.Equal(t, "-1", sq.String())
	cube := must(sq.Mul(i))
	assert.Equal(t, "-i", cube.String())
	four := must(cube.Mul(i))
	assert.Equal(t, "1", four.String())

	inv, err := i.Inverse()
	require.NoError(t, err)
	assert.Equal(t, "-i", inv.String())
}

func TestMulDistributes(t *testing.T) {
	xPlus6 := poly(t, Symbol("x"), Term(number.Int(6)))
	xMinus6 := poly(t, Symbol("x"), Term(number.Int(-6)))
	got, err := Mul(xPlus6, xMinus6)
	require.NoError(t, err)
	assert.Equal(t, "x^2-36", got.String())
}

func TestPow(t *testing.T) {
	xPlus1 := poly(t, Symbol("x"), Term(number.One))
	cases := []struct {
		name      string
		base, exp Polynomial
		expected  string
	}{
		{"expand square", xPlus1, Integer(2), "x^2+2x+1"},
		{"integer power", Integer(2), Integer(9), "512"},
		{"negative square root", Integer(-5), Constant(frac(t, 1, 2)), "√(5)i"},
		{"negative inverse square root", Integer(-4), Constant(frac(t, -1, 2)), "-i/2"},
		{"monomial root", FromMonomial(scaled(t, 4, symPow(t, "x", 2))), Constant(frac(t, 1, 2)), "2x"},
		{"irreducible half", xPlus1, Constant(frac(t, 1, 2)), "(x+1)^(1/2)"},
		{"irreducible inverse", xPlus1, Integer(-1), "(x+1)^-1"},
		{"symbolic exponent", Sym("x"), Sym("a"), "x^a"},
		{"symbolic exponent on constant", Integer(2), poly(t, Symbol("a"), Term(number.Int(-1))), "(2)^(a-1)"},
		{"zero exponent", xPlus1, Zero(), "1"},
		{"odd root of negative", Integer(-8), Constant(frac(t, 1, 3)), "-2"},
		{"fourth root of negative", Integer(-16), Constant(frac(t, 1, 4)), "(-16)^(1/4)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Pow(tc.base, tc.exp)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}

	_, err := Pow(Zero(), Integer(-1))
	assert.True(t, surderr.Is(err, surderr.DivisionByZero))
}

func TestIrreducibleEntriesFoldBack(t *testing.T) {
	xPlus1 := poly(t, Symbol("x"), Term(number.One))
	root, err := Pow(xPlus1, Constant(frac(t, 1, 2)))
	require.NoError(t, err)
	got, err := Mul(root, root)
	require.NoError(t, err)
	assert.Equal(t, "x+1", got.String())

	inv, err := Pow(xPlus1, Integer(-1))
	require.NoError(t, err)
	one, err := Mul(inv, xPlus1)
	require.NoError(t, err)
	assert.Equal(t, "x(x+1)^-1+(x+1)^-1", one.String())
}

func TestQuotient(t *testing.T) {
	p := poly(t, scaled(t, 6, symPow(t, "x", 2)), scaled(t, 4, Symbol("x")))
	got, err := Quotient(p, FromMonomial(scaled(t, 2, Symbol("x"))))
	require.NoError(t, err)
	assert.Equal(t, "3x+2", got.String())

	_, err = Quotient(p, Zero())
	assert.ErrorIs(t, err, surderr.ErrDivisionByZero)
}

func TestGCD(t *testing.T) {
	cases := []struct {
		name     string
		terms    []Monomial
		expected string
	}{
		{"coefficients and vars", []Monomial{scaled(t, 6, symPow(t, "x", 2)), scaled(t, 4, Symbol("x"))}, "2x"},
		{"no common var", []Monomial{scaled(t, 3, Symbol("x")), scaled(t, 9, Symbol("y"))}, "3"},
		{"min exponent", []Monomial{must(symPow(t, "x", 3).Mul(symPow(t, "y", 2))), must(symPow(t, "x", 2).Mul(symPow(t, "y", 5)))}, "x^2y^2"},
		{"single term", []Monomial{scaled(t, -5, Symbol("z"))}, "5z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GCD(tc.terms...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}
}

func TestGCDOfIrreducibles(t *testing.T) {
	xPlus1 := poly(t, Symbol("x"), Term(number.One))
	root, err := Pow(xPlus1, Constant(frac(t, 1, 2)))
	require.NoError(t, err)
	a, err := Mul(root, Sym("y"))
	require.NoError(t, err)
	b, err := Scale(root, number.Int(3))
	require.NoError(t, err)
	got, err := GCD(a.Term(0), b.Term(0))
	require.NoError(t, err)
	assert.Equal(t, "(x+1)^(1/2)", got.String())
}

func TestQuadraticRoots(t *testing.T) {
	cases := []struct {
		name     string
		p        Polynomial
		expected []string
	}{
		{"integer roots", poly(t, symPow(t, "z", 2), scaled(t, -5, Symbol("z")), Term(number.Int(6))), []string{"3", "2"}},
		{"imaginary roots", poly(t, symPow(t, "X", 2), Term(number.Int(5))), []string{"√(5)i", "-√(5)i"}},
		{"double root", poly(t, symPow(t, "x", 2), scaled(t, 2, Symbol("x")), Term(number.One)), []string{"-1"}},
		{"irrational roots", poly(t, symPow(t, "x", 2), scaled(t, -2, Symbol("x")), Term(number.Int(-1))), []string{"√(2)+1", "1-√(2)"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sym string
			for _, s := range tc.p.SortedVariables() {
				sym = s
			}
			q, ok := QuadraticIn(tc.p, sym)
			require.True(t, ok)
			roots, err := q.Roots()
			require.NoError(t, err)
			var got []string
			for _, r := range roots {
				got = append(got, r.String())
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestQuadraticInPowers(t *testing.T) {
	p := poly(t, symPow(t, "x", 4), scaled(t, -5, symPow(t, "x", 2)), Term(number.Int(4)))
	q, ok := QuadraticIn(p, "x")
	require.True(t, ok)
	assert.Equal(t, "2", q.Step.String())
	assert.Equal(t, "-5", q.B.String())

	_, ok = QuadraticIn(poly(t, symPow(t, "x", 3), Symbol("x"), Term(number.One)), "x")
	assert.False(t, ok)
	_, ok = QuadraticIn(poly(t, symPow(t, "x", 2), Symbol("x")), "x")
	assert.False(t, ok)
}

func TestSubstitute(t *testing.T) {
	p := poly(t, symPow(t, "z", 2), scaled(t, -5, Symbol("z")), Term(number.Int(6)))
	for _, root := range []int64{2, 3} {
		got, err := Substitute(p, "z", Integer(root))
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "z=%d gives %v", root, got)
	}

	yPlus1 := poly(t, Symbol("y"), Term(number.One))
	got, err := Substitute(FromMonomial(symPow(t, "x", 2)), "x", yPlus1)
	require.NoError(t, err)
	assert.Equal(t, "y^2+2y+1", got.String())

	r5, err := number.Radical(5, 2)
	require.NoError(t, err)
	x2plus5 := poly(t, symPow(t, "X", 2), Term(number.Int(5))).AsEquation(true)
	got, err = Substitute(x2plus5, "X", FromMonomial(Symbol(ImaginaryUnit).WithCoefficient(r5)))
	require.NoError(t, err)
	assert.Equal(t, "0=0", got.String())
}

func TestEval(t *testing.T) {
	p := poly(t, symPow(t, "x", 2), scaled(t, 2, Symbol("x")), Term(number.One))
	assert.Equal(t, complex(16, 0), Eval(p, map[string]complex128{"x": 3}))

	r2, err := number.Radical(2, 2)
	require.NoError(t, err)
	got := Eval(Constant(r2), nil)
	assert.InDelta(t, math.Sqrt2, real(got), 1e-12)

	assert.Equal(t, complex(0, 1), Eval(Sym(ImaginaryUnit), nil))
	assert.True(t, math.IsNaN(real(Eval(Sym("q"), nil))))
}

func TestVariables(t *testing.T) {
	inner := poly(t, Symbol("a"), Term(number.One))
	p, err := Pow(Sym("x"), inner)
	require.NoError(t, err)
	p, err = Add(p, Sym("y"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "x", "y"}, p.SortedVariables())
	assert.True(t, p.Variables().Contains("a"))
}

func TestOverflowPropagates(t *testing.T) {
	big := Integer(math.MaxInt64)
	_, err := Add(big, Integer(1))
	assert.ErrorIs(t, err, surderr.ErrOverflow)
	_, err = Pow(Integer(10), Integer(40))
	assert.True(t, surderr.Is(err, surderr.Overflow))
}
