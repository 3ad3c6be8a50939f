package solve_test

import (
	"testing"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/parser"
	"github.com/cottand/surd/solve"
	"github.com/cottand/surd/surderr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solveText(t *testing.T, input string) (expr.Polynomial, solve.Solutions) {
	p, err := parser.Parse(input)
	require.NoError(t, err)
	sols, err := solve.Solve(p)
	require.NoError(t, err)
	return p, sols
}

func TestSolve(t *testing.T) {
	cases := map[string]string{
		"z^2-5z+6=0": "z=3 or 2",
		"x^2=36":     "x=6 or -6",
		"X^2=-5":     "X=√(5)i or -√(5)i",
		"5/2x=4":     "x=8/5",
		"x^2-5x=0":   "x=5 or 0",
		"xy=0":       "x=0; y=0",
		"x^3=8":      "x=2",
		"x^4=16":     "x=2i or -2i or 2 or -2",
		"x^2+2x+5=0": "x=2i-1 or -2i-1",
		"x^2-2x-1=0": "x=√(2)+1 or 1-√(2)",
		"x+y=0":      "x=-y; y=-x",
		"2x=4y":      "x=2y; y=x/2",
		"x^2=y":      "x=y^(1/2) or -y^(1/2); y=x^2",
		"1/x=2":      "x=1/2",
		"x=x":        "",
		"7=0":        "",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			_, sols := solveText(t, input)
			assert.Equal(t, expected, sols.String())
		})
	}
}

func TestSolveRequiresEquation(t *testing.T) {
	p, err := parser.Parse("x^2-1")
	require.NoError(t, err)
	_, err = solve.Solve(p)
	assert.True(t, surderr.Is(err, surderr.NotAnEquation))
	assert.ErrorIs(t, err, surderr.ErrNotAnEquation)
}

func TestLookup(t *testing.T) {
	_, sols := solveText(t, "2x=4y")
	sol, ok := sols.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, "y=x/2", sol.String())
	_, ok = sols.Lookup("z")
	assert.False(t, ok)
}

func TestSolutionsSatisfyTheEquation(t *testing.T) {
	inputs := []string{
		"z^2-5z+6=0",
		"x^2=36",
		"X^2=-5",
		"5/2x=4",
		"x^4=16",
		"x^2+2x+5=0",
		"x^2-2x-1=0",
		"x+y=0",
		"x^2=y",
		"3x^2-12=0",
		"2x^2+3x+1=0",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p, sols := solveText(t, input)
			require.NotEmpty(t, sols)
			for _, sol := range sols {
				for _, v := range sol.Values {
					got, err := expr.Substitute(p, sol.Variable, v)
					require.NoError(t, err)
					assert.True(t, got.IsZero(), "%s=%s gives %s", sol.Variable, v, got)
				}
			}
		})
	}
}
