package factor_test

import (
	"testing"

	"github.com/cottand/surd/factor"
	"github.com/cottand/surd/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactor(t *testing.T) {
	cases := map[string]string{
		"z^2-5z+6":    "(z-2)(z-3)",
		"z^2-5z+6=0":  "(z-2)(z-3)",
		"x^2=36":      "(x+6)(x-6)",
		"6x^2y+4xy":   "(2xy)(3x+2)",
		"-2x-4":       "(-2)(x+2)",
		"-x^2+36":     "(-1)(x+6)(x-6)",
		"x^4-5x^2+4":  "(x+2)(x+1)(x-1)(x-2)",
		"2x^2+3x+1":   "(2)(x+1)(x+1/2)",
		"x^2+2x+1":    "(x+1)(x+1)",
		"x^2+5":       "(x^2+5)",
		"x^2-2":       "(x+√(2))(x-√(2))",
		"6x^2":        "(6x^2)",
		"x^2+y^2":     "(x^2+y^2)",
		"x^3-4x":      "(x)(x+2)(x-2)",
		"0":           "(0)",
		"7":           "(7)",
		"3x+3y":       "(3)(x+y)",
		"x^2y^2-xy^2": "(xy^2)(x-1)",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			p, err := parser.Parse(input)
			require.NoError(t, err)
			factors, err := factor.Factor(p)
			require.NoError(t, err)
			assert.Equal(t, expected, factor.String(factors))
		})
	}
}

func TestDistributeReconstructs(t *testing.T) {
	inputs := []string{
		"z^2-5z+6",
		"x^2-36",
		"-2x-4",
		"x^4-5x^2+4",
		"2x^2+3x+1",
		"x^2-2x-1",
		"6x^2y+4xy",
		"x^2+5",
		"3√(2)x^2-√(2)x",
		"x(x+1)^(1/2)+2x",
		"a^2b+ab^2",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p, err := parser.Parse(input)
			require.NoError(t, err)
			factors, err := factor.Factor(p)
			require.NoError(t, err)
			back, err := factor.Distribute(factors)
			require.NoError(t, err)
			assert.True(t, p.Equal(back), "%s distributes to %s", factor.String(factors), back)
		})
	}
}
