package backend

import (
	"testing"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

func transpile(t *testing.T, input string) (expr.Polynomial, string) {
	p, err := parser.Parse(input)
	require.NoError(t, err)
	f, err := NewTranspiler().TranspileFile("main", p)
	require.NoError(t, err)
	src, err := Source(f)
	require.NoError(t, err)
	return p, src
}

func evalGenerated(t *testing.T, src, call string) complex128 {
	i := interp.New(interp.Options{})
	require.NoError(t, i.Use(stdlib.Symbols))
	_, err := i.Eval(src)
	require.NoError(t, err, src)
	v, err := i.Eval(call)
	require.NoError(t, err, src)
	return v.Complex()
}

func TestGeneratedSource(t *testing.T) {
	p, err := parser.Parse("x^2+1")
	require.NoError(t, err)
	src, err := Transpile(p)
	require.NoError(t, err)
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, "func Eval(vars map[string]complex128) complex128")
	assert.NotContains(t, src, "math/cmplx")

	_, src = transpile(t, "√(2)x")
	assert.Contains(t, src, `"math/cmplx"`)
	assert.Contains(t, src, "cmplx.Sqrt")
}

func TestInvalidNames(t *testing.T) {
	_, err := NewTranspiler().TranspileFile("not a package", expr.Zero())
	assert.Error(t, err)

	tp := NewTranspiler()
	tp.FuncName = "1st"
	_, err = tp.TranspileFile("main", expr.Zero())
	assert.Error(t, err)
}

func TestGeneratedCodeMatchesEval(t *testing.T) {
	cases := []struct {
		input string
		env   map[string]complex128
		call  string
	}{
		{"x^2+2x+1", map[string]complex128{"x": 3}, `Eval(map[string]complex128{"x": 3})`},
		{"√(2)x/2", map[string]complex128{"x": 2}, `Eval(map[string]complex128{"x": 2})`},
		{"∛(2)y-3", map[string]complex128{"y": 1.5}, `Eval(map[string]complex128{"y": 1.5})`},
		{"x(x+1)^(1/2)", map[string]complex128{"x": 3}, `Eval(map[string]complex128{"x": 3})`},
		{"x^-2+x^7", map[string]complex128{"x": 2}, `Eval(map[string]complex128{"x": 2})`},
		{"X^2+5", map[string]complex128{"X": complex(0, 2.23606797749979)}, `Eval(map[string]complex128{"X": complex(0, 2.23606797749979)})`},
		{"2^a", map[string]complex128{"a": 10}, `Eval(map[string]complex128{"a": 10})`},
		{"5/7-3i", nil, `Eval(nil)`},
		{"0", nil, `Eval(nil)`},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			p, src := transpile(t, tc.input)
			got := evalGenerated(t, src, tc.call)
			want := expr.Eval(p, tc.env)
			assert.InDelta(t, real(want), real(got), 1e-9, src)
			assert.InDelta(t, imag(want), imag(got), 1e-9, src)
		})
	}
}

func TestFuncName(t *testing.T) {
	p, err := parser.Parse("3x")
	require.NoError(t, err)
	tp := NewTranspiler()
	tp.FuncName = "Triple"
	f, err := tp.TranspileFile("main", p)
	require.NoError(t, err)
	src, err := Source(f)
	require.NoError(t, err)
	got := evalGenerated(t, src, `Triple(map[string]complex128{"x": 4})`)
	assert.Equal(t, complex(12, 0), got)
}
