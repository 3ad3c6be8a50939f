//go:build js && wasm

package surd

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/cottand/surd/surderr"
)

// AnalyseJS runs Analyse on its first argument, and strict parsing when the second argument is
// true.
//
// output: { error: string } | { standardForm: string, equation: bool, factors: string, solutions: string }
func AnalyseJS(_ js.Value, args []js.Value) (ret any) {
	errorObj := func(err string) any {
		return js.ValueOf(map[string]any{
			"error": err,
		})
	}
	defer func() {
		if r := recover(); r != nil {
			ret = errorObj("surd panicked: " + fmt.Sprint(r))
		}
	}()
	if len(args) < 1 {
		return errorObj(fmt.Sprintf("expected at least 1 argument, got %d", len(args)))
	}
	opts := Options{}
	if len(args) > 1 {
		opts.Strict = args[1].Truthy()
	}

	res, err := Analyse(args[0].String(), opts)
	if err != nil {
		return errorObj(surderr.FormatWithCode(err))
	}
	solutions := make([]string, len(res.Solved))
	for i, sol := range res.Solved {
		solutions[i] = sol.String()
	}
	return js.ValueOf(map[string]any{
		"standardForm": res.StandardForm,
		"equation":     res.Equation,
		"factors":      res.Factorization(),
		"solutions":    strings.Join(solutions, "\n"),
	})
}
