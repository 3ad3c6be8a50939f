// Package surd ties the parser, factorer and solver together behind a single call.
package surd

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/cottand/surd/expr"
	"github.com/cottand/surd/factor"
	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/parser"
	"github.com/cottand/surd/solve"
	"github.com/cottand/surd/surderr"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Strict rejects malformed input instead of repairing it
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

type Solution struct {
	Variable string   `json:"variable" yaml:"variable"`
	Values   []string `json:"values" yaml:"values"`
}

// Result is everything Analyse knows about one input.
// Solutions is only set for equations.
type Result struct {
	Input        string     `json:"input" yaml:"input"`
	StandardForm string     `json:"standardForm" yaml:"standardForm"`
	Equation     bool       `json:"equation" yaml:"equation"`
	Factors      []string   `json:"factors" yaml:"factors"`
	Solutions    []Solution `json:"solutions,omitempty" yaml:"solutions,omitempty"`

	Polynomial expr.Polynomial   `json:"-" yaml:"-"`
	Factored   []expr.Polynomial `json:"-" yaml:"-"`
	Solved     solve.Solutions   `json:"-" yaml:"-"`
}

// Factorization renders Factors as (f1)(f2)...
func (r *Result) Factorization() string {
	return factor.String(r.Factored)
}

func stripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Analyse parses text, then factors it, then solves it when it is an equation.
// Whitespace in text is ignored.
func Analyse(text string, opts Options) (*Result, error) {
	logger := log.Section("surd")
	start := time.Now()

	p, err := parser.ParseWith(stripSpace(text), parser.Options{Strict: opts.Strict})
	if err != nil {
		logger.Debug("parse failed", "input", text, "code", surderr.CodeOf(err))
		return nil, fmt.Errorf("parse %q: %w", text, err)
	}
	factors, err := factor.Factor(p)
	if err != nil {
		return nil, fmt.Errorf("factor %v: %w", p, err)
	}
	res := &Result{
		Input:        text,
		StandardForm: p.String(),
		Equation:     p.IsEquation(),
		Factors:      make([]string, len(factors)),
		Polynomial:   p,
		Factored:     factors,
	}
	for i, f := range factors {
		res.Factors[i] = f.String()
	}
	if p.IsEquation() {
		if res.Solved, err = solve.Solve(p); err != nil {
			return nil, fmt.Errorf("solve %v: %w", p, err)
		}
		for _, sol := range res.Solved {
			values := make([]string, len(sol.Values))
			for i, v := range sol.Values {
				values[i] = v.String()
			}
			res.Solutions = append(res.Solutions, Solution{Variable: sol.Variable, Values: values})
		}
	}
	logger.Debug("analysed", "input", text, "standardForm", res.StandardForm, "took", time.Since(start))
	return res, nil
}

// BatchItem is the outcome of one input of a Batch. Exactly one of Result and Err is set.
type BatchItem struct {
	Result *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
	Err    error   `json:"-" yaml:"-"`
}

// Batch analyses inputs with at most concurrency of them in flight and returns one item per
// input, in input order. A failing input does not stop the others; only cancellation of ctx does.
func Batch(ctx context.Context, inputs []string, opts Options, concurrency int) ([]BatchItem, error) {
	logger := log.Section("surd.batch")
	if concurrency < 1 {
		concurrency = 1
	}
	items := make([]BatchItem, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Analyse(input, opts)
			if err != nil {
				items[i] = BatchItem{Error: surderr.FormatWithCode(err), Err: err}
				return nil
			}
			items[i] = BatchItem{Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("batch interrupted", "err", err)
		return nil, err
	}
	logger.Debug("batch done", "inputs", len(inputs), "concurrency", concurrency)
	return items, nil
}
