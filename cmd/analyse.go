package cmd

import (
	"strings"

	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/solve"
	"github.com/cottand/surd/surd"
	"github.com/spf13/cobra"
)

type parseView struct {
	Input        string `json:"input" yaml:"input"`
	StandardForm string `json:"standardForm" yaml:"standardForm"`
	Equation     bool   `json:"equation" yaml:"equation"`
}

type factorView struct {
	Input   string   `json:"input" yaml:"input"`
	Factors []string `json:"factors" yaml:"factors"`
}

type solveView struct {
	Input     string          `json:"input" yaml:"input"`
	Solutions []surd.Solution `json:"solutions" yaml:"solutions"`
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse expression...",
		Short: "Print the standard form of each expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.analyseEach(cmd, args, func(res *surd.Result) (document, error) {
				return document{
					Value:      parseView{Input: res.Input, StandardForm: res.StandardForm, Equation: res.Equation},
					Text:       res.StandardForm,
					Polynomial: &res.Polynomial,
				}, nil
			})
		},
	}
}

func (c *cli) factorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factor expression...",
		Short: "Factor each expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.analyseEach(cmd, args, func(res *surd.Result) (document, error) {
				return document{
					Value: factorView{Input: res.Input, Factors: res.Factors},
					Text:  res.Factorization(),
				}, nil
			})
		},
	}
}

func (c *cli) solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve equation...",
		Short: "Solve each equation for every variable it contains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.analyseEach(cmd, args, func(res *surd.Result) (document, error) {
				if !res.Equation {
					_, err := solve.Solve(res.Polynomial)
					return document{}, err
				}
				return document{
					Value: solveView{Input: res.Input, Solutions: res.Solutions},
					Text:  solutionsText(res.Solved),
				}, nil
			})
		},
	}
}

func (c *cli) analyseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyse expression...",
		Short: "Print the standard form, factors and solutions of each expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.analyseEach(cmd, args, func(res *surd.Result) (document, error) {
				return document{
					Value:      res,
					Text:       analysisText(res),
					Polynomial: &res.Polynomial,
				}, nil
			})
		},
	}
}

func (c *cli) analyseEach(cmd *cobra.Command, args []string, render func(*surd.Result) (document, error)) error {
	logger := log.Section("cli")
	docs := make([]document, 0, len(args))
	for _, input := range args {
		res, err := surd.Analyse(input, c.cfg.options())
		if err != nil {
			return inputError(input, err)
		}
		d, err := render(res)
		if err != nil {
			return inputError(input, err)
		}
		docs = append(docs, d)
	}
	logger.Debug("rendering", "command", cmd.Name(), "inputs", len(args), "output", c.cfg.Output)
	return emit(cmd.OutOrStdout(), c.cfg.Output, docs)
}

func solutionsText(sols solve.Solutions) string {
	if len(sols) == 0 {
		return "no solutions"
	}
	return sols.String()
}

func analysisText(res *surd.Result) string {
	sb := strings.Builder{}
	sb.WriteString(res.StandardForm)
	sb.WriteString("\nfactors: ")
	sb.WriteString(res.Factorization())
	if res.Equation {
		sb.WriteString("\nsolutions: ")
		sb.WriteString(solutionsText(res.Solved))
	}
	return sb.String()
}
