package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/surd"
	"github.com/spf13/cobra"
)

func (c *cli) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Analyse one expression per line of a file, or of stdin",
		Long: "Analyse one expression per line of a file, or of stdin when the file is - or missing.\n" +
			"Blank lines and lines starting with # are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: c.runBatch,
	}
}

func (c *cli) runBatch(cmd *cobra.Command, args []string) error {
	logger := log.Section("cli")
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	inputs, err := readInputs(in)
	if err != nil {
		return err
	}

	items, err := surd.Batch(cmd.Context(), inputs, c.cfg.options(), c.cfg.Concurrency)
	if err != nil {
		return err
	}
	docs := make([]document, len(items))
	failed := 0
	for i, item := range items {
		docs[i] = document{Value: item}
		if item.Err != nil {
			failed++
			docs[i].Text = fmt.Sprintf("%s => %s", inputs[i], item.Error)
			continue
		}
		docs[i].Text = fmt.Sprintf("%s => %s", inputs[i], strings.ReplaceAll(analysisText(item.Result), "\n", " | "))
		docs[i].Polynomial = &item.Result.Polynomial
	}
	if c.cfg.Output == goOutput && failed > 0 {
		return fmt.Errorf("%d of %d inputs failed, no Go output", failed, len(items))
	}
	if err := emit(cmd.OutOrStdout(), c.cfg.Output, docs); err != nil {
		return err
	}
	logger.Info("batch analysed", "inputs", len(items), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(items))
	}
	return nil
}

func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}
	return inputs, nil
}
