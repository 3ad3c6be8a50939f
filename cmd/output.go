package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cottand/surd/backend"
	"github.com/cottand/surd/expr"
	"gopkg.in/yaml.v3"
)

// document is one printed result. Value is encoded for json and yaml output, Text is printed
// for text output and Polynomial is transpiled for go output.
type document struct {
	Value      any
	Text       string
	Polynomial *expr.Polynomial
}

// emit writes docs to w in the given format: one line per document for text, JSON lines for
// json, a YAML stream for yaml and one Go file per document for go
func emit(w io.Writer, format string, docs []document) error {
	switch format {
	case jsonOutput:
		enc := json.NewEncoder(w)
		for _, d := range docs {
			if err := enc.Encode(d.Value); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
		}
	case yamlOutput:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, d := range docs {
			if err := enc.Encode(d.Value); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
		}
		return enc.Close()
	case goOutput:
		for _, d := range docs {
			if d.Polynomial == nil {
				return fmt.Errorf("output %s is not available for this command", goOutput)
			}
			src, err := backend.Transpile(*d.Polynomial)
			if err != nil {
				return fmt.Errorf("transpile %v: %w", d.Polynomial, err)
			}
			if _, err := io.WriteString(w, src); err != nil {
				return err
			}
		}
	default:
		for _, d := range docs {
			if _, err := fmt.Fprintln(w, d.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
