package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	root := &cobra.Command{Use: "surd", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, Register(root))
	out := bytes.NewBuffer(nil)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTextOutput(t *testing.T) {
	cases := []struct {
		args     []string
		expected string
	}{
		{[]string{"parse", "x^2=36", "2^3^2"}, "x^2-36=0\n512\n"},
		{[]string{"parse", "5/2x=4"}, "5x/2-4=0\n"},
		{[]string{"factor", "z^2-5z+6=0"}, "(z-2)(z-3)\n"},
		{[]string{"solve", "x^2=36"}, "x=6 or -6\n"},
		{[]string{"solve", "X^2=-5"}, "X=√(5)i or -√(5)i\n"},
		{[]string{"solve", "x=x"}, "no solutions\n"},
		{[]string{"analyse", "z^2-5z+6=0"}, "z^2-5z+6=0\nfactors: (z-2)(z-3)\nsolutions: z=3 or 2\n"},
		{[]string{"analyse", "x^2-1"}, "x^2-1\nfactors: (x+1)(x-1)\n"},
		{[]string{"parse", "(x+1"}, "x+1\n"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, err := run(t, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		args     []string
		contains string
	}{
		{[]string{"solve", "x^2-1"}, "(E002)"},
		{[]string{"parse", "--strict", "(x+1"}, "(E004)"},
		{[]string{"parse", "1/0"}, "(E005)"},
		{[]string{"parse", "-o", "xml", "x"}, "unknown output"},
		{[]string{"factor", "-o", "go", "x"}, "not available"},
		{[]string{"parse", "--log-level", "loud", "x"}, "log level"},
		{[]string{"batch", "--concurrency", "0"}, "concurrency"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			_, err := run(t, "", tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, err := run(t, "", "parse", "-o", "json", "x^2=36")
	require.NoError(t, err)
	assert.JSONEq(t, `{"input": "x^2=36", "standardForm": "x^2-36=0", "equation": true}`, out)

	out, err = run(t, "", "analyse", "--output", "json", "x^2=36", "2^3^2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "512", second["standardForm"])
	assert.NotContains(t, second, "solutions")
}

func TestYAMLOutput(t *testing.T) {
	out, err := run(t, "", "factor", "-o", "yaml", "x^2=36")
	require.NoError(t, err)
	var got factorView
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, factorView{Input: "x^2=36", Factors: []string{"x+6", "x-6"}}, got)
}

func TestGoOutput(t *testing.T) {
	out, err := run(t, "", "parse", "-o", "go", "x^2+1")
	require.NoError(t, err)
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "func Eval(vars map[string]complex128) complex128")
}

func TestBatch(t *testing.T) {
	stdin := "x^2=36\n\n# skipped\n1/0\n2^3^2\n"
	out, err := run(t, stdin, "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 inputs failed")
	assert.Equal(t, []string{
		"x^2=36 => x^2-36=0 | factors: (x+6)(x-6) | solutions: x=6 or -6",
		"1/0 => (E005) division of 1 by zero",
		"2^3^2 => 512 | factors: (512)",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestBatchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	require.NoError(t, os.WriteFile(path, []byte("x^2=36\nz^2-5z+6=0\n"), 0o644))

	out, err := run(t, "", "batch", "-o", "json", "--concurrency", "2", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"standardForm":"z^2-5z+6=0"`)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nstrict: true\n"), 0o644))

	_, err := run(t, "", "--config", path, "parse", "(x")
	require.Error(t, err, "strict from the config file")

	out, err := run(t, "", "--config", path, "parse", "x=1")
	require.NoError(t, err)
	assert.Contains(t, out, "standardForm: x-1=0")

	t.Setenv("SURD_OUTPUT", "text")
	t.Setenv("SURD_STRICT", "false")
	out, err = run(t, "", "--config", path, "parse", "(x")
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)

	out, err = run(t, "", "--config", path, "-o", "json", "parse", "x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"input": "x", "standardForm": "x", "equation": false}`, out)
}
