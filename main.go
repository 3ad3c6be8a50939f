//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/surd/cmd"
	"github.com/spf13/cobra"
)

func main() {
	if err := cmd.Register(rootCmd); err != nil {
		panic(err)
	}
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "surd [subcommand]",
	Short:        "surd √\n exact symbolic algebra: standard forms, factors and closed-form solutions",
	SilenceUsage: true,
}
