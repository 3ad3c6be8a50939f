package cmd

import (
	"fmt"

	"github.com/cottand/surd/surderr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cli struct {
	v   *viper.Viper
	cfg Config
}

// Register adds the persistent flags and every subcommand to root. Configuration is loaded
// before any subcommand runs.
func Register(root *cobra.Command) error {
	c := &cli{v: viper.New()}
	if err := bindFlags(c.v, root); err != nil {
		return err
	}
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		cfg, err := loadConfig(c.v)
		if err != nil {
			return err
		}
		c.cfg = cfg
		return nil
	}
	root.AddCommand(
		c.parseCmd(),
		c.factorCmd(),
		c.solveCmd(),
		c.analyseCmd(),
		c.batchCmd(),
		c.serveCmd(),
	)
	return nil
}

func inputError(input string, err error) error {
	return fmt.Errorf("%q: %s", input, surderr.FormatWithCode(err))
}
