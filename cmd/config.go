package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/cottand/surd/internal/log"
	"github.com/cottand/surd/surd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is read from, in increasing precedence, defaults, the YAML file named by --config,
// SURD_ environment variables, then explicitly set flags
type Config struct {
	LogLevel    string `mapstructure:"log-level"`
	JSONLogs    bool   `mapstructure:"json-logs"`
	Output      string `mapstructure:"output"`
	Strict      bool   `mapstructure:"strict"`
	Concurrency int    `mapstructure:"concurrency"`
	Addr        string `mapstructure:"addr"`
}

func (c Config) options() surd.Options {
	return surd.Options{Strict: c.Strict}
}

const (
	textOutput = "text"
	jsonOutput = "json"
	yamlOutput = "yaml"
	goOutput   = "go"
)

var outputs = []string{textOutput, jsonOutput, yamlOutput, goOutput}

const envPrefix = "SURD"

func bindFlags(v *viper.Viper, root *cobra.Command) error {
	f := root.PersistentFlags()
	f.String("config", "", "path to a YAML config file")
	f.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	f.Bool("json-logs", false, "write logs as JSON")
	f.StringP("output", "o", textOutput, "output format ("+strings.Join(outputs, ", ")+")")
	f.Bool("strict", false, "reject malformed input instead of repairing it")
	f.Int("concurrency", runtime.NumCPU(), "inputs analysed at once by batch and serve")
	f.String("addr", ":8080", "listen address for serve")

	if err := v.BindPFlags(f); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

func loadConfig(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if !slices.Contains(outputs, cfg.Output) {
		return Config{}, fmt.Errorf("unknown output %q, expected one of %s", cfg.Output, strings.Join(outputs, ", "))
	}
	if cfg.Concurrency < 1 {
		return Config{}, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	if cfg.JSONLogs {
		log.SetOutput(os.Stderr, true)
	}
	return cfg, nil
}
