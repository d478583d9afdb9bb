package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/attackgraph/pkg/config"
	"github.com/dd0wney/attackgraph/pkg/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "attackgraph",
		Short:         "Draw attack graphs and animate the attack path",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("attackgraph {{ .Version }}\n")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		editCmd(opts),
		demoCmd(opts),
		configCmd(opts),
		versionCmd(),
	)
	return cmd
}

// load reads the config file, then applies LOG_LEVEL and the --log-level
// flag in that order. The result is validated again after overrides.
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	overridden := false
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.Log.Level = strings.ToLower(env)
		overridden = true
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func logLevel(cfg config.Config) logging.Level {
	return logging.ParseLevel(cfg.Log.Level)
}
