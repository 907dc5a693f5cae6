package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"op-overloading/internal/options"
	"op-overloading/internal/transform"
)

// resolveConfig reads the options file and applies flag overrides.
func resolveConfig(cmd *cobra.Command) (options.Resolved, error) {
	raw, err := loadOptions()
	if err != nil {
		return options.Resolved{}, err
	}

	raw = raw.Merge(flagOptions(cmd))

	cfg, err := options.Resolve(raw)
	if err != nil {
		return options.Resolved{}, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}

func loadOptions() (options.Options, error) {
	if configPath != "" {
		return options.LoadFile(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return options.Options{}, fmt.Errorf("getting working directory: %w", err)
	}

	return options.Find(cwd)
}

// flagOptions returns the options set explicitly on the command line.
func flagOptions(cmd *cobra.Command) options.Options {
	var o options.Options

	flags := cmd.Flags()

	if flags.Changed("equality") {
		o.Equality = &equality
	}

	if flags.Changed("namespace") {
		ns := options.Namespace(namespace)
		o.SymbolsNamespace = &ns
	}

	if flags.Changed("debug") {
		o.Debug = &debug
	}

	return o
}

// newPlugin builds the plugin for the current command.
func newPlugin(cmd *cobra.Command) (*transform.Plugin, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	return transform.NewPluginResolved(cfg, transform.WithLogger(logger))
}
