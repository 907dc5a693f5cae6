// Package main provides the CLI entrypoint for op-overloading.
//
// op-overloading rewrites JavaScript and TypeScript modules that opt in with
// the "use operator overloading" directive:
//   - transform: batch rewrite files into an output directory or stdout
//   - check: report which files opt in and what would be rewritten
//   - filter-diagnostics: drop type checker operator errors for opted-in files
//   - watch: re-transform files as they change
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"op-overloading/internal/options"
)

var (
	// Global flags
	verbose    bool
	configPath string
	equality   string
	namespace  string
	debug      bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "op-overloading",
	Short: "Opt-in operator overloading for JavaScript and TypeScript",
	Long: `op-overloading rewrites operator expressions in modules that start with the
"use operator overloading" directive. Each eligible expression becomes a
dispatch that calls the operand's Symbol.for("<op>") method when present and
falls back to the native operator otherwise.

Options are read from .op-overloading.yaml in the working directory, or from
the file given with --config. Flags override file values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Options file (default: ./"+options.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&equality, "equality", "", "Equality mode: off, loose, strict or both")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", "Prefix for Symbol.for keys (empty disables)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every transformed file")

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(filterDiagnosticsCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
