package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"op-overloading/internal/diagnostic"
)

var sourcePath string

// filterDiagnosticsCmd filters type checker output for one file
var filterDiagnosticsCmd = &cobra.Command{
	Use:   "filter-diagnostics --file FILE",
	Short: "Drop operator errors from TypeScript diagnostics",
	Long: `Reads a JSON array of TypeScript diagnostics ({code, message, start,
length, category}) on stdin and writes it back without the operator errors
2362, 2363, 2365 and 2460 when FILE carries the directive. Diagnostics of other
files pass through unchanged.`,
	Args: cobra.NoArgs,
	RunE: runFilterDiagnostics,
}

func init() {
	filterDiagnosticsCmd.Flags().StringVarP(&sourcePath, "file", "f", "", "Source file the diagnostics belong to (required)")
	_ = filterDiagnosticsCmd.MarkFlagRequired("file")
}

func runFilterDiagnostics(cmd *cobra.Command, args []string) error {
	if sourcePath == "" {
		return errors.New("--file is required")
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	var diags []diagnostic.TypeScriptDiagnostic
	if err := json.NewDecoder(cmd.InOrStdin()).Decode(&diags); err != nil {
		return fmt.Errorf("decoding diagnostics: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	filter := &diagnostic.Filter{Logger: logger, Debug: cfg.Debug}
	filtered := filter.Apply(moduleID(sourcePath), string(src), diags)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(filtered)
}
