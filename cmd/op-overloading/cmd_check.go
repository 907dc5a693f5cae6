package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"op-overloading/internal/diagnostic"
	"op-overloading/internal/transform"
)

// checkCmd reports what transform would do
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report opted-in files and rewrite counts",
	Long: `Runs the transform without writing anything and reports, per file, whether
it opts in, how many expressions would be rewritten and any overlapping
expressions that would be left alone. Exits non-zero on syntax errors in
files that pass the filter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pathStyle  = lipgloss.NewStyle().Width(40)
)

func runCheck(cmd *cobra.Command, args []string) error {
	plugin, err := newPlugin(cmd)
	if err != nil {
		return err
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}

	var all diagnostic.Diagnostics

	reports := make([]*transform.Report, 0, len(files))

	for _, f := range files {
		id := moduleID(f.Path)
		if !plugin.TransformInclude(id) {
			continue
		}

		src, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Path, err)
		}

		rep := plugin.Transformer().Check(string(src), id)
		reports = append(reports, rep)
		all.Merge(rep.Diagnostics)
	}

	printReports(cmd.OutOrStdout(), reports)

	if all.HasErrors() {
		return fmt.Errorf("%d file(s) failed to parse", len(all.Errors))
	}

	return nil
}

func printReports(w io.Writer, reports []*transform.Report) {
	opted := 0

	for _, rep := range reports {
		path := pathStyle.Render(rep.ID)

		switch {
		case rep.Diagnostics.HasErrors():
			fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✗"), path, errorStyle.Render("syntax error"))
		case rep.Directive:
			opted++

			status := fmt.Sprintf("%d rewritten", rep.Rewritten)
			if rep.Skipped > 0 {
				status += warnStyle.Render(fmt.Sprintf(", %d skipped", rep.Skipped))
			}

			fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("✓"), path, status)
		default:
			fmt.Fprintf(w, "%s %s\n", dimStyle.Render("-"), dimStyle.Render(fmt.Sprintf("%s no directive", path)))
		}

		for _, d := range rep.Diagnostics.Errors {
			fmt.Fprintf(w, "    %s\n", errorStyle.Render(d.String()))
		}

		for _, d := range rep.Diagnostics.Warnings {
			fmt.Fprintf(w, "    %s\n", warnStyle.Render(d.String()))
		}
	}

	fmt.Fprintf(w, "\n%d of %d file(s) opt in\n", opted, len(reports))
}
