package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"op-overloading/internal/gen"
	"op-overloading/internal/transform"
)

var (
	outDir   string
	toStdout bool
	jobs     int
)

// transformCmd rewrites files in batch
var transformCmd = &cobra.Command{
	Use:   "transform [paths...]",
	Short: "Rewrite opted-in modules",
	Long: `Rewrites every file, directory or glob given. Files that pass the
include/exclude filter and carry the directive are transformed; with --out the
others are copied unchanged so the output tree is complete.

Examples:
  op-overloading transform src --out dist
  op-overloading transform 'src/**/*.ts' --out dist --equality loose
  op-overloading transform src/vec.js --stdout`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	transformCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print results to stdout with inline source maps")
	transformCmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Files transformed in parallel")
}

// transformed is the outcome for one input file.
type transformed struct {
	file   sourceFile
	source []byte
	result *transform.Result
}

func runTransform(cmd *cobra.Command, args []string) error {
	if (outDir == "") == !toStdout {
		return errors.New("exactly one of --out or --stdout is required")
	}

	plugin, err := newPlugin(cmd)
	if err != nil {
		return err
	}

	files, err := expandPaths(args)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := checkDestinations(files); err != nil {
			return err
		}
	}

	results := make([]transformed, len(files))

	g := new(errgroup.Group)
	g.SetLimit(max(jobs, 1))

	for i, f := range files {
		g.Go(func() error {
			src, err := os.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", f.Path, err)
			}

			results[i] = transformed{file: f, source: src}

			id := moduleID(f.Path)
			if !plugin.TransformInclude(id) {
				return nil
			}

			results[i].result = plugin.Transform(string(src), id)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	changed := 0

	for _, r := range results {
		if r.result != nil {
			changed++
		}
	}

	logger.Info("Transform finished", zap.Int("files", len(files)), zap.Int("changed", changed))

	if toStdout {
		return printResults(cmd.OutOrStdout(), results)
	}

	return writeResults(outDir, results)
}

func printResults(w io.Writer, results []transformed) error {
	for _, r := range results {
		if r.result == nil {
			continue
		}

		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "// %s\n", r.file.Path); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, gen.Inline(r.result.Code, r.result.Map)); err != nil {
			return err
		}
	}

	return nil
}

func writeResults(dir string, results []transformed) error {
	var files []gen.GeneratedFile

	for _, r := range results {
		if r.result == nil {
			files = append(files, gen.GeneratedFile{Filename: r.file.Rel, Content: r.source})
			continue
		}

		out, err := gen.Files(r.file.Rel, r.result.Code, r.result.Map)
		if err != nil {
			return err
		}

		files = append(files, out...)
	}

	return gen.WriteFiles(files, dir)
}

// transformOne rewrites a single file into dir. It reports whether the file
// changed.
func transformOne(plugin *transform.Plugin, path, rel, dir string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	res := plugin.Apply(string(src), moduleID(path))
	if res == nil {
		return false, nil
	}

	files, err := gen.Files(filepath.ToSlash(rel), res.Code, res.Map)
	if err != nil {
		return false, err
	}

	return true, gen.WriteFiles(files, dir)
}
