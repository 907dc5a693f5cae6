package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"op-overloading/internal/watch"
)

var watchOut string

// watchCmd re-transforms files as they change
var watchCmd = &cobra.Command{
	Use:   "watch DIR --out OUT",
	Short: "Re-transform changed files",
	Long: `Transforms every opted-in file under DIR into OUT, then keeps watching DIR
and re-transforms files as they are saved. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "Output directory (required)")
	_ = watchCmd.MarkFlagRequired("out")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchOut == "" {
		return errors.New("--out is required")
	}

	root := args[0]

	plugin, err := newPlugin(cmd)
	if err != nil {
		return err
	}

	files, err := expandPaths([]string{root})
	if err != nil {
		return err
	}

	for _, f := range files {
		if _, err := transformOne(plugin, f.Path, f.Rel, watchOut); err != nil {
			logger.Error("Transform failed", zap.String("path", f.Path), zap.Error(err))
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	handle := func(_ context.Context, path string) error {
		changed, err := transformOne(plugin, path, relTo(absRoot, path), watchOut)
		if err == nil && changed {
			logger.Info("Transformed", zap.String("path", path))
		}

		return err
	}

	match := func(path string) bool {
		return plugin.TransformInclude(moduleID(path))
	}

	w, err := watch.New(root, match, handle, watch.WithLogger(logger), watch.WithIgnore(watchOut))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()

	return nil
}
