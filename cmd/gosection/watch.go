package main

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/philipparndt/gosection/pkg/section"
	"github.com/philipparndt/gosection/pkg/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		plane   planeFlags
		exports exportFlags
	)
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Recompute a section whenever the model changes",
		Long: `Cut the model like the section command, then keep watching the file and,
for OpenSCAD models, every used or included file. Each change reloads the
model and prints the new section until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plane.plane()
			if err != nil {
				return err
			}
			views, err := a.cfg.ViewList()
			if err != nil {
				return err
			}
			debounce, err := a.cfg.DebounceDuration()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			fw, err := watcher.NewFileWatcher(debounce, a.logger)
			if err != nil {
				return err
			}
			defer fw.Close()

			var (
				mu      sync.Mutex
				watched []string
			)
			// run recomputes the section; it returns the files to watch
			run := func() ([]string, error) {
				src, err := a.loader().Load(ctx, args[0])
				if err != nil {
					return nil, err
				}
				result := section.IntersectMesh(src.Mesh, p, a.cfg.SectionOptions(a.logger)...)
				if err := a.present(cmd, result, p, views, &exports); err != nil {
					return nil, err
				}
				return src.Dependencies, nil
			}

			var onChange func(string)
			rewatch := func(deps []string) error {
				if slices.Equal(deps, watched) {
					return nil
				}
				if err := fw.RemoveAll(); err != nil {
					a.logger.Warn("failed to reset watches", "error", err)
				}
				if err := fw.Watch(deps, onChange); err != nil {
					return err
				}
				watched = deps
				a.logger.Info("watching", "files", len(deps))
				return nil
			}
			onChange = func(file string) {
				mu.Lock()
				defer mu.Unlock()
				if ctx.Err() != nil {
					return
				}
				a.logger.Info("file changed, recomputing", "file", file)
				fmt.Fprintln(cmd.OutOrStdout())
				deps, err := run()
				if err != nil {
					a.logger.Error("recompute failed", "error", err)
					return
				}
				if err := rewatch(deps); err != nil {
					a.logger.Error("failed to watch dependencies", "error", err)
				}
			}

			mu.Lock()
			deps, err := run()
			if err == nil {
				err = rewatch(deps)
			}
			mu.Unlock()
			if err != nil {
				return err
			}

			fw.Start(ctx)
			return waitDone(ctx)
		},
	}
	plane.register(cmd.Flags())
	exports.register(cmd.Flags())
	return cmd
}

// waitDone blocks until ctx is cancelled. Interruption is a normal exit.
func waitDone(ctx context.Context) error {
	<-ctx.Done()
	if ctx.Err() == context.Canceled {
		return nil
	}
	return ctx.Err()
}
