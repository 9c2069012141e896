package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sus-lang/sus-parser/internal/batch"
	"github.com/sus-lang/sus-parser/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Re-check source files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runWatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), dir)
		},
	}
}

func (a *app) runWatch(ctx context.Context, out, errOut io.Writer, dir string) error {
	w, err := watch.New(a.cfg.Parse.Extensions, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetDebounce(a.cfg.Watch.Debounce.Duration)

	if err := w.Add(dir); err != nil {
		return err
	}

	// Files that fail to parse are reported like any later change; only a
	// tree that cannot be walked stops the watch.
	if _, err := a.checkPaths(ctx, out, errOut, []string{dir}, a.cfg.Check.Jobs, a.cfg.Check.WarningsAsErrors); err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)\n", dir)
	return w.Run(ctx, func(path string) {
		if err := a.recheck(ctx, out, errOut, path); err != nil {
			a.logger.Debug("recheck failed", "path", path, "error", err)
		}
	})
}

// recheck parses one changed file and reports it the way check does. The
// returned error mirrors what check would return for the file alone.
func (a *app) recheck(ctx context.Context, out, errOut io.Writer, path string) error {
	results, err := batch.ParseFiles(ctx, []string{path}, batch.Options{
		Jobs:   1,
		Trivia: a.cfg.Parse.Trivia,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}

	rep := a.newReporter(out, errOut, a.cfg.Check.WarningsAsErrors)
	rep.file(results[0])
	return rep.result()
}
