package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sus-lang/sus-parser/internal/batch"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		jobs             int
		warningsAsErrors bool
	)

	cmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Parse every source file under the given paths",
		Long: `Check parses every file with a configured extension under each PATH
(default: the current directory) and prints one line per file followed
by a summary. Files are parsed in parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if jobs <= 0 {
				jobs = a.cfg.Check.Jobs
			}
			strict := warningsAsErrors || a.cfg.Check.WarningsAsErrors
			return a.runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, jobs, strict)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files parsed at once (default from config)")
	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "fail when any file has warnings")
	return cmd
}

func (a *app) runCheck(ctx context.Context, out, errOut io.Writer, roots []string, jobs int, strict bool) error {
	rep, err := a.checkPaths(ctx, out, errOut, roots, jobs, strict)
	if err != nil {
		return err
	}
	return rep.result()
}

// checkPaths parses every source file under roots and reports each one.
// The error covers discovery and cancellation only; parse failures are
// counted on the returned reporter.
func (a *app) checkPaths(ctx context.Context, out, errOut io.Writer, roots []string, jobs int, strict bool) (*reporter, error) {
	rep := a.newReporter(out, errOut, strict)

	var paths []string
	for _, root := range roots {
		found, err := batch.Discover(root, a.cfg.Parse.Extensions)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(out, "No source files found")
		return rep, nil
	}

	results, err := batch.ParseFiles(ctx, paths, batch.Options{
		Jobs:   jobs,
		Trivia: a.cfg.Parse.Trivia,
		Logger: a.logger,
	})
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		rep.file(res)
	}

	fmt.Fprintf(out, "\n%d files, %d passed, %d failed, %d warnings\n",
		len(results), len(results)-rep.failed, rep.failed, rep.warnings)
	return rep, nil
}
