package cmd

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/sus-lang/sus-parser/internal/parser"
)

// Version is the release of the sus-parse tool, set at build time with
// -ldflags "-X .../cmd.Version=...".
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// No config is needed to print a version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammar, err := semver.NewVersion(parser.GrammarVersion)
			if err != nil {
				return fmt.Errorf("grammar version: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sus-parse %s\n", Version)
			fmt.Fprintf(out, "  Grammar:    %s (Sus %d.%d)\n", grammar, grammar.Major(), grammar.Minor())
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
