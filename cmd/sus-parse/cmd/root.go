package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sus-lang/sus-parser/internal/config"
)

// app is the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sus-parse",
		Short: "Parser front end for the Sus hardware description language",
		Long: `sus-parse reads Sus source files and reports their syntax tree
or the first syntax error in each file.

Commands:
  parse    - print the syntax tree (sexp, json or yaml)
  tokens   - print the token stream
  check    - parse many files in parallel and summarize
  watch    - re-check files as they change`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./sus-parse.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := a.cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded", "file", a.cfgFile, "format", a.cfg.Output.Format, "jobs", a.cfg.Check.Jobs)
	return nil
}
