package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sus-lang/sus-parser/internal/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], trivia)
		},
	}

	cmd.Flags().BoolVar(&trivia, "trivia", false, "also print whitespace and comments")
	return cmd
}

func (a *app) runTokens(out, errOut io.Writer, path string, trivia bool) error {
	rep := a.newReporter(out, errOut, false)

	src, err := os.ReadFile(path)
	if err != nil {
		rep.fail(fmt.Errorf("read %s: %w", path, err))
		return rep.result()
	}
	rep.addSource(path, string(src))

	l := lexer.New(string(src))
	l.SetFilename(path)

	for {
		tok := l.NextToken()
		if trivia {
			for _, tr := range tok.Leading {
				fmt.Fprintf(out, "%d:%d\t  %s\t%q\n", tr.Span.Line, tr.Span.Column, tr.Type, tr.Literal)
			}
		}
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Literal)
		if tok.Type == lexer.EOF {
			break
		}
	}

	for _, lexErr := range l.Errors {
		rep.errors++
		rep.f.Format(lexErr.ToDiagnostic())
	}
	a.logger.Debug("tokenized file", "path", path, "errors", len(l.Errors))
	if rep.errors > 0 {
		return fmt.Errorf("%d lexical error(s) in %s", rep.errors, path)
	}
	return nil
}
