package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/sus-lang/sus-parser/internal/batch"
	"github.com/sus-lang/sus-parser/internal/diag"
	"github.com/sus-lang/sus-parser/internal/parser"
)

// reporter prints per-file marks to out and diagnostics to the formatter
// for one command invocation.
type reporter struct {
	out    io.Writer
	f      *diag.Formatter
	strict bool

	okMark   string
	failMark string

	errors   int
	warnings int
	failed   int
}

// newReporter builds a reporter honoring the configured color setting.
// When strict is set, a file with warnings is marked as failed.
func (a *app) newReporter(out, errOut io.Writer, strict bool) *reporter {
	f := diag.NewFormatter(errOut)
	f.SetColor(a.cfg.Output.Color)

	r := &reporter{out: out, f: f, strict: strict, okMark: "✓", failMark: "✗"}
	if a.cfg.Output.Color {
		lg := lipgloss.NewRenderer(out)
		r.okMark = lg.NewStyle().Foreground(lipgloss.Color("#10B981")).Render(r.okMark)
		r.failMark = lg.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render(r.failMark)
	}
	return r
}

func (r *reporter) addSource(path, src string) {
	r.f.AddSource(path, src)
}

// fail reports err. Parse errors get a source snippet; anything else, such
// as an unreadable file, is reported by message only.
func (r *reporter) fail(err error) {
	r.errors++
	var perr parser.ParseError
	if errors.As(err, &perr) {
		r.f.Format(perr.ToDiagnostic())
		return
	}
	r.f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  err.Error(),
	})
}

func (r *reporter) warn(ws []parser.ParseError) {
	for _, w := range ws {
		r.warnings++
		r.f.Format(w.ToDiagnostic())
	}
}

// file prints the mark line for one batch result followed by its
// diagnostics.
func (r *reporter) file(res batch.Result) {
	if res.Source != "" {
		r.addSource(res.Path, res.Source)
	}

	if res.Err != nil || (r.strict && len(res.Warnings) > 0) {
		r.failed++
		fmt.Fprintf(r.out, "%s %s\n", r.failMark, res.Path)
	} else {
		fmt.Fprintf(r.out, "%s %s\n", r.okMark, res.Path)
	}

	if res.Err != nil {
		r.fail(res.Err)
		return
	}
	r.warn(res.Warnings)
}

// result turns the counts into the command's error. The diagnostics are
// already printed; the error only makes the process exit non-zero.
func (r *reporter) result() error {
	switch {
	case r.errors > 0:
		return fmt.Errorf("%d file(s) failed to parse", r.errors)
	case r.strict && r.warnings > 0:
		return fmt.Errorf("%d warning(s) treated as errors", r.warnings)
	}
	return nil
}
