package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/config"
	"github.com/sus-lang/sus-parser/internal/lexer"
	"github.com/sus-lang/sus-parser/internal/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		trivia bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the syntax tree of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			if !slices.Contains(config.Formats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(config.Formats, ", "))
			}
			return a.runParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, format, trivia || a.cfg.Parse.Trivia)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: sexp, json or yaml (default from config)")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include tokens with their trivia in json and yaml output")
	return cmd
}

func (a *app) runParse(out, errOut io.Writer, paths []string, format string, trivia bool) error {
	rep := a.newReporter(out, errOut, a.cfg.Check.WarningsAsErrors)

	var yamlEnc *yaml.Encoder
	if format == "yaml" {
		yamlEnc = yaml.NewEncoder(out)
		yamlEnc.SetIndent(2)
	}

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			rep.fail(fmt.Errorf("read %s: %w", path, err))
			continue
		}
		rep.addSource(path, string(src))

		opts := []parser.Option{parser.WithFilename(path), parser.WithLogger(a.logger)}
		if trivia {
			opts = append(opts, parser.WithTrivia())
		}
		p := parser.New(string(src), opts...)
		file := p.ParseFile()
		if errs := p.Errors(); len(errs) > 0 {
			rep.fail(errs[0])
			continue
		}
		rep.warn(p.Warnings())

		switch format {
		case "sexp":
			fmt.Fprintln(out, ast.Sexp(file))
		case "json":
			data, err := json.MarshalIndent(document(path, file), "", "  ")
			if err != nil {
				return fmt.Errorf("encode %s: %w", path, err)
			}
			fmt.Fprintln(out, string(data))
		case "yaml":
			if err := yamlEnc.Encode(document(path, file)); err != nil {
				yamlEnc.Close()
				return fmt.Errorf("encode %s: %w", path, err)
			}
		}
	}

	if yamlEnc != nil {
		if err := yamlEnc.Close(); err != nil {
			return fmt.Errorf("flush yaml output: %w", err)
		}
	}
	return rep.result()
}

// document is the json and yaml rendering of one parsed file.
func document(path string, file *ast.SourceFile) map[string]any {
	doc := map[string]any{
		"path": path,
		"tree": ast.Export(file),
	}
	if file.Tokens != nil {
		toks := make([]map[string]any, 0, len(file.Tokens))
		for _, tok := range file.Tokens {
			toks = append(toks, exportToken(tok))
		}
		doc["tokens"] = toks
	}
	return doc
}

func exportToken(tok lexer.Token) map[string]any {
	m := map[string]any{
		"type":   string(tok.Type),
		"text":   tok.Literal,
		"line":   tok.Span.Line,
		"column": tok.Span.Column,
	}
	if len(tok.Leading) > 0 {
		leading := make([]map[string]any, 0, len(tok.Leading))
		for _, tr := range tok.Leading {
			leading = append(leading, map[string]any{"type": string(tr.Type), "text": tr.Literal})
		}
		m["leading"] = leading
	}
	return m
}
