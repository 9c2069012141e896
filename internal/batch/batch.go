// Package batch parses many independent Sus sources in parallel.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sus-lang/sus-parser/internal/ast"
	"github.com/sus-lang/sus-parser/internal/parser"
)

// Options configures ParseFiles.
type Options struct {
	// Jobs bounds the number of files parsed at once. Zero means GOMAXPROCS.
	Jobs   int
	Trivia bool
	Logger *slog.Logger
}

// Result is the outcome for one file. Err is set when the file could not be
// read or did not parse; File is nil in that case.
type Result struct {
	Path     string
	Source   string
	File     *ast.SourceFile
	Err      error
	Warnings []parser.ParseError
}

// ParseFiles parses every path and returns the results in the order of
// paths. A file that fails to parse does not stop the others; only a
// cancelled context makes ParseFiles itself return an error.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseOne(path, opts.Trivia, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseOne(path string, trivia bool, logger *slog.Logger) Result {
	res := Result{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	res.Source = string(src)

	opts := []parser.Option{parser.WithFilename(path), parser.WithLogger(logger)}
	if trivia {
		opts = append(opts, parser.WithTrivia())
	}

	p := parser.New(res.Source, opts...)
	res.File = p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		res.Err = errs[0]
	}
	res.Warnings = p.Warnings()

	logger.Debug("parsed file", "path", path, "ok", res.Err == nil, "warnings", len(res.Warnings))
	return res
}

// Discover lists the files under root whose extension is one of exts, in
// lexical order. Directories whose name starts with a dot are skipped. A
// root that is a regular file is returned as is.
func Discover(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if HasExtension(path, exts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	return paths, nil
}

// HasExtension reports whether path ends in one of exts. Multi-part
// extensions such as ".tb.sus" are matched as suffixes.
func HasExtension(path string, exts []string) bool {
	return slices.ContainsFunc(exts, func(ext string) bool {
		return strings.HasSuffix(path, ext)
	})
}
