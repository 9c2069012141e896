package diag

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	severity map[Severity]lipgloss.Style
	gutter   lipgloss.Style
	primary  lipgloss.Style
	second   lipgloss.Style
	help     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		plain := r.NewStyle()
		return styles{
			severity: map[Severity]lipgloss.Style{},
			gutter:   plain,
			primary:  plain,
			second:   plain,
			help:     plain,
		}
	}
	return styles{
		severity: map[Severity]lipgloss.Style{
			SeverityError:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
			SeverityWarning: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
			SeverityNote:    r.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		},
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#64748B")),
		primary: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		second:  r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		help:    r.NewStyle().Foreground(lipgloss.Color("#10B981")),
	}
}

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	w           io.Writer
	renderer    *lipgloss.Renderer
	styles      styles
	sourceCache map[string]string // Cache of source files by filename
}

// NewFormatter creates a new diagnostic formatter writing to w. Colors follow
// the terminal capabilities lipgloss detects for w.
func NewFormatter(w io.Writer) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:           w,
		renderer:    r,
		styles:      newStyles(r, true),
		sourceCache: make(map[string]string),
	}
}

// SetColor turns styling on or off.
func (f *Formatter) SetColor(enabled bool) {
	f.styles = newStyles(f.renderer, enabled)
}

// AddSource registers in-memory source text for filename.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format formats and prints a diagnostic in Rust-style format.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	// Group spans by file
	spansByFile := make(map[string][]LabeledSpan)
	var files []string
	for _, span := range spans {
		filename := span.Span.Filename
		if _, seen := spansByFile[filename]; !seen {
			files = append(files, filename)
		}
		spansByFile[filename] = append(spansByFile[filename], span)
	}

	f.printHeader(d)

	for _, filename := range files {
		src, err := f.LoadSource(filename)
		if err != nil {
			// If we can't load source, fall back to the location only
			fmt.Fprintf(f.w, "  --> %s\n", spansByFile[filename][0].Span)
			continue
		}
		f.printFileSpans(filename, src, spansByFile[filename])
	}

	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}
	label := string(severity)
	if d.Code != "" {
		label = fmt.Sprintf("%s[%s]", severity, d.Code)
	}
	if style, ok := f.styles.severity[severity]; ok {
		label = style.Render(label)
	}
	fmt.Fprintf(f.w, "%s: %s\n", label, d.Message)
}

// printFileSpans prints source code with underlines for spans in a file.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan) {
	slices.SortFunc(spans, func(a, b LabeledSpan) int {
		return cmp.Or(cmp.Compare(a.Span.Line, b.Span.Line), cmp.Compare(a.Span.Column, b.Span.Column))
	})

	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}

	lineNumbers := slices.Sorted(maps.Keys(spansByLine))

	if len(lineNumbers) == 0 {
		return
	}

	// Two lines of context on each side
	contextStart := max(1, lineNumbers[0]-2)
	contextEnd := min(maxLine, lineNumbers[len(lineNumbers)-1]+2)
	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))
	pad := strings.Repeat(" ", lineNumWidth)

	location := filename
	if first := spans[0].Span; first.IsValid() {
		location = first.String()
	}
	fmt.Fprintf(f.w, "  %s %s\n", f.styles.gutter.Render("-->"), location)
	fmt.Fprintf(f.w, "   %s %s\n", pad, f.styles.gutter.Render("|"))

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineContent := strings.TrimSuffix(lines[lineNum-1], "\r")
		gutter := f.styles.gutter.Render(fmt.Sprintf("%*d |", lineNumWidth, lineNum))
		fmt.Fprintf(f.w, " %s %s\n", gutter, lineContent)

		if lineSpans := spansByLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(lineNumWidth, lineContent, lineSpans)
		}
	}

	fmt.Fprintf(f.w, "   %s %s\n", pad, f.styles.gutter.Render("|"))
}

// printUnderlines prints underlines (^ primary, ~ secondary) for spans on a line.
func (f *Formatter) printUnderlines(lineNumWidth int, lineContent string, spans []LabeledSpan) {
	width := len([]rune(lineContent)) + 1 // one extra cell so end-of-line spans stay visible
	underline := make([]rune, width)
	for i := range underline {
		underline[i] = ' '
	}

	mark := func(span LabeledSpan, ch rune) {
		start := max(0, span.Span.Column-1)
		end := min(width, start+max(1, span.Span.End-span.Span.Start))
		for i := start; i < end; i++ {
			if underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}
	for _, span := range spans {
		if span.Style == "primary" {
			mark(span, '^')
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~')
		}
	}

	text := strings.TrimRight(string(underline), " ")
	if text == "" {
		return
	}

	var primaryLabel string
	var secondaryLabels []string
	for _, span := range spans {
		if span.Label == "" {
			continue
		}
		if span.Style == "primary" {
			primaryLabel = span.Label
		} else {
			secondaryLabels = append(secondaryLabels, span.Label)
		}
	}

	pad := strings.Repeat(" ", lineNumWidth)
	line := text
	if primaryLabel != "" {
		line += " " + primaryLabel
	}
	fmt.Fprintf(f.w, "   %s %s %s\n", pad, f.styles.gutter.Render("|"), f.styles.primary.Render(line))

	for _, label := range secondaryLabels {
		fmt.Fprintf(f.w, "   %s %s %s\n", pad, f.styles.gutter.Render("|"), f.styles.second.Render(strings.Repeat(" ", len(text))+" "+label))
	}
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "%s %s\n", f.styles.help.Render("help:"), d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}
