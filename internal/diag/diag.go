// Package diag renders and accumulates Epsilon diagnostics: lexical,
// syntax, and runtime errors located against source text, plus the
// fatal path for unrecoverable driver-level failures.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/epsilon-lang/epsilon/internal/invariant"
	"github.com/epsilon-lang/epsilon/internal/source"
	"github.com/epsilon-lang/epsilon/internal/token"
)

// Category is one of the three recoverable diagnostic categories
// (spec §7); Fatal is handled separately by Sink.Fatal and never
// appears in a Diagnostic value.
type Category string

const (
	Lexical Category = "Lexical error"
	Syntax  Category = "Syntax Error"
	Runtime Category = "Runtime Error"
)

// ANSI color codes, grounded on the teacher's formatter palette
// (core/planfmt/formatter): red for error chrome, reset to restore.
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
)

// Colorize wraps text in color unless useColor is false.
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// Diagnostic is one recorded recoverable error: its category, message,
// source location, and an optional fuzzy-matched suggestion (spec_full
// §3 "Suggestion data").
type Diagnostic struct {
	Category   Category
	Message    string
	Span       token.Span
	Suggestion string
}

// Sink accumulates diagnostics and renders them to an output writer.
// It tracks the process-wide "had error" flag the evaluator's
// top-level loop checks to stop further statement execution (spec
// §4.1, §4.7).
type Sink struct {
	Out      io.Writer
	Src      source.Input
	UseColor bool
	Exit     func(code int) // overridable for tests; defaults to os.Exit

	hadError bool
	recorded []Diagnostic
}

// NewSink creates a Sink that renders against src and writes to out.
func NewSink(out io.Writer, src source.Input, useColor bool) *Sink {
	invariant.NotNil(out, "out")
	return &Sink{Out: out, Src: src, UseColor: useColor, Exit: os.Exit}
}

// Raise records and renders a non-fatal diagnostic, and sets the
// had-error flag. suggestion may be empty.
func (s *Sink) Raise(span token.Span, category Category, message, suggestion string) {
	d := Diagnostic{Category: category, Message: message, Span: span, Suggestion: suggestion}
	s.recorded = append(s.recorded, d)
	s.hadError = true
	s.render(d)
}

// WasError reports whether any diagnostic has been raised so far.
func (s *Sink) WasError() bool {
	return s.hadError
}

// Snapshot returns every diagnostic recorded so far, for JSON export
// or test assertions. The returned slice is a copy.
func (s *Sink) Snapshot() []Diagnostic {
	out := make([]Diagnostic, len(s.recorded))
	copy(out, s.recorded)
	return out
}

// Fatal writes "Fatal: <msg>" to Out and terminates via s.Exit(1). It
// never returns (s.Exit is os.Exit by default); tests substitute a
// panic-free recorder for Exit to observe the call instead.
func (s *Sink) Fatal(message string) {
	fmt.Fprintf(s.Out, "%s\n", Colorize("Fatal: "+message, ColorRed, s.UseColor))
	s.Exit(1)
}

// render prints the four-line diagnostic block spec'd in §4.1:
//
//	<file> {line:col} <Kind>:
//	    <message>
//	    <line of source>
//	    <caret-underline>
func (s *Sink) render(d Diagnostic) {
	header := fmt.Sprintf("%s {%d:%d} %s:", s.Src.Name, d.Span.Line, d.Span.Col, d.Category)
	fmt.Fprintln(s.Out, Colorize(header, ColorRed, s.UseColor))

	const indent = "    "
	fmt.Fprintf(s.Out, "%s%s\n", indent, d.Message)

	line := s.Src.Line(d.Span.Line)
	fmt.Fprintf(s.Out, "%s%s\n", indent, line)

	fmt.Fprintf(s.Out, "%s%s\n", indent, Colorize(underline(d.Span, line), ColorRed, s.UseColor))

	if d.Suggestion != "" {
		fmt.Fprintf(s.Out, "%sdid you mean '%s'?\n", indent, d.Suggestion)
	}
}

// underline builds a run of spaces up to the span start, tildes across
// the span body, and a final caret at the span's last byte.
func underline(span token.Span, line string) string {
	start := span.Col - 1
	if start < 0 {
		start = 0
	}
	width := span.ByteEnd - span.ByteStart
	if width < 1 {
		width = 1
	}
	if start > len(line) {
		start = len(line)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", start))
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}
	b.WriteString("^")
	return b.String()
}
