// Copyright © 2026 The rexpr authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// tabWidth is the number of columns a tab expands to in source snippets.
const tabWidth = 4

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)

	// NoteWidth wraps note text to the given number of columns.  Zero
	// disables wrapping.
	NoteWidth int
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		r.writeNote(ew, note, p)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	sev := p.boldRed
	switch d.Severity {
	case SeverityWarning:
		sev = p.yellow
	case SeverityNote:
		sev = p.boldCyan
	}
	ew.printf("%s: %s\n", sev.Sprint(d.Severity.String()), p.bold.Sprint(d.Message))
}

func (r *Renderer) writeNote(ew *errWriter, note string, p palette) {
	if r.NoteWidth > 0 {
		note = wordwrap.String(note, r.NoteWidth)
	}
	lines := strings.Split(note, "\n")
	ew.printf("   %s note: %s\n", p.boldCyan.Sprint("="), lines[0])
	for _, line := range lines[1:] {
		ew.printf("           %s\n", line)
	}
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s %s\n", p.boldBlue.Sprint("-->"), loc)

	source := r.readSourceLine(span.File, span.Line)
	if source == "" {
		ew.printf("   %s\n", p.boldBlue.Sprint("|"))
		return
	}

	lineStr := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	gutter := p.boldBlue.Sprint(pad + " |")

	ew.printf(" %s\n", gutter)
	ew.printf(" %s  %s\n", p.boldBlue.Sprint(lineStr+" |"), expandTabs(source))

	runes := []rune(source)
	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = detectEndCol(runes, col)
	}
	if endCol < col {
		endCol = col
	}

	start := col - 1
	if start > len(runes) {
		start = len(runes)
	}
	end := endCol
	if end > len(runes) {
		end = len(runes)
	}
	underPad := strings.Repeat(" ", displayWidth(string(runes[:start])))
	underLen := displayWidth(string(runes[start:end]))
	if underLen == 0 {
		underLen = 1
	}

	ew.printf(" %s  %s%s", gutter, underPad, p.boldRed.Sprint(strings.Repeat("^", underLen)))
	if span.Label != "" {
		ew.printf(" %s", p.boldRed.Sprint(span.Label))
	}
	ew.print("\n")
	ew.printf(" %s\n", gutter)
}

func (r *Renderer) readSourceLine(file string, line int) string {
	if line <= 0 || file == "" || strings.HasPrefix(file, "<") {
		return ""
	}
	reader := r.SourceReader
	if reader == nil {
		reader = func(name string) ([]byte, error) {
			return os.ReadFile(name) //#nosec G304
		}
	}
	data, err := reader(file)
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text()
		}
	}
	return ""
}

// detectEndCol scans from col to find the end of the current token.  The
// result is a 1-based rune column.
func detectEndCol(source []rune, col int) int {
	if col <= 0 || col > len(source) {
		return col
	}
	end := col - 1
	for end < len(source) && !strings.ContainsRune(" \t()[]{},;", source[end]) {
		end++
	}
	if end == col-1 {
		return col
	}
	return end
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the number of terminal columns s occupies once tabs
// are expanded.  Wide runes count double.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// fileFromWriter attempts to extract an *os.File from a writer for terminal
// detection. Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
