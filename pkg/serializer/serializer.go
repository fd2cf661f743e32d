// Package serializer implements the line-buffered output engine the
// converter emits JavaScript text through: put/puts/sput, capture,
// insert, wrap/compact, and (via an attached sourcemap.Builder) a
// line-accurate source-map side channel.
package serializer

import (
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/sourcemap"
)

// Separator selects how statements within a line are joined.
type Separator int

const (
	// Inline joins statements with "; " and never emits a physical
	// newline.
	Inline Separator = iota
	// Vertical emits one statement per physical line; indentation is
	// not tracked structurally here -- callers emit explicit leading
	// whitespace tokens.
	Vertical
)

const defaultWidth = 80

// Mark is an opaque cursor handle returned by Buffer.Mark, consumed by
// Insert to splice text at a previously recorded position without
// disturbing subsequent tokens.
type Mark struct {
	line, col int
}

// Buffer is a single-owner, non-concurrent-safe sequence of lines, each
// a sequence of string tokens.
type Buffer struct {
	lines [][]string
	sep   Separator
	width int
	vert  bool // vertical whitespace (blank lines between statements) enabled

	sourceMap *sourcemap.Builder
}

// New returns an empty buffer using the given separator mode and target
// line width (0 selects the default of 80, the `width` option default).
func New(sep Separator, width int) *Buffer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Buffer{sep: sep, width: width, lines: [][]string{{}}}
}

// AttachSourceMap wires a sourcemap.Builder so subsequent PutLocated
// calls contribute entries to it.
func (b *Buffer) AttachSourceMap(m *sourcemap.Builder) { b.sourceMap = m }

func (b *Buffer) curLine() []string { return b.lines[len(b.lines)-1] }

func (b *Buffer) setCurLine(toks []string) { b.lines[len(b.lines)-1] = toks }

// Put appends a token to the current line without starting a new one.
func (b *Buffer) Put(tok string) {
	b.setCurLine(append(b.curLine(), tok))
}

// PutLocated behaves like Put but, when a source map is attached,
// additionally records a mapping from the current emit position to
// loc's original source offset.
func (b *Buffer) PutLocated(tok string, loc *ast.Location) {
	if b.sourceMap != nil && loc != nil && loc.Buffer != nil {
		b.sourceMap.Add(sourcemap.Entry{
			EmitLine: len(b.lines) - 1,
			EmitCol:  b.curLineWidth(),
			SrcFile:  loc.Buffer.Name,
			SrcLine:  loc.Line,
			SrcCol:   loc.StartOffset,
		})
	}
	b.Put(tok)
}

func (b *Buffer) curLineWidth() int {
	w := 0
	for _, t := range b.curLine() {
		w += len(t)
	}
	return w
}

// Puts appends a token then starts a new line (Vertical mode) or a
// "; "-joined inline continuation (Inline mode).
func (b *Buffer) Puts(tok string) {
	b.Put(tok)
	b.newline()
}

// Sput starts a new line, then appends a token (the mirror of Puts:
// newline first, then content).
func (b *Buffer) Sput(tok string) {
	b.newline()
	b.Put(tok)
}

func (b *Buffer) newline() {
	switch b.sep {
	case Inline:
		b.setCurLine(append(b.curLine(), "; "))
	case Vertical:
		b.lines = append(b.lines, []string{})
	}
}

// EnableVerticalWhitespace turns on blank-line-between-statements
// behavior for Vertical mode; a no-op in Inline mode.
func (b *Buffer) EnableVerticalWhitespace() {
	b.vert = true
	if b.sep == Vertical {
		b.lines = append(b.lines, []string{})
	}
}

// Mark records the current cursor position for a later Insert.
func (b *Buffer) Mark() Mark {
	return Mark{line: len(b.lines) - 1, col: len(b.curLine())}
}

// Insert splices s into the buffer at a previously recorded Mark,
// without disturbing tokens already emitted after that mark.
func (b *Buffer) Insert(m Mark, s string) {
	if m.line < 0 || m.line >= len(b.lines) {
		return
	}
	line := b.lines[m.line]
	if m.col > len(line) {
		m.col = len(line)
	}
	newLine := make([]string, 0, len(line)+1)
	newLine = append(newLine, line[:m.col]...)
	newLine = append(newLine, s)
	newLine = append(newLine, line[m.col:]...)
	b.lines[m.line] = newLine
}

// Capture runs fn, collecting everything it writes into a standalone
// string, then removes that output from the buffer as if fn had never
// run. Nestable: the prior cursor is restored on return regardless of
// how deeply fn itself calls Capture.
func (b *Buffer) Capture(fn func()) string {
	savedLines := make([][]string, len(b.lines))
	copy(savedLines, b.lines)
	startLine := len(b.lines) - 1
	startCol := len(b.curLine())

	fn()

	captured := b.renderFrom(startLine, startCol)

	// restore prior state
	b.lines = savedLines
	return captured
}

func (b *Buffer) renderFrom(startLine, startCol int) string {
	var sb strings.Builder
	for i := startLine; i < len(b.lines); i++ {
		line := b.lines[i]
		from := 0
		if i == startLine {
			from = startCol
		}
		if from <= len(line) {
			for _, t := range line[from:] {
				sb.WriteString(t)
			}
		}
		if i != len(b.lines)-1 && b.sep == Vertical {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Wrap emits head, then "{", runs body, then closes with "}". If the
// captured body fits within the configured width (counting head's
// length) and spans at most 3 physical lines, the braces collapse onto
// one line; otherwise the closing brace is placed on its own line, per
// spec §4.2.
func (b *Buffer) Wrap(head string, body func()) {
	inner := b.Capture(func() {
		oldSep := b.sep
		b.sep = Vertical
		b.lines = append(b.lines, []string{})
		body()
		b.sep = oldSep
	})

	innerLines := strings.Split(strings.TrimRight(inner, "\n"), "\n")
	collapsible := len(innerLines) <= 3 && len(head)+len(strings.Join(innerLines, " "))+2 <= b.width

	if collapsible {
		joined := strings.TrimSpace(strings.Join(innerLines, " "))
		b.Put(head)
		b.Put("{")
		if joined != "" {
			b.Put(joined)
		}
		b.Put("}")
		return
	}

	b.Puts(head + "{")
	for _, ln := range innerLines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		b.Puts(ln)
	}
	b.Put("}")
}

// Compact measures the multi-line region body produces; if it is under
// (width-10) characters and contains no line-leading "//" comment, it
// is rejoined into one line and emitted; otherwise it is emitted
// verbatim, one statement per line.
func (b *Buffer) Compact(body func()) {
	inner := b.Capture(func() {
		oldSep := b.sep
		b.sep = Vertical
		b.lines = append(b.lines, []string{})
		body()
		b.sep = oldSep
	})

	lines := strings.Split(strings.TrimRight(inner, "\n"), "\n")
	hasLeadingComment := false
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "//") {
			hasLeadingComment = true
			break
		}
	}

	joined := strings.Join(lines, " ")
	if !hasLeadingComment && len(joined) < b.width-10 {
		b.Put(strings.TrimSpace(joined))
		return
	}
	for _, ln := range lines {
		b.Puts(ln)
	}
}

// Serialize renders the whole buffer to a single string.
func (b *Buffer) Serialize() string {
	var sb strings.Builder
	for i, line := range b.lines {
		for _, t := range line {
			sb.WriteString(t)
		}
		if i != len(b.lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
