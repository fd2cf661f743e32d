// Package sourcemap implements the best-effort source-map side channel
// described in spec §3.4/§4.2/§6.1: a flat list of (emit position, src
// position) entries, populated only for nodes that carry a parser
// location. Grounded on protocompile's flat SourceCodeInfo location
// list and on a before/after AST position mapper pattern for tracking
// a "current location" cursor across nested transform/emit calls.
package sourcemap

// Entry maps one emitted output position back to an original source
// offset, per the Result contract of spec §6.1.
type Entry struct {
	EmitLine, EmitCol int
	SrcFile           string
	SrcLine, SrcCol   int
}

// Builder accumulates Entry values. It also exposes a Push/Pop cursor:
// Current reports the innermost pushed location. The converter neither
// pushes cursors nor calls the serializer's PutLocated, so the Builder
// a compile produces holds no entries; entries are recorded only
// through Add.
type Builder struct {
	entries []Entry
	stack   []cursor
}

type cursor struct {
	file     string
	line, col int
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Add records an entry directly (used by the serializer's PutLocated).
func (b *Builder) Add(e Entry) { b.entries = append(b.entries, e) }

// Push records a new current-location cursor, to be popped by Pop once
// the bracketed Parse call returns.
func (b *Builder) Push(file string, line, col int) {
	b.stack = append(b.stack, cursor{file, line, col})
}

// Pop removes the most recently pushed cursor.
func (b *Builder) Pop() {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Current reports the innermost pushed cursor, and whether one exists.
func (b *Builder) Current() (file string, line, col int, ok bool) {
	if len(b.stack) == 0 {
		return "", 0, 0, false
	}
	c := b.stack[len(b.stack)-1]
	return c.file, c.line, c.col, true
}

// Entries returns the accumulated entries in emission order.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}
