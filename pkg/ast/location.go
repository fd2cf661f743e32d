package ast

import "time"

// SourceBuffer is a named character source referenced by Location, used
// for source-map file names and for timestamp reporting in the compile
// Result.
type SourceBuffer struct {
	// Name is the file name as it should appear in diagnostics and in
	// source-map "src_file" entries.
	Name string
	// Source is the full text of the buffer.
	Source string
	// ModTime is the last-modified time of the underlying file, if known
	// (zero value for synthetic/in-memory buffers).
	ModTime time.Time
}

// SubRange is a lexical sub-range within a node's source span, used to
// answer questions a pure (start,end) pair cannot: whether a send was
// parenthesized, where a method name ends, where an endless-method body
// begins.
type SubRange struct {
	Start, End int
	// ParenAfter is true when the byte immediately following this range
	// (typically a selector) is '(' -- used by Node.IsMethod to
	// distinguish a parenthesized call from a bare attribute reference.
	ParenAfter bool
}

// Location is the optional position carried by a Node. Two nodes may be
// structurally equal while carrying different locations (location is
// excluded from Node.Equal), and a synthesized node may carry a Location
// that is present but deliberately empty -- callers must distinguish
// "no location at all" (Loc == nil) from "location present but empty"
// (Loc != nil, zero Offsets) since the latter occurs for nodes created
// by a filter rather than the parser.
type Location struct {
	StartOffset, EndOffset int
	Line                   int
	Buffer                 *SourceBuffer

	// Selector is the lexical range of the message selector for a send
	// node (e.g. the "foo" in "a.foo()" or "a.foo"); nil when not
	// applicable.
	Selector *SubRange
	// NameRange is the lexical range of a method/class/module name.
	NameRange *SubRange
	// ExprRange is the lexical range of an endless method's body
	// expression, when the def was written in endless form
	// ("def f = expr"); nil otherwise.
	ExprRange *SubRange
	// Endless marks a def/defs parsed in endless-method form.
	Endless bool
}

// Snippet returns the original source text spanned by loc, or "" if the
// buffer is unknown or the offsets are out of range.
func (loc *Location) Snippet() string {
	if loc == nil || loc.Buffer == nil {
		return ""
	}
	src := loc.Buffer.Source
	if loc.StartOffset < 0 || loc.EndOffset > len(src) || loc.StartOffset > loc.EndOffset {
		return ""
	}
	return src[loc.StartOffset:loc.EndOffset]
}

// SameBuffer reports whether two locations reference the same named
// source buffer, used by comment re-association to reject cross-buffer
// pairings.
func SameBuffer(a, b *Location) bool {
	if a == nil || b == nil || a.Buffer == nil || b.Buffer == nil {
		return false
	}
	return a.Buffer.Name == b.Buffer.Name
}
