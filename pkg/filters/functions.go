package filters

import (
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// Functions rewrites selected Ruby method names to their JavaScript
// idiom and forces bare zero-arg calls from a curated list of
// always-a-method-not-a-property names to parenthesize, respecting the
// pipeline's include/exclude/include_only option by only ever touching
// names in renameTable/forcedCallNames (spec §4.5 "Method-form").
type Functions struct {
	// Allow, when non-nil, restricts rewriting to these method names
	// only (the `include_only` option); Deny additionally suppresses
	// any name present in it (the `exclude` option).
	Allow map[string]bool
	Deny  map[string]bool
}

func (f *Functions) Name() string { return "functions" }

func (f *Functions) Process(n *ast.Node) *ast.Node {
	return compose1(f, f.Name(), f.handlers()).Process(n)
}

// renameTable maps a Ruby method name to its JavaScript equivalent for
// the common Enumerable/Array vocabulary where a 1:1 rename (no
// reshaping of the surrounding call) is correct.
var renameTable = map[string]string{
	"each_with_index": "forEach",
	"select":          "filter",
	"detect":          "find",
	"find_index":      "findIndex",
	"collect":         "map",
	"inject":          "reduce",
	"include?":        "includes",
	"any?":            "some",
	"all?":            "every",
	"none?":           "every",
	"to_a":            "slice",
	"to_s":            "toString",
	"key?":            "has",
	"has_key?":        "has",
}

// forcedCallNames lists Ruby methods that are always invocations, never
// bare property reads, so a parenthesis-less call site like `a.pop`
// must still emit as `a.pop()`.
var forcedCallNames = map[string]bool{
	"pop": true, "shift": true, "uniq": true, "sort": true, "sort!": true,
	"reverse": true, "reverse!": true, "flatten": true, "compact": true,
	"freeze": true, "dup": true, "clone": true, "to_i": true, "to_f": true,
	"strip": true, "chomp": true, "upcase": true, "downcase": true,
	"keys": true, "values": true, "first": true, "last": true, "clear": true,
}

func (f *Functions) allowed(name string) bool {
	if f.Deny != nil && f.Deny[name] {
		return false
	}
	if f.Allow != nil && !f.Allow[name] {
		return false
	}
	return true
}

func (f *Functions) handlers() filter.Handlers {
	rewrite := func(n *ast.Node, next filter.Next) *ast.Node {
		rewritten := next(n)
		name := rewritten.StrChild(1)
		if !f.allowed(name) {
			return rewritten
		}
		if renamed, ok := renameTable[name]; ok {
			rewritten = replaceChild(rewritten, 1, renamed)
			name = renamed
		}
		if forcedCallNames[name] {
			rewritten = forceCall(rewritten)
		}
		return rewritten
	}
	return filter.Handlers{
		ast.TypeSend:  rewrite,
		ast.TypeCsend: rewrite,
	}
}

// forceCall ensures IsMethod() reports true for a send with no explicit
// arguments by recording that its selector was followed by parentheses,
// synthesizing a Location carrying only that fact when the node has
// none to start with.
func forceCall(n *ast.Node) *ast.Node {
	if n.Loc != nil && n.Loc.Selector != nil && n.Loc.Selector.ParenAfter {
		return n
	}
	loc := &ast.Location{}
	if n.Loc != nil {
		cp := *n.Loc
		loc = &cp
	}
	sel := &ast.SubRange{}
	if loc.Selector != nil {
		cp := *loc.Selector
		sel = &cp
	}
	sel.ParenAfter = true
	loc.Selector = sel
	return n.WithLoc(loc)
}
