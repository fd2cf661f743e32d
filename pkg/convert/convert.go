// Package convert implements the AST-to-JavaScript emitter (spec.md
// §4.4): a handler-per-tag walker driven by a scope stack, producing a
// JS string from the post-filter AST pkg/pipeline hands it.
package convert

import (
	"fmt"
	"strings"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/diagnostics"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/namespace"
	"github.com/rubyjs/ruby2go/pkg/serializer"
	"github.com/rubyjs/ruby2go/pkg/sourcemap"
)

// handlerFunc converts one node to its JS expression text. Handlers
// never emit trailing punctuation (`;`, a trailing newline); the
// statement-joining caller owns that.
type handlerFunc func(c *Converter, n *ast.Node) (string, error)

// Converter is the single-owner, non-reentrant AST walker described in
// spec.md §5 "Concurrency & resource model": one Converter per compile,
// never shared across parallel compiles.
type Converter struct {
	Options   config.Options
	NS        *namespace.Namespace
	Comments  *ast.CommentMap
	Buf       *serializer.Buffer
	Map       *sourcemap.Builder
	scopes    []*Scope
	handlers  map[ast.NodeType]handlerFunc
	classVars map[string]bool // tracks `@@name` cvar names seen, for static-property emission
}

// New constructs a Converter. ns and comments may be nil (a Converter
// used to convert a single already-isolated expression tree, as in
// filters.Template's Compile callback, does not need namespace tracking
// or comment re-association).
func New(opts config.Options, ns *namespace.Namespace, comments *ast.CommentMap) *Converter {
	sep := serializer.Inline
	if strings.Contains(opts.Source, "\n") {
		sep = serializer.Vertical
	}
	c := &Converter{
		Options:   opts,
		NS:        ns,
		Comments:  comments,
		Buf:       serializer.New(sep, opts.Width),
		Map:       sourcemap.New(),
		classVars: map[string]bool{},
	}
	c.handlers = c.buildHandlers()
	return c
}

// Convert is the public entry point called by pkg/pipeline: emits root
// as a top-level program and returns the JS source text.
func (c *Converter) Convert(root *ast.Node) (string, error) {
	c.pushScope(true, StateOuter)
	body := statementsOf(root)
	var rendered []string
	for _, stmt := range body {
		s, err := c.Stmt(stmt)
		if err != nil {
			return "", err
		}
		if s != "" {
			rendered = append(rendered, s)
		}
	}
	pending := c.popScope()
	if len(pending) > 0 {
		decl := c.declKeyword() + " " + strings.Join(pending, ", ") + ";"
		rendered = append([]string{decl}, rendered...)
	}
	for _, r := range rendered {
		c.Buf.Puts(r)
	}
	return c.Buf.Serialize(), nil
}

// statementsOf flattens a (possibly begin-wrapped) root into its
// top-level statement list.
func statementsOf(root *ast.Node) []*ast.Node {
	if root == nil || root.IsNil() {
		return nil
	}
	if root.Type == ast.TypeBegin || root.Type == ast.TypeKwbegin {
		var out []*ast.Node
		for _, c := range root.Children {
			if n, ok := c.(*ast.Node); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return []*ast.Node{root}
}

// Stmt converts n in statement mode: attached leading comments are
// rendered first (spec §4.4 "parse(ast, :statement)"), then n's own
// text, with a trailing `;` added when n is not itself a block-braced
// construct (def/class/if/while/for/...).
func (c *Converter) Stmt(n *ast.Node) (string, error) {
	var b strings.Builder
	if c.Comments != nil {
		for _, cm := range c.Comments.For(n) {
			b.WriteString(renderComment(cm))
			b.WriteString("\n")
		}
	}
	expr, err := c.Expr(n)
	if err != nil {
		return "", err
	}
	b.WriteString(expr)
	if !endsInBrace(n.Type) {
		b.WriteString(";")
	}
	if c.Comments != nil {
		for _, cm := range c.Comments.TrailingFor(n) {
			b.WriteString(" ")
			b.WriteString(renderComment(cm))
		}
	}
	return b.String(), nil
}

func renderComment(cm ast.Comment) string {
	if cm.Block {
		text := strings.ReplaceAll(cm.Text, "*/", "* /")
		return "/* " + text + " */"
	}
	return "// " + cm.Text
}

var braceTags = map[ast.NodeType]bool{
	ast.TypeDef: true, ast.TypeDefs: true, ast.TypeClass: true,
	ast.TypeIf: true, ast.TypeWhile: true,
	ast.TypeUntil: true, ast.TypeFor: true, ast.TypeCase: true,
	ast.TypeCaseIn: true, ast.TypeRescue: true, ast.TypeBegin: true,
	ast.TypeExport: true,
}

func endsInBrace(t ast.NodeType) bool {
	return braceTags[t]
}

// Expr converts n in expression mode: just the JS text, no statement
// punctuation. Dispatches through the per-tag handler table, raising
// UnknownNode for an unregistered tag (spec §7).
func (c *Converter) Expr(n *ast.Node) (string, error) {
	if n == nil || n.IsNil() {
		return "null", nil
	}
	h, ok := c.handlers[n.Type]
	if !ok {
		return "", &diagnostics.UnknownNode{Type: n.Type, Loc: n.Loc}
	}
	return h(c, n)
}

// ParseAll emits a sequence of nodes joined by sep, in expression mode,
// skipping nodes that render empty (spec §4.4 "parse_all").
func (c *Converter) ParseAll(nodes []*ast.Node, sep string) (string, error) {
	var parts []string
	for _, n := range nodes {
		s, err := c.Expr(n)
		if err != nil {
			return "", err
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep), nil
}

// Group parenthesizes n's rendered expression unless it is already
// delimited (spec §4.4 "group(ast)").
func (c *Converter) Group(n *ast.Node) (string, error) {
	s, err := c.Expr(n)
	if err != nil {
		return "", err
	}
	return group(s), nil
}

// childNodes returns every *ast.Node child of n, skipping non-node
// children (strings, ints, ast.Nil is itself a node and is included).
func childNodes(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range n.Children {
		if cn, ok := c.(*ast.Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

func errf(n *ast.Node, format string, args ...any) error {
	return &diagnostics.FilterFailure{Filter: "convert", Node: n, Cause: fmt.Errorf(format, args...)}
}
