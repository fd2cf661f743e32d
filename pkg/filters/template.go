package filters

import (
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// TemplateTail is the synthetic tag for the markup portion of a mixed
// Ruby/template source (spec §4.5 "Template lowering"): everything
// after the terminator sentinel, carried verbatim as a single string
// child until Template's handler below splits and lowers it. Nothing
// in this module splits a source at the sentinel or builds this node;
// it arrives already formed in the AST the parser hands over.
const TemplateTail ast.NodeType = "template_tail"

// TemplateErrorPrefix marks an xnode produced by a failing interpolation
// rather than a successfully lowered template tail, so a caller (e.g.
// pkg/pipeline, counting warnings for pkg/report) can recognize one
// without re-parsing the emitted comment text.
const TemplateErrorPrefix = "/* template error: "

// Template lowers the markup part of a source already split at a
// terminator sentinel: the part before it is plain Ruby (parsed and
// handled by the rest of the pipeline) and the part after it, carried
// in a TemplateTail node, is Haml/ERB-style markup: runs of
// literal text interleaved with `<%= ... %>`-delimited Ruby
// expressions. Each interpolated expression is compiled through the
// same pipeline recursively (via the injected Compile callback,
// avoiding an import cycle with pkg/pipeline) and spliced back into a
// JS template literal.
type Template struct {
	Open    string // interpolation open delimiter, default "<%="
	Close   string // interpolation close delimiter, default "%>"
	Compile func(src string) (string, error)
}

func (t *Template) Name() string { return "template" }

func (t *Template) Process(n *ast.Node) *ast.Node {
	return compose1(t, t.Name(), t.handlers()).Process(n)
}

func (t *Template) delims() (string, string) {
	open, close := t.Open, t.Close
	if open == "" {
		open = "<%="
	}
	if close == "" {
		close = "%>"
	}
	return open, close
}

func (t *Template) handlers() filter.Handlers {
	return filter.Handlers{
		TemplateTail: func(n *ast.Node, next filter.Next) *ast.Node {
			rewritten := next(n)
			lowered, err := t.lower(rewritten.StrChild(0))
			if err != nil {
				// A failing interpolation is surfaced as raw xnode text
				// carrying the error message, rather than aborting the
				// whole filter chain for one bad template expression.
				return ast.NewAt(ast.TypeXnode, rewritten.Loc, TemplateErrorPrefix+err.Error()+" */")
			}
			return ast.NewAt(ast.TypeXnode, rewritten.Loc, lowered)
		},
	}
}

// lower turns the raw template tail into a JS template-literal string,
// compiling each interpolated Ruby expression via Compile.
func (t *Template) lower(src string) (string, error) {
	open, close := t.delims()
	var b strings.Builder
	b.WriteByte('`')
	rest := src
	for {
		i := strings.Index(rest, open)
		if i < 0 {
			b.WriteString(escapeTemplateLiteral(rest))
			break
		}
		b.WriteString(escapeTemplateLiteral(rest[:i]))
		rest = rest[i+len(open):]
		j := strings.Index(rest, close)
		if j < 0 {
			b.WriteString(escapeTemplateLiteral(rest))
			break
		}
		expr := strings.TrimSpace(rest[:j])
		rest = rest[j+len(close):]
		js := expr
		if t.Compile != nil {
			compiled, err := t.Compile(expr)
			if err != nil {
				return "", err
			}
			js = compiled
		}
		b.WriteString("${" + js + "}")
	}
	b.WriteByte('`')
	return b.String(), nil
}

func escapeTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
