package filters

import (
	"fmt"
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// React lowers a recognized subset of hash-literal-as-props calls --
// `ComponentName(prop: value, ...)` with no explicit receiver and a
// capitalized name -- to an inline JSX element, emitted as a raw xnode
// since the converter has no JSX grammar of its own (spec §2's
// component table names this the "react-style" filter; spec §4.5 gates
// it behind an option rather than leaving it always-on).
type React struct {
	Enabled bool
}

func (r *React) Name() string { return "react" }

func (r *React) Process(n *ast.Node) *ast.Node {
	return compose1(r, r.Name(), r.handlers()).Process(n)
}

func (r *React) handlers() filter.Handlers {
	return filter.Handlers{
		ast.TypeSend: func(n *ast.Node, next filter.Next) *ast.Node {
			rewritten := next(n)
			if !r.Enabled {
				return rewritten
			}
			if jsx, ok := r.asComponentCall(rewritten); ok {
				return ast.NewAt(ast.TypeXnode, rewritten.Loc, jsx)
			}
			return rewritten
		},
	}
}

func (r *React) asComponentCall(n *ast.Node) (string, bool) {
	recv := n.NodeChild(0)
	if recv != nil && !recv.IsNil() {
		return "", false
	}
	name := n.StrChild(1)
	if name == "" || !('A' <= name[0] && name[0] <= 'Z') {
		return "", false
	}
	if len(n.Children) < 3 {
		return fmt.Sprintf("<%s />", name), true
	}
	hash, ok := n.Children[2].(*ast.Node)
	if !ok || hash.Type != ast.TypeHash {
		return "", false
	}
	var attrs []string
	for _, c := range hash.Children {
		pair, ok := c.(*ast.Node)
		if !ok || pair.Type != ast.TypePair || len(pair.Children) != 2 {
			return "", false
		}
		key := ""
		if sym, ok := pair.Children[0].(*ast.Node); ok && sym.Type == ast.TypeSym {
			key = sym.StrChild(0)
		}
		if key == "" {
			return "", false
		}
		attrs = append(attrs, fmt.Sprintf("%s={%v}", snakeToCamel(key), pair.Children[1]))
	}
	return fmt.Sprintf("<%s %s />", name, strings.Join(attrs, " ")), true
}
