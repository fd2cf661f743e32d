package filters

import (
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// ESM lowers `require`/`require_relative` calls to hoisted import
// declarations and top-level class/module declarations to named
// exports (spec §4.5 "ESM"). It is stateful across one Process pass: it
// tracks namespace depth to recognize "top-level" and accumulates the
// import nodes it elides from the body into Pending, returned via
// Prepend for the pipeline to splice ahead of the root.
type ESM struct {
	Disabled bool
	depth    int
	Pending  []*ast.Node
}

func (e *ESM) Name() string { return "esm" }

func (e *ESM) Process(n *ast.Node) *ast.Node {
	return compose1(e, e.Name(), e.handlers()).Process(n)
}

func (e *ESM) Prepend() []*ast.Node {
	if e.Disabled {
		return nil
	}
	return e.Pending
}

// Reorder places esm ahead of strict. CollectPrepends walks filters in
// list order, so esm's queued imports come ahead of strict's
// "use strict" in the prepend list the pipeline splices before the
// root.
func (e *ESM) Reorder(filters []filter.Filter) []filter.Filter {
	out := make([]filter.Filter, 0, len(filters))
	var rest []filter.Filter
	for _, f := range filters {
		if named, ok := f.(filter.Named); ok && named.Name() == "strict" {
			rest = append(rest, f)
			continue
		}
		out = append(out, f)
	}
	return append(out, rest...)
}

func (e *ESM) handlers() filter.Handlers {
	requireHandler := func(n *ast.Node, next filter.Next) *ast.Node {
		if e.Disabled {
			return next(n)
		}
		name := n.StrChild(1)
		if name != "require" && name != "require_relative" {
			return next(n)
		}
		rewritten := next(n)
		path := ""
		if len(rewritten.Children) > 2 {
			if arg, ok := rewritten.Children[2].(*ast.Node); ok {
				path = arg.StrChild(0)
			}
		}
		e.Pending = append(e.Pending, ast.NewAt(ast.TypeImport, rewritten.Loc, path))
		return nil
	}
	classLike := func(n *ast.Node, next filter.Next) *ast.Node {
		e.depth++
		rewritten := next(n)
		e.depth--
		if e.depth == 0 && !e.Disabled {
			return ast.NewAt(ast.TypeExport, rewritten.Loc, rewritten)
		}
		return rewritten
	}
	return filter.Handlers{
		ast.TypeSend:   requireHandler,
		ast.TypeClass:  classLike,
		ast.TypeModule: classLike,
	}
}
