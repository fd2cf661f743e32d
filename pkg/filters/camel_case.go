package filters

import (
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// CamelCase translates snake_case identifiers (locals, ivars, method
// names, parameter names) to camelCase, preserving a reserved-like
// leading-underscore run and a trailing `?`/`!` marker verbatim (spec
// §4.5 "Identifier case").
type CamelCase struct{}

func (c *CamelCase) Name() string { return "camelCase" }

func (c *CamelCase) Process(n *ast.Node) *ast.Node {
	return compose1(c, c.Name(), c.handlers()).Process(n)
}

func (c *CamelCase) handlers() filter.Handlers {
	renameAt := func(idx int) filter.Handler {
		return func(n *ast.Node, next filter.Next) *ast.Node {
			rewritten := next(n)
			return replaceChild(rewritten, idx, snakeToCamel(rewritten.StrChild(idx)))
		}
	}
	sendLike := func(n *ast.Node, next filter.Next) *ast.Node {
		rewritten := next(n)
		name := rewritten.StrChild(1)
		// Operator-like selectors (`[]`, `+`, `==`, ...) and names with no
		// underscore are left untouched by the rename, but still pass
		// through since no rewrite is observable in that case.
		return replaceChild(rewritten, 1, snakeToCamel(name))
	}
	return filter.Handlers{
		ast.TypeLvar:    renameAt(0),
		ast.TypeIvar:    renameAt(0),
		ast.TypeCvar:    renameAt(0),
		ast.TypeGvar:    renameAt(0),
		ast.TypeLvasgn:  renameAt(0),
		ast.TypeIvasgn:  renameAt(0),
		ast.TypeCvasgn:  renameAt(0),
		ast.TypeArg:     renameAt(0),
		ast.TypeKwarg:   renameAt(0),
		ast.TypeOptarg:  renameAt(0),
		ast.TypeKwoptarg: renameAt(0),
		ast.TypeRestarg: renameAt(0),
		ast.TypeKwrestarg: renameAt(0),
		ast.TypeBlockarg: renameAt(0),
		ast.TypeDef:     renameAt(0),
		ast.TypeDefs:    renameAt(1),
		ast.TypeSend:    sendLike,
		ast.TypeCsend:   sendLike,
	}
}
