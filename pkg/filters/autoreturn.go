package filters

import (
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// Autoreturn inserts an implicit return on the final expression of a
// method or block body (spec §4.5), propagating into the tail position
// of if/case/begin/rescue so that whichever branch actually executes
// last still returns its value.
type Autoreturn struct{}

func (a *Autoreturn) Name() string { return "autoreturn" }

func (a *Autoreturn) Process(n *ast.Node) *ast.Node {
	return compose1(a, a.Name(), a.handlers()).Process(n)
}

func (a *Autoreturn) handlers() filter.Handlers {
	wrapBody := func(bodyIdx int) filter.Handler {
		return func(n *ast.Node, next filter.Next) *ast.Node {
			rewritten := next(n)
			body := rewritten.NodeChild(bodyIdx)
			return replaceChild(rewritten, bodyIdx, autoReturnTail(body))
		}
	}
	return filter.Handlers{
		ast.TypeDef:   wrapBody(2), // def: (name args body)
		ast.TypeDefs:  wrapBody(3), // defs: (recv name args body)
		ast.TypeBlock: wrapBody(2), // block: (send args body)
	}
}

// terminalTags never receive an autoreturn wrap: their value, if any,
// is not meaningful as a method/block result, or they already transfer
// control explicitly.
var terminalTags = map[ast.NodeType]bool{
	ast.TypeReturn:    true,
	ast.TypeBreak:     true,
	ast.TypeNext:      true,
	ast.TypeYield:     true,
	ast.TypeWhile:     true,
	ast.TypeUntil:     true,
	ast.TypeWhilePost: true,
	ast.TypeUntilPost: true,
	ast.TypeFor:       true,
	ast.TypeDef:       true,
	ast.TypeDefs:      true,
	ast.TypeClass:     true,
	ast.TypeModule:    true,
	ast.TypeAutoret:   true,
}

// autoReturnTail rewrites the statement that will actually execute last
// within body, wrapping it in an autoreturn node unless it is already
// terminal, recursing into whichever control-flow branches can be "the
// last thing that runs".
func autoReturnTail(body *ast.Node) *ast.Node {
	if body == nil || body.IsNil() {
		return body
	}
	switch body.Type {
	case ast.TypeBegin, ast.TypeKwbegin:
		if len(body.Children) == 0 {
			return body
		}
		last := len(body.Children) - 1
		stmt, ok := body.Children[last].(*ast.Node)
		if !ok {
			return body
		}
		return replaceChild(body, last, autoReturnTail(stmt))

	case ast.TypeIf:
		// if: (cond then else)
		n := body
		if then := n.NodeChild(1); then != nil {
			n = replaceChild(n, 1, autoReturnTail(then))
		}
		if els := n.NodeChild(2); els != nil {
			n = replaceChild(n, 2, autoReturnTail(els))
		}
		return n

	case ast.TypeCase, ast.TypeCaseIn:
		n := body
		for i := 1; i < len(n.Children); i++ {
			child, ok := n.Children[i].(*ast.Node)
			if !ok {
				continue
			}
			n = replaceChild(n, i, autoReturnTail(child))
		}
		return n

	case ast.TypeWhen, ast.TypeIn:
		if len(body.Children) == 0 {
			return body
		}
		last := len(body.Children) - 1
		stmt, ok := body.Children[last].(*ast.Node)
		if !ok {
			return body
		}
		return replaceChild(body, last, autoReturnTail(stmt))

	case ast.TypeRescue:
		// rescue: (body resbody... elsebody)
		n := body
		if main := n.NodeChild(0); main != nil {
			n = replaceChild(n, 0, autoReturnTail(main))
		}
		for i := 1; i < len(n.Children); i++ {
			child, ok := n.Children[i].(*ast.Node)
			if !ok {
				continue
			}
			n = replaceChild(n, i, autoReturnTail(child))
		}
		return n

	case ast.TypeResbody:
		// resbody: (classes var body)
		if len(body.Children) == 0 {
			return body
		}
		last := len(body.Children) - 1
		stmt, ok := body.Children[last].(*ast.Node)
		if !ok {
			return body
		}
		return replaceChild(body, last, autoReturnTail(stmt))

	case ast.TypeEnsure:
		// ensure's own body never determines the method's return value;
		// only its protected body does.
		if main := body.NodeChild(0); main != nil {
			return replaceChild(body, 0, autoReturnTail(main))
		}
		return body

	default:
		if terminalTags[body.Type] {
			return body
		}
		return ast.NewAt(ast.TypeAutoret, body.Loc, body)
	}
}
