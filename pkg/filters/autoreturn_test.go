package filters

import (
	"testing"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

func TestAutoreturnWrapsFinalExpression(t *testing.T) {
	body := ast.New(ast.TypeBegin,
		ast.New(ast.TypeSend, ast.Nil, "puts", ast.New(ast.TypeStr, "hi")),
		ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "x"), "+", ast.New(ast.TypeInt, int64(1))),
	)
	def := ast.New(ast.TypeDef, "f", ast.New(ast.TypeArgs), body)

	out := (&Autoreturn{}).Process(def)
	newBody := out.NodeChild(2)
	last := newBody.Children[len(newBody.Children)-1].(*ast.Node)
	if last.Type != ast.TypeAutoret {
		t.Fatalf("expected final statement wrapped in autoreturn, got %s", last.Type)
	}
	first := newBody.Children[0].(*ast.Node)
	if first.Type == ast.TypeAutoret {
		t.Fatalf("non-final statement should not be wrapped")
	}
}

func TestAutoreturnSkipsExplicitReturn(t *testing.T) {
	body := ast.New(ast.TypeReturn, ast.New(ast.TypeInt, int64(42)))
	def := ast.New(ast.TypeDef, "f", ast.New(ast.TypeArgs), body)

	out := (&Autoreturn{}).Process(def)
	if out.NodeChild(2).Type != ast.TypeReturn {
		t.Fatalf("explicit return should not be re-wrapped")
	}
}

func TestAutoreturnPropagatesIntoIfBranches(t *testing.T) {
	thenBranch := ast.New(ast.TypeInt, int64(1))
	elseBranch := ast.New(ast.TypeInt, int64(2))
	ifNode := ast.New(ast.TypeIf, ast.New(ast.TypeLvar, "cond"), thenBranch, elseBranch)
	def := ast.New(ast.TypeDef, "f", ast.New(ast.TypeArgs), ifNode)

	out := (&Autoreturn{}).Process(def)
	rewrittenIf := out.NodeChild(2)
	if rewrittenIf.NodeChild(1).Type != ast.TypeAutoret {
		t.Fatalf("expected then-branch wrapped")
	}
	if rewrittenIf.NodeChild(2).Type != ast.TypeAutoret {
		t.Fatalf("expected else-branch wrapped")
	}
}

func TestAutoreturnSkipsEmptyBody(t *testing.T) {
	body := ast.New(ast.TypeBegin)
	def := ast.New(ast.TypeDef, "f", ast.New(ast.TypeArgs), body)
	out := (&Autoreturn{}).Process(def)
	if len(out.NodeChild(2).Children) != 0 {
		t.Fatalf("expected empty body to remain empty")
	}
}
