package filters

import (
	"testing"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

func TestReactLowersComponentCallWithProps(t *testing.T) {
	hash := ast.New(ast.TypeHash, ast.New(ast.TypePair, ast.New(ast.TypeSym, "name"), ast.New(ast.TypeStr, "world")))
	call := ast.New(ast.TypeSend, ast.Nil, "Greeting", hash)
	out := (&React{Enabled: true}).Process(call)
	if out.Type != ast.TypeXnode {
		t.Fatalf("expected component call lowered to xnode, got %s", out.Type)
	}
}

func TestReactDisabledLeavesCallAlone(t *testing.T) {
	call := ast.New(ast.TypeSend, ast.Nil, "Greeting")
	out := (&React{}).Process(call)
	if out.Type != ast.TypeSend {
		t.Fatalf("disabled react filter should not rewrite the call")
	}
}

func TestReactIgnoresLowercaseMethodNames(t *testing.T) {
	call := ast.New(ast.TypeSend, ast.Nil, "greeting")
	out := (&React{Enabled: true}).Process(call)
	if out.Type != ast.TypeSend {
		t.Fatalf("lowercase send should not be treated as a component call")
	}
}
