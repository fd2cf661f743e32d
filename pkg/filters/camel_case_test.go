package filters

import (
	"testing"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

func TestSnakeToCamelBasic(t *testing.T) {
	cases := map[string]string{
		"foo_bar":     "fooBar",
		"foo":         "foo",
		"_private":    "_private",
		"__very_priv": "__veryPriv",
		"valid?":      "valid?",
		"save!":       "save!",
		"a_b_c":       "aBC",
	}
	for in, want := range cases {
		if got := snakeToCamel(in); got != want {
			t.Errorf("snakeToCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCamelCaseRewritesLocalVar(t *testing.T) {
	n := ast.New(ast.TypeLvar, "my_var")
	out := (&CamelCase{}).Process(n)
	if out.StrChild(0) != "myVar" {
		t.Fatalf("expected myVar, got %q", out.StrChild(0))
	}
}

func TestCamelCaseRewritesMethodName(t *testing.T) {
	send := ast.New(ast.TypeSend, ast.Nil, "do_something")
	out := (&CamelCase{}).Process(send)
	if out.StrChild(1) != "doSomething" {
		t.Fatalf("expected doSomething, got %q", out.StrChild(1))
	}
}

func TestCamelCaseRewritesDefName(t *testing.T) {
	def := ast.New(ast.TypeDef, "do_it", ast.New(ast.TypeArgs), ast.New(ast.TypeInt, int64(1)))
	out := (&CamelCase{}).Process(def)
	if out.StrChild(0) != "doIt" {
		t.Fatalf("expected doIt, got %q", out.StrChild(0))
	}
}
