package filters

import (
	"strings"
	"testing"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

func TestTemplateLowersLiteralTextOnly(t *testing.T) {
	n := ast.New(TemplateTail, "<p>hello</p>")
	out := (&Template{}).Process(n)
	if out.Type != ast.TypeXnode {
		t.Fatalf("expected xnode, got %s", out.Type)
	}
	if out.StrChild(0) != "`<p>hello</p>`" {
		t.Fatalf("unexpected literal lowering: %q", out.StrChild(0))
	}
}

func TestTemplateCompilesInterpolation(t *testing.T) {
	n := ast.New(TemplateTail, "<p><%= name %></p>")
	tpl := &Template{Compile: func(src string) (string, error) {
		return "name.toUpperCase()", nil
	}}
	out := tpl.Process(n)
	if !strings.Contains(out.StrChild(0), "${name.toUpperCase()}") {
		t.Fatalf("expected compiled interpolation spliced in, got %q", out.StrChild(0))
	}
}
