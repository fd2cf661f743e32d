package convert

import (
	"strings"
	"testing"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/namespace"
)

func constPath(name string) *ast.Node {
	return ast.New(ast.TypeConst, ast.New(ast.TypeNil), name)
}

func methodDef(name string) *ast.Node {
	return ast.New(ast.TypeDef, name, ast.New(ast.TypeArgs), ast.New(ast.TypeInt, int64(1)))
}

func classNode(name, method string) *ast.Node {
	return ast.New(ast.TypeClass, constPath(name), ast.New(ast.TypeNil), methodDef(method))
}

// TestConvertClassReopenPatchesExistingBinding covers Scenario D /
// Testable Property #3: two sibling `class Foo` definitions resolving
// to the same path emit exactly one `class` declaration, with the
// second's methods patched onto the existing binding instead of a
// second declaration.
func TestConvertClassReopenPatchesExistingBinding(t *testing.T) {
	c := New(config.Options{}, namespace.New(), nil)

	first, err := convertClass(c, classNode("Foo", "greet"))
	if err != nil {
		t.Fatalf("first convertClass failed: %v", err)
	}
	if !strings.HasPrefix(first, "class Foo ") {
		t.Fatalf("expected the first occurrence to declare the class, got %q", first)
	}
	if strings.Count(first, "class ") != 1 {
		t.Fatalf("expected exactly one class declaration, got %q", first)
	}

	second, err := convertClass(c, classNode("Foo", "farewell"))
	if err != nil {
		t.Fatalf("second convertClass failed: %v", err)
	}
	if strings.Contains(second, "class ") {
		t.Errorf("reopened class must not emit a second class declaration, got %q", second)
	}
	if !strings.Contains(second, "Foo.prototype.farewell = function") {
		t.Errorf("expected the reopened method patched onto Foo.prototype, got %q", second)
	}
}

// TestConvertClassFirstOccurrenceKeepsSuperclass ensures the
// superclass clause is still rendered on the first declaration (the
// reopen path only ever suppresses it on a later occurrence).
func TestConvertClassFirstOccurrenceKeepsSuperclass(t *testing.T) {
	c := New(config.Options{}, namespace.New(), nil)
	n := ast.New(ast.TypeClass, constPath("Dog"), constPath("Animal"), methodDef("bark"))

	out, err := convertClass(c, n)
	if err != nil {
		t.Fatalf("convertClass failed: %v", err)
	}
	if !strings.Contains(out, "extends Animal") {
		t.Errorf("expected the first declaration to extend the superclass, got %q", out)
	}
}

// TestConvertModuleReopenPatchesExistingBinding mirrors the class case
// for a reopened module: the second occurrence patches the new method
// onto the existing object instead of re-declaring the literal.
func TestConvertModuleReopenPatchesExistingBinding(t *testing.T) {
	c := New(config.Options{}, namespace.New(), nil)
	moduleNode := func(name, method string) *ast.Node {
		return ast.New(ast.TypeModule, constPath(name), methodDef(method))
	}

	first, err := convertModule(c, moduleNode("Util", "greet"))
	if err != nil {
		t.Fatalf("first convertModule failed: %v", err)
	}
	if !strings.Contains(first, "Util = {") {
		t.Fatalf("expected the first occurrence to declare the object literal, got %q", first)
	}

	second, err := convertModule(c, moduleNode("Util", "farewell"))
	if err != nil {
		t.Fatalf("second convertModule failed: %v", err)
	}
	if strings.Contains(second, "= {") {
		t.Errorf("reopened module must not re-declare the object literal, got %q", second)
	}
	if !strings.Contains(second, "Util.farewell = function") {
		t.Errorf("expected the reopened method patched onto Util, got %q", second)
	}
}
