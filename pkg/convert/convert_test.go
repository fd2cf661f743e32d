package convert

import (
	"strings"
	"testing"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/pkg/ast"
)

func newConverter(t *testing.T, opts config.Options) *Converter {
	t.Helper()
	resolved, err := opts.Validate()
	if err != nil {
		t.Fatalf("invalid options: %v", err)
	}
	return New(resolved, nil, nil)
}

func mustExpr(t *testing.T, c *Converter, n *ast.Node) string {
	t.Helper()
	s, err := c.Expr(n)
	if err != nil {
		t.Fatalf("Expr failed: %v", err)
	}
	return s
}

func TestConvertIntAndFloat(t *testing.T) {
	c := newConverter(t, config.Options{})
	if got := mustExpr(t, c, ast.New(ast.TypeInt, int64(42))); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := mustExpr(t, c, ast.New(ast.TypeFloat, 1.0)); got != "1.0" {
		t.Fatalf("got %q, want trailing .0", got)
	}
	if got := mustExpr(t, c, ast.New(ast.TypeFloat, 1.5)); got != "1.5" {
		t.Fatalf("got %q", got)
	}
}

func TestConvertBinaryOperatorPrecedence(t *testing.T) {
	c := newConverter(t, config.Options{})
	// (1 + 2) * 3
	inner := ast.New(ast.TypeSend, ast.New(ast.TypeInt, int64(1)), "+", ast.New(ast.TypeInt, int64(2)))
	outer := ast.New(ast.TypeSend, inner, "*", ast.New(ast.TypeInt, int64(3)))
	got := mustExpr(t, c, outer)
	want := "(1 + 2) * 3"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertBinaryOperatorNoUnneededParens(t *testing.T) {
	c := newConverter(t, config.Options{})
	// 1 + 2 * 3  -- the looser '+' at top should not force parens around '*'
	inner := ast.New(ast.TypeSend, ast.New(ast.TypeInt, int64(2)), "*", ast.New(ast.TypeInt, int64(3)))
	outer := ast.New(ast.TypeSend, ast.New(ast.TypeInt, int64(1)), "+", inner)
	got := mustExpr(t, c, outer)
	want := "1 + 2 * 3"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertEqualityUsesLooseByDefault(t *testing.T) {
	c := newConverter(t, config.Options{})
	n := ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "a"), "==", ast.New(ast.TypeLvar, "b"))
	got := mustExpr(t, c, n)
	if got != "a == b" {
		t.Fatalf("got %q", got)
	}
}

func TestConvertEqualityIdentityMode(t *testing.T) {
	c := newConverter(t, config.Options{Comparison: config.ComparisonIdentity})
	n := ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "a"), "==", ast.New(ast.TypeLvar, "b"))
	got := mustExpr(t, c, n)
	if got != "a === b" {
		t.Fatalf("got %q", got)
	}
}

func TestConvertIvarPublicAndPrivate(t *testing.T) {
	c := newConverter(t, config.Options{ESLevel: 2022})
	pub := mustExpr(t, c, ast.New(ast.TypeIvar, "@name"))
	if pub != "this.name" {
		t.Fatalf("got %q", pub)
	}
	priv := mustExpr(t, c, ast.New(ast.TypeIvar, "@_secret"))
	if priv != "this.#secret" {
		t.Fatalf("got %q, want private-field lowering under ES2022", priv)
	}
}

func TestConvertIvarPrivateFallsBackBelowES2022(t *testing.T) {
	c := newConverter(t, config.Options{ESLevel: 2015})
	priv := mustExpr(t, c, ast.New(ast.TypeIvar, "@_secret"))
	if priv != "this._secret" {
		t.Fatalf("got %q", priv)
	}
}

func TestConvertIfAsTernaryInAutoreturn(t *testing.T) {
	c := newConverter(t, config.Options{})
	c.pushScope(true, StateMethodBody)
	ifNode := ast.New(ast.TypeIf, ast.New(ast.TypeLvar, "cond"),
		ast.New(ast.TypeInt, int64(1)), ast.New(ast.TypeInt, int64(2)))
	autoret := ast.New(ast.TypeAutoret, ifNode)
	got := mustExpr(t, c, autoret)
	want := "return cond ? 1 : 2"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertReturnIllegalAtOuterScope(t *testing.T) {
	c := newConverter(t, config.Options{})
	c.pushScope(true, StateOuter)
	_, err := c.Expr(ast.New(ast.TypeReturn, ast.New(ast.TypeInt, int64(1))))
	if err == nil {
		t.Fatalf("expected IllegalControl error for return at outer scope")
	}
}

func TestConvertBreakLegalInsideBlock(t *testing.T) {
	c := newConverter(t, config.Options{})
	c.pushScope(true, StateOuter)
	c.pushScope(false, StateBlockBody)
	got := mustExpr(t, c, ast.New(ast.TypeBreak))
	if got != "break" {
		t.Fatalf("got %q", got)
	}
}

func TestConvertEachBlockLowersToForOf(t *testing.T) {
	c := newConverter(t, config.Options{})
	send := ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "items"), "each")
	blockArgs := ast.New(ast.TypeArgs, ast.New(ast.TypeArg, "x"))
	body := ast.New(ast.TypeSend, ast.Nil, "puts", ast.New(ast.TypeLvar, "x"))
	block := ast.New(ast.TypeBlock, send, blockArgs, body)

	got := mustExpr(t, c, block)
	if !strings.HasPrefix(got, "for (const x of items)") {
		t.Fatalf("got %q", got)
	}
}

func TestConvertGenericBlockLowersToArrowCallback(t *testing.T) {
	c := newConverter(t, config.Options{})
	send := ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "items"), "map")
	blockArgs := ast.New(ast.TypeArgs, ast.New(ast.TypeArg, "x"))
	body := ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "x"), "+", ast.New(ast.TypeInt, int64(1)))
	block := ast.New(ast.TypeBlock, send, blockArgs, body)

	got := mustExpr(t, c, block)
	want := "items.map((x) => {x + 1;})"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertClassWithMethodAndSuperclass(t *testing.T) {
	c := newConverter(t, config.Options{})
	constRef := ast.New(ast.TypeConst, ast.Nil, "Dog")
	super := ast.New(ast.TypeConst, ast.Nil, "Animal")
	method := ast.New(ast.TypeDef, "bark", ast.New(ast.TypeArgs),
		ast.New(ast.TypeReturn, ast.New(ast.TypeStr, "woof")))
	body := ast.New(ast.TypeBegin, method)
	class := ast.New(ast.TypeClass, constRef, super, body)

	got := mustExpr(t, c, class)
	if !strings.HasPrefix(got, "class Dog extends Animal {") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "bark()") {
		t.Fatalf("expected bark method shorthand, got %q", got)
	}
}

func TestConvertModuleLowersToObjectLiteral(t *testing.T) {
	c := newConverter(t, config.Options{})
	constRef := ast.New(ast.TypeConst, ast.Nil, "MathUtils")
	method := ast.New(ast.TypeDef, "square", ast.New(ast.TypeArgs, ast.New(ast.TypeArg, "n")),
		ast.New(ast.TypeReturn, ast.New(ast.TypeSend, ast.New(ast.TypeLvar, "n"), "*", ast.New(ast.TypeLvar, "n"))))
	body := ast.New(ast.TypeBegin, method)
	module := ast.New(ast.TypeModule, constRef, body)

	got := mustExpr(t, c, module)
	if !strings.HasPrefix(got, "let MathUtils = {") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "square(n)") {
		t.Fatalf("expected square method shorthand, got %q", got)
	}
}

func TestConvertRescueLowersToTryCatch(t *testing.T) {
	c := newConverter(t, config.Options{})
	main := ast.New(ast.TypeSend, ast.Nil, "risky")
	resbody := ast.New(ast.TypeResbody,
		ast.New(ast.TypeArray, ast.New(ast.TypeConst, ast.Nil, "ArgumentError")),
		ast.New(ast.TypeLvasgn, "e"),
		ast.New(ast.TypeSend, ast.Nil, "puts", ast.New(ast.TypeLvar, "e")))
	rescue := ast.New(ast.TypeRescue, main, resbody)

	got := mustExpr(t, c, rescue)
	if !strings.HasPrefix(got, "try {") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "instanceof ArgumentError") {
		t.Fatalf("expected instanceof guard, got %q", got)
	}
}

func TestConvertDstrTemplateLiteralUnderES2015(t *testing.T) {
	c := newConverter(t, config.Options{})
	dstr := ast.New(ast.TypeDstr,
		ast.New(ast.TypeStr, "hi "),
		ast.New(ast.TypeLvar, "name"),
		ast.New(ast.TypeStr, "!"))
	got := mustExpr(t, c, dstr)
	want := "`hi ${name}!`"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertDstrConcatUnderES5(t *testing.T) {
	c := newConverter(t, config.Options{ESLevel: 5})
	dstr := ast.New(ast.TypeDstr,
		ast.New(ast.TypeStr, "hi "),
		ast.New(ast.TypeLvar, "name"))
	got := mustExpr(t, c, dstr)
	want := `"hi " + name`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestConvertHoistsAssignedLocalAtScopeTop(t *testing.T) {
	c := newConverter(t, config.Options{})
	root := ast.New(ast.TypeBegin,
		ast.New(ast.TypeLvasgn, "total", ast.New(ast.TypeInt, int64(0))),
	)
	out, err := c.Convert(root)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "total") {
		t.Fatalf("got %q", out)
	}
}

func TestConvertCaseInArrayPatternDestructures(t *testing.T) {
	c := newConverter(t, config.Options{})
	subject := ast.New(ast.TypeLvar, "pair")
	pattern := ast.New(ast.TypeArray, ast.New(ast.TypeLvar, "a"), ast.New(ast.TypeLvar, "b"))
	in := ast.New(ast.TypeIn, pattern, ast.Nil,
		ast.New(ast.TypeSend, ast.Nil, "puts", ast.New(ast.TypeLvar, "a")))
	caseIn := ast.New(ast.TypeCaseIn, subject, in)

	got := mustExpr(t, c, caseIn)
	if !strings.Contains(got, "Array.isArray(pair)") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "a = pair[0], b = pair[1]") {
		t.Fatalf("expected destructuring bind, got %q", got)
	}
}

func TestConvertUnknownNodeRaisesDiagnostic(t *testing.T) {
	c := newConverter(t, config.Options{})
	_, err := c.Expr(ast.New(ast.NodeType("not_a_real_tag")))
	if err == nil {
		t.Fatalf("expected an UnknownNode error")
	}
}
