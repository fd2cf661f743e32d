package convert

import (
	"strconv"
	"strings"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/pkg/ast"
)

// operand renders child in expression mode, parenthesizing it when its
// own operator binds more loosely than parentOp (spec §4.4 "Operator
// precedence").
func operand(c *Converter, child *ast.Node, parentOp string) (string, error) {
	s, err := c.Expr(child)
	if err != nil {
		return "", err
	}
	if needsParens(opOf(child), parentOp) {
		return "(" + s + ")", nil
	}
	return s, nil
}

// opOf returns the operator symbol a node represents for precedence
// purposes, or "" for a node with no operator reading (binds tightest,
// never parenthesized).
func opOf(n *ast.Node) string {
	switch n.Type {
	case ast.TypeAnd:
		return "&&"
	case ast.TypeOr:
		return "||"
	case ast.TypeNot:
		return "!"
	case ast.TypeSend, ast.TypeCsend:
		if len(n.Children) == 3 {
			if _, ok := precedence[n.StrChild(1)]; ok {
				return n.StrChild(1)
			}
		}
	}
	return ""
}

func convertAnd(c *Converter, n *ast.Node) (string, error) {
	left, err := operand(c, n.NodeChild(0), "&&")
	if err != nil {
		return "", err
	}
	right, err := operand(c, n.NodeChild(1), "&&")
	if err != nil {
		return "", err
	}
	return left + " && " + right, nil
}

func convertOr(c *Converter, n *ast.Node) (string, error) {
	op := "||"
	if c.Options.Or == config.OrNullish {
		op = "??"
	}
	left, err := operand(c, n.NodeChild(0), op)
	if err != nil {
		return "", err
	}
	right, err := operand(c, n.NodeChild(1), op)
	if err != nil {
		return "", err
	}
	return left + " " + op + " " + right, nil
}

func convertNot(c *Converter, n *ast.Node) (string, error) {
	inner := n.NodeChild(0)
	if inv, ok := invertedComparison[opOf(inner)]; ok {
		left, err := operand(c, inner.NodeChild(0), inv)
		if err != nil {
			return "", err
		}
		right, err := operand(c, inner.NodeChild(2), inv)
		if err != nil {
			return "", err
		}
		return left + " " + translateOperator(c, inv) + " " + right, nil
	}
	s, err := operand(c, inner, "!")
	if err != nil {
		return "", err
	}
	return "!" + s, nil
}

func convertDefined(c *Converter, n *ast.Node) (string, error) {
	s, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	return "typeof " + s + " !== \"undefined\"", nil
}

func convertSuper(c *Converter, n *ast.Node) (string, error) {
	args, err := c.ParseAll(childNodes(n), ", ")
	if err != nil {
		return "", err
	}
	return "super(" + args + ")", nil
}

func convertZsuper(c *Converter, n *ast.Node) (string, error) {
	return "super(...arguments)", nil
}

// convertIf lowers if/elsif/else. In statement mode this always emits
// the braced if/else-if/else chain; the ternary-as-expression reduction
// (spec §4.4 "Control flow", "a short if lowers to a ternary") is
// applied by convertAutoret (tail position) and convertLvasgn (value of
// a local assignment) calling ifAsExpr directly rather than by a
// general expression-mode override, keeping Expr's dispatch table
// uniform; other expression positions get the braced form.
func convertIf(c *Converter, n *ast.Node) (string, error) {
	cond, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	thenBody, err := c.blockBody(n.NodeChild(1))
	if err != nil {
		return "", err
	}
	els := n.NodeChild(2)
	if els == nil || els.IsNil() {
		return "if (" + cond + ") {" + thenBody + "}", nil
	}
	if els.Type == ast.TypeIf {
		elseStr, err := convertIf(c, els)
		if err != nil {
			return "", err
		}
		return "if (" + cond + ") {" + thenBody + "} else " + elseStr, nil
	}
	elseBody, err := c.blockBody(els)
	if err != nil {
		return "", err
	}
	return "if (" + cond + ") {" + thenBody + "} else {" + elseBody + "}", nil
}

// ifAsExpr renders a two-armed if as a ternary when both arms are
// single expressions (spec §4.4).
func (c *Converter) ifAsExpr(n *ast.Node) (string, bool, error) {
	if n.Type != ast.TypeIf {
		return "", false, nil
	}
	then := n.NodeChild(1)
	els := n.NodeChild(2)
	if then == nil || els == nil || then.IsNil() || els.IsNil() {
		return "", false, nil
	}
	if then.Type == ast.TypeBegin || els.Type == ast.TypeBegin {
		return "", false, nil
	}
	cond, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", false, err
	}
	thenStr, err := operand(c, then, "??")
	if err != nil {
		return "", false, err
	}
	elseStr, err := operand(c, els, "??")
	if err != nil {
		return "", false, err
	}
	return cond + " ? " + thenStr + " : " + elseStr, true, nil
}

// blockBody renders a statement (or begin-wrapped statement list) as
// the semicolon-joined body of a braced block.
func (c *Converter) blockBody(n *ast.Node) (string, error) {
	stmts := statementsOf(n)
	var rendered []string
	for _, s := range stmts {
		r, err := c.Stmt(s)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, r)
	}
	return strings.Join(rendered, " "), nil
}

// convertCase lowers a case/when with a subject to a switch, one `case`
// label per when-condition, and a subjectless case to an if/else-if
// chain that tests each when's conditions directly, joined with ||
// (spec §4.4 "Control flow"). The when-conditions are not inspected:
// ranges, classes and other non-literal patterns also become switch
// labels, and the comparison option does not apply.
func convertCase(c *Converter, n *ast.Node) (string, error) {
	subject := n.NodeChild(0)
	whens := childNodes(n)[1:]
	var elseBody *ast.Node
	var whenNodes []*ast.Node
	for _, w := range whens {
		if w.Type == ast.TypeWhen {
			whenNodes = append(whenNodes, w)
		} else {
			elseBody = w
		}
	}
	if subject == nil || subject.IsNil() {
		return c.caseAsIfChain(nil, whenNodes, elseBody)
	}
	subjStr, err := c.Expr(subject)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("switch (" + subjStr + ") {")
	for _, w := range whenNodes {
		conds := childNodes(w)[:len(childNodes(w))-1]
		for _, cond := range conds {
			condStr, err := c.Expr(cond)
			if err != nil {
				return "", err
			}
			b.WriteString("case " + condStr + ": ")
		}
		body, err := c.blockBody(w.NodeChild(len(w.Children) - 1))
		if err != nil {
			return "", err
		}
		b.WriteString(body + " break; ")
	}
	if elseBody != nil {
		body, err := c.blockBody(elseBody)
		if err != nil {
			return "", err
		}
		b.WriteString("default: " + body)
	}
	b.WriteString("}")
	return b.String(), nil
}

func (c *Converter) caseAsIfChain(subject *ast.Node, whens []*ast.Node, elseBody *ast.Node) (string, error) {
	var b strings.Builder
	for i, w := range whens {
		conds := childNodes(w)[:len(childNodes(w))-1]
		condParts, err := c.ParseAll(conds, " || ")
		if err != nil {
			return "", err
		}
		body, err := c.blockBody(w.NodeChild(len(w.Children) - 1))
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(" else ")
		}
		b.WriteString("if (" + condParts + ") {" + body + "}")
	}
	if elseBody != nil {
		body, err := c.blockBody(elseBody)
		if err != nil {
			return "", err
		}
		b.WriteString(" else {" + body + "}")
	}
	return b.String(), nil
}

func convertWhile(c *Converter, n *ast.Node) (string, error) {
	return loopWith(c, "while", n, false)
}

func convertUntil(c *Converter, n *ast.Node) (string, error) {
	return loopWith(c, "while", n, true)
}

func loopWith(c *Converter, kw string, n *ast.Node, negate bool) (string, error) {
	cond, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	if negate {
		cond = "!(" + cond + ")"
	}
	c.pushScope(false, StateBlockBody)
	body, err := c.blockBody(n.NodeChild(1))
	c.popScope()
	if err != nil {
		return "", err
	}
	return kw + " (" + cond + ") {" + body + "}", nil
}

func convertWhilePost(c *Converter, n *ast.Node) (string, error) {
	cond, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	c.pushScope(false, StateBlockBody)
	body, err := c.blockBody(n.NodeChild(1))
	c.popScope()
	if err != nil {
		return "", err
	}
	return "do {" + body + "} while (" + cond + ")", nil
}

func convertUntilPost(c *Converter, n *ast.Node) (string, error) {
	cond, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	c.pushScope(false, StateBlockBody)
	body, err := c.blockBody(n.NodeChild(1))
	c.popScope()
	if err != nil {
		return "", err
	}
	return "do {" + body + "} while (!(" + cond + "))", nil
}

// convertFor lowers `for x in expr` to `for (const x of expr)` (spec
// §4.4 "Loops").
func convertFor(c *Converter, n *ast.Node) (string, error) {
	varNode := n.NodeChild(0)
	iter := n.NodeChild(1)
	body := n.NodeChild(2)
	varName := varNode.StrChild(0)
	iterStr, err := c.Expr(iter)
	if err != nil {
		return "", err
	}
	c.pushScope(false, StateBlockBody)
	bodyStr, err := c.blockBody(body)
	c.popScope()
	if err != nil {
		return "", err
	}
	return "for (const " + varName + " of " + iterStr + ") {" + bodyStr + "}", nil
}

func convertBreak(c *Converter, n *ast.Node) (string, error) {
	if !c.legalFor("break") {
		return "", raiseIllegalControl("break", c.currentScope().State)
	}
	return "break", nil
}

func convertNext(c *Converter, n *ast.Node) (string, error) {
	if !c.legalFor("next") {
		return "", raiseIllegalControl("next", c.currentScope().State)
	}
	return "continue", nil
}

func convertReturn(c *Converter, n *ast.Node) (string, error) {
	if !c.legalFor("return") {
		return "", raiseIllegalControl("return", c.currentScope().State)
	}
	if len(n.Children) == 0 {
		return "return", nil
	}
	val, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	return "return " + val, nil
}

func convertYield(c *Converter, n *ast.Node) (string, error) {
	if !c.legalFor("yield") {
		return "", raiseIllegalControl("yield", c.currentScope().State)
	}
	args, err := c.ParseAll(childNodes(n), ", ")
	if err != nil {
		return "", err
	}
	return "_implicitBlockYield(" + args + ")", nil
}

// convertAutoret implements the converter-side fallback for an
// autoreturn-wrapped statement: emit `return expr` for a plain
// expression, or let an if already in tail position lower to a ternary
// first (spec §4.4 "Block emission").
func convertAutoret(c *Converter, n *ast.Node) (string, error) {
	inner := n.NodeChild(0)
	if !c.legalFor("return") {
		val, err := c.Expr(inner)
		if err != nil {
			return "", err
		}
		return val, nil
	}
	if ternary, ok, err := c.ifAsExpr(inner); err != nil {
		return "", err
	} else if ok {
		return "return " + ternary, nil
	}
	val, err := c.Expr(inner)
	if err != nil {
		return "", err
	}
	return "return " + val, nil
}

func convertBegin(c *Converter, n *ast.Node) (string, error) {
	return c.blockBody(n)
}

// convertRescue lowers to try/catch (spec §4.4 "Exceptions").
func convertRescue(c *Converter, n *ast.Node) (string, error) {
	main := n.NodeChild(0)
	mainStr, err := c.blockBody(main)
	if err != nil {
		return "", err
	}
	var catches []string
	for i := 1; i < len(n.Children); i++ {
		rb, ok := n.Children[i].(*ast.Node)
		if !ok || rb.Type != ast.TypeResbody {
			continue
		}
		s, err := convertResbody(c, rb)
		if err != nil {
			return "", err
		}
		catches = append(catches, s)
	}
	return "try {" + mainStr + "} " + strings.Join(catches, " "), nil
}

func convertResbody(c *Converter, n *ast.Node) (string, error) {
	classes := childNodes(n.NodeChild(0))
	varName := "e"
	if v := n.NodeChild(1); v != nil && !v.IsNil() {
		varName = v.StrChild(0)
	}
	body, err := c.blockBody(n.NodeChild(2))
	if err != nil {
		return "", err
	}
	if len(classes) == 0 {
		return "catch (" + varName + ") {" + body + "}", nil
	}
	var guards []string
	for _, cl := range classes {
		clStr, err := c.Expr(cl)
		if err != nil {
			return "", err
		}
		if clStr == "Exception" {
			guards = nil
			break
		}
		guards = append(guards, varName+" instanceof "+clStr)
	}
	if len(guards) == 0 {
		return "catch (" + varName + ") {" + body + "}", nil
	}
	guard := strings.Join(guards, " || ")
	return "catch (" + varName + ") { if (" + guard + ") {" + body + "} else { throw " + varName + "; } }", nil
}

// convertCaseIn lowers `case/in` pattern matching to a sequence of
// conditional tests, each declaring its bound locals before testing an
// optional guard (spec §4.4 "Control flow"). A pattern reuses the plain
// array/hash literal node shapes with an `lvar` child marking a binding
// target, per the Open Question decision recorded in the design ledger:
// an unguarded failing match simply skips that branch's body, matching
// ordinary if/else-if fallthrough; a guard failing after a successful
// structural match does not re-attempt the next `in` clause, a
// documented simplification since JS has no native re-entrant pattern
// match.
func convertCaseIn(c *Converter, n *ast.Node) (string, error) {
	subject := n.NodeChild(0)
	subjStr, err := c.Expr(subject)
	if err != nil {
		return "", err
	}
	clauses := childNodes(n)[1:]

	var b strings.Builder
	wroteBranch := false
	var elseBody *ast.Node
	for _, cl := range clauses {
		if cl.Type != ast.TypeIn {
			elseBody = cl
			continue
		}
		pattern := cl.NodeChild(0)
		guard := cl.NodeChild(1)
		body := cl.NodeChild(2)

		cond, decl, err := c.patternTest(subjStr, pattern)
		if err != nil {
			return "", err
		}
		if guard != nil && !guard.IsNil() {
			g, err := c.Expr(guard)
			if err != nil {
				return "", err
			}
			cond = cond + " && (() => { " + decl + "return " + g + "; })()"
			decl = ""
		}
		bodyStr, err := c.blockBody(body)
		if err != nil {
			return "", err
		}
		if wroteBranch {
			b.WriteString(" else ")
		}
		b.WriteString("if (" + cond + ") {" + decl + bodyStr + "}")
		wroteBranch = true
	}
	if elseBody != nil {
		body, err := c.blockBody(elseBody)
		if err != nil {
			return "", err
		}
		if wroteBranch {
			b.WriteString(" else {" + body + "}")
		} else {
			b.WriteString(body)
		}
	}
	return b.String(), nil
}

// patternTest builds the boolean match condition and the `let`
// declaration statement binding any pattern-local names, for one `in`
// pattern tested against subject (already-rendered expression text).
func (c *Converter) patternTest(subject string, pattern *ast.Node) (cond string, decl string, err error) {
	switch pattern.Type {
	case ast.TypeLvar:
		return "true", c.declKeyword() + " " + pattern.StrChild(0) + " = " + subject + "; ", nil
	case ast.TypeArray:
		items := childNodes(pattern)
		cond = "Array.isArray(" + subject + ") && " + subject + ".length === " + strconv.Itoa(len(items))
		var binds []string
		for i, it := range items {
			elem := subject + "[" + strconv.Itoa(i) + "]"
			if it.Type == ast.TypeLvar {
				binds = append(binds, it.StrChild(0)+" = "+elem)
				continue
			}
			litStr, err := c.Expr(it)
			if err != nil {
				return "", "", err
			}
			cond += " && " + elem + " === " + litStr
		}
		if len(binds) > 0 {
			decl = c.declKeyword() + " " + strings.Join(binds, ", ") + "; "
		}
		return cond, decl, nil
	case ast.TypeHash:
		pairs := childNodes(pattern)
		cond = "typeof " + subject + " === \"object\" && " + subject + " !== null"
		var binds []string
		for _, p := range pairs {
			key := p.NodeChild(0).StrChild(0)
			val := p.NodeChild(1)
			cond += " && \"" + key + "\" in " + subject
			if val == nil || val.IsNil() || val.Type == ast.TypeLvar {
				binds = append(binds, key+" = "+subject+"."+key)
			} else {
				litStr, err := c.Expr(val)
				if err != nil {
					return "", "", err
				}
				cond += " && " + subject + "." + key + " === " + litStr
			}
		}
		if len(binds) > 0 {
			decl = c.declKeyword() + " " + strings.Join(binds, ", ") + "; "
		}
		return cond, decl, nil
	default:
		litStr, err := c.Expr(pattern)
		if err != nil {
			return "", "", err
		}
		return subject + " " + translateOperator(c, "==") + " " + litStr, "", nil
	}
}

func convertEnsure(c *Converter, n *ast.Node) (string, error) {
	main, err := c.Expr(n.NodeChild(0))
	if err != nil {
		return "", err
	}
	fin, err := c.blockBody(n.NodeChild(1))
	if err != nil {
		return "", err
	}
	return main + " finally {" + fin + "}", nil
}
