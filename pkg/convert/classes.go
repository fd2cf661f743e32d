package convert

import (
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/namespace"
)

// renderArgs lowers a Ruby parameter list to a JS parameter list:
// required and optional positionals pass through in order, keyword
// parameters collapse into one trailing destructured object parameter,
// and a splat/double-splat/block parameter each pass through as a rest
// parameter or trailing callback (spec §4.4 "Methods").
func renderArgs(c *Converter, argsNode *ast.Node) (string, error) {
	var positional []string
	var kwParts []string
	var rest, kwrest, block string

	for _, a := range childNodes(argsNode) {
		switch a.Type {
		case ast.TypeArg:
			positional = append(positional, a.StrChild(0))
		case ast.TypeOptarg:
			def, err := c.Expr(a.NodeChild(1))
			if err != nil {
				return "", err
			}
			positional = append(positional, a.StrChild(0)+" = "+def)
		case ast.TypeRestarg:
			rest = a.StrChild(0)
		case ast.TypeKwarg:
			kwParts = append(kwParts, a.StrChild(0))
		case ast.TypeKwoptarg:
			def, err := c.Expr(a.NodeChild(1))
			if err != nil {
				return "", err
			}
			kwParts = append(kwParts, a.StrChild(0)+" = "+def)
		case ast.TypeKwrestarg:
			kwrest = a.StrChild(0)
		case ast.TypeBlockarg:
			block = a.StrChild(0)
		}
	}

	var params []string
	params = append(params, positional...)
	if len(kwParts) > 0 || kwrest != "" {
		obj := "{" + strings.Join(kwParts, ", ")
		if kwrest != "" {
			if len(kwParts) > 0 {
				obj += ", "
			}
			obj += "..." + kwrest
		}
		obj += "}"
		params = append(params, obj)
	}
	if rest != "" {
		params = append(params, "..."+rest)
	}
	if block != "" {
		params = append(params, block)
	}
	return strings.Join(params, ", "), nil
}

// methodBody pushes a method-body scope, renders body, and splices a
// hoisted declaration line for any variable only ever assigned (never
// declared) within it (spec §4.4 "scope").
func (c *Converter) methodBody(body *ast.Node) (string, error) {
	c.pushScope(true, StateMethodBody)
	text, err := c.blockBody(body)
	pending := c.popScope()
	if err != nil {
		return "", err
	}
	if len(pending) > 0 {
		decl := c.declKeyword() + " " + strings.Join(pending, ", ") + "; "
		text = decl + text
	}
	return text, nil
}

// convertDef lowers an instance method definition to class/object
// method shorthand; the caller (convertClass/convertModule) supplies
// the surrounding braces and separator.
func convertDef(c *Converter, n *ast.Node) (string, error) {
	name := n.StrChild(0)
	args, err := renderArgs(c, n.NodeChild(1))
	if err != nil {
		return "", err
	}
	body, err := c.methodBody(n.NodeChild(2))
	if err != nil {
		return "", err
	}
	return name + "(" + args + ") {" + body + "}", nil
}

// convertDefs lowers a singleton method (`def self.foo`) to a `static`
// class member; outside a class body (module-level `def self.foo`) it
// renders the same way, left to the enclosing caller to place.
func convertDefs(c *Converter, n *ast.Node) (string, error) {
	name := n.StrChild(1)
	args, err := renderArgs(c, n.NodeChild(2))
	if err != nil {
		return "", err
	}
	body, err := c.methodBody(n.NodeChild(3))
	if err != nil {
		return "", err
	}
	return "static " + name + "(" + args + ") {" + body + "}", nil
}

// classMember is one rendered method definition, kept in a shape
// independent of how the surrounding declaration presents it: a fresh
// `class { ... }` body renders it as a class-member shorthand, while a
// reopened class (spec §3.3, §4.1) renders it as a prototype/static
// assignment against the binding that already exists.
type classMember struct {
	Static bool
	Name   string
	Args   string
	Body   string
}

// asClassBody renders m the way a fresh class/object declaration's
// body does: `name(args) {body}`, `static ` prefixed for a Defs.
func (m classMember) asClassBody() string {
	prefix := ""
	if m.Static {
		prefix = "static "
	}
	return prefix + m.Name + "(" + m.Args + ") {" + m.Body + "}"
}

// asAssignment renders m as a patch against recv, the name already
// bound to the class being reopened: an instance method becomes a
// `recv.prototype.name` assignment, a static method a plain `recv.name`
// one -- JS has no "reopen a class" syntax, so every reopened member is
// always a function-assignment patch regardless of the target ES level.
func (m classMember) asAssignment(recv string) string {
	target := recv + "." + m.Name
	if !m.Static {
		target = recv + ".prototype." + m.Name
	}
	return target + " = function(" + m.Args + ") {" + m.Body + "};"
}

// classMember builds a classMember from a Def/Defs node.
func (c *Converter) classMember(n *ast.Node) (classMember, error) {
	switch n.Type {
	case ast.TypeDef:
		args, err := renderArgs(c, n.NodeChild(1))
		if err != nil {
			return classMember{}, err
		}
		body, err := c.methodBody(n.NodeChild(2))
		if err != nil {
			return classMember{}, err
		}
		return classMember{Name: n.StrChild(0), Args: args, Body: body}, nil
	default: // ast.TypeDefs
		args, err := renderArgs(c, n.NodeChild(2))
		if err != nil {
			return classMember{}, err
		}
		body, err := c.methodBody(n.NodeChild(3))
		if err != nil {
			return classMember{}, err
		}
		return classMember{Static: true, Name: n.StrChild(1), Args: args, Body: body}, nil
	}
}

// classMembers splits a class/module body into its method definitions
// and any remaining statements (rendered after the declaration, since
// JS class/object bodies may not hold arbitrary statements).
func (c *Converter) classMembers(body *ast.Node) (members []classMember, extra []string, err error) {
	for _, stmt := range statementsOf(body) {
		switch stmt.Type {
		case ast.TypeDef, ast.TypeDefs:
			m, e := c.classMember(stmt)
			if e != nil {
				return nil, nil, e
			}
			members = append(members, m)
		default:
			s, e := c.Stmt(stmt)
			if e != nil {
				return nil, nil, e
			}
			extra = append(extra, s)
		}
	}
	return members, extra, nil
}

// convertClass lowers `class Name < Super ... end` to an ES class
// declaration the first time path is seen in this compile. Reopening a
// class already declared earlier (spec §3.3, §4.1, Testable Property
// #3) emits no second `class`/`extends` clause -- JS has no syntax for
// that -- instead patching each method onto the existing binding as a
// `Name.prototype.m = function ...`/`Name.m = function ...` assignment,
// per Enter's reopened signal.
func convertClass(c *Converter, n *ast.Node) (string, error) {
	path := namespace.ResolvePath(n.NodeChild(0))
	name := lastOr(path, "Anonymous")

	reopened := false
	if c.NS != nil {
		_, reopened = c.NS.Enter(path)
		defer c.NS.Leave()
	}

	var superStr string
	if sup := n.NodeChild(1); !reopened && sup != nil && !sup.IsNil() {
		s, err := c.Expr(sup)
		if err != nil {
			return "", err
		}
		superStr = " extends " + s
	}

	c.pushScope(false, StateClassBody)
	members, extra, err := c.classMembers(n.NodeChild(2))
	c.popScope()
	if err != nil {
		return "", err
	}

	if reopened {
		parts := make([]string, 0, len(members)+len(extra))
		for _, m := range members {
			parts = append(parts, m.asAssignment(name))
		}
		parts = append(parts, extra...)
		return strings.Join(parts, " "), nil
	}

	defs := make([]string, len(members))
	for i, m := range members {
		defs[i] = m.asClassBody()
	}
	out := "class " + name + superStr + " {" + strings.Join(defs, " ") + "}"
	if len(extra) > 0 {
		out += " " + strings.Join(extra, " ")
	}
	return out, nil
}

// convertModule lowers a Ruby module, which holds functions and
// constants but is never instantiated, to a plain object namespace
// (spec §4.4 "Classes", "a module with no instance state becomes an
// object literal of its functions").
func convertModule(c *Converter, n *ast.Node) (string, error) {
	path := namespace.ResolvePath(n.NodeChild(0))
	name := lastOr(path, "Anonymous")

	reopened := false
	if c.NS != nil {
		_, reopened = c.NS.Enter(path)
		defer c.NS.Leave()
	}
	c.pushScope(false, StateClassBody)
	members, extra, err := c.classMembers(n.NodeChild(1))
	c.popScope()
	if err != nil {
		return "", err
	}

	if reopened {
		parts := make([]string, 0, len(members)+len(extra))
		for _, m := range members {
			parts = append(parts, name+"."+m.Name+" = function("+m.Args+") {"+m.Body+"};")
		}
		parts = append(parts, extra...)
		return strings.Join(parts, " "), nil
	}

	defs := make([]string, len(members))
	for i, m := range members {
		defs[i] = m.asClassBody()
	}
	out := c.declKeyword() + " " + name + " = {" + strings.Join(defs, ", ") + "};"
	if len(extra) > 0 {
		out += " " + strings.Join(extra, " ")
	}
	return out, nil
}

func lastOr(path []string, fallback string) string {
	if len(path) == 0 {
		return fallback
	}
	return path[len(path)-1]
}
