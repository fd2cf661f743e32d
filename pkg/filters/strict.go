package filters

import (
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// Strict contributes a `"use strict";` prepend statement when Enabled
// (spec §4.5 "Strict mode"). It never touches the AST directly.
type Strict struct {
	Enabled bool
}

func (s *Strict) Name() string { return "strict" }

func (s *Strict) Process(n *ast.Node) *ast.Node {
	return compose1(s, s.Name(), s.handlers()).Process(n)
}

func (s *Strict) handlers() filter.Handlers {
	return filter.Handlers{}
}

func (s *Strict) Prepend() []*ast.Node {
	if !s.Enabled {
		return nil
	}
	return []*ast.Node{ast.New(ast.TypeXnode, `"use strict";`)}
}
