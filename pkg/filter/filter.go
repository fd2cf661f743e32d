// Package filter implements the composable, re-entrant AST-rewriting
// runtime: a vector of per-tag handler tables threaded through a
// cursor, realizing Ruby's mixin-style "super" dispatch chain without a
// Go analogue of open classes.
package filter

import (
	"fmt"

	"github.com/rubyjs/ruby2go/internal/diagnostics"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/namespace"
)

// Next is the "call the next layer up" continuation a handler invokes
// to see the rewrite produced by every filter layer beneath it already
// applied, the direct analogue of Ruby's `super`.
type Next func(n *ast.Node) *ast.Node

// Handler rewrites one node, optionally delegating to next. Returning
// nil elides the node from its parent's children.
type Handler func(n *ast.Node, next Next) *ast.Node

// Filter is the uniform contract every concrete rewriter in pkg/filters
// satisfies. Process recursively rewrites n; a Filter's default
// behavior (when it has no handler for n's tag) reconstructs n with its
// children rewritten, as implemented by Compose/Base below.
type Filter interface {
	Process(n *ast.Node) *ast.Node
}

// Reorderer is an optional capability: a filter that needs a specific
// relative position in the composed list (e.g. a filter that introduces
// import nodes must run before the filter that fixes up the ES module
// surface) implements Reorder.
type Reorderer interface {
	Reorder(filters []Filter) []Filter
}

// Prepender is an optional capability: a filter that wants to splice
// nodes ahead of the final AST (imports, a "use strict" literal)
// implements Prepend, called once after the whole Process pass
// completes.
type Prepender interface {
	Prepend() []*ast.Node
}

// Context bundles shared state a filter could read: namespace and
// comment map, and autoimport/export policy. Nothing in this module
// builds a Context or hands one to a filter; Compose takes only the
// filters and a handler extractor, and each filter in pkg/filters
// carries its own configuration fields.
type Context struct {
	Namespace *namespace.Namespace
	Comments  *ast.CommentMap
	Policy    Policy
}

// Policy describes import/export auto-injection switches. No filter in
// this module reads it; pkg/filters.ESM queues its imports whenever it
// is enabled.
type Policy struct {
	DisableAutoimports bool
	DisableAutoexports bool
}

// Handlers is a per-tag handler table; tags with no entry use the
// caller-supplied default (Base) behavior.
type Handlers map[ast.NodeType]Handler

// Named is satisfied by a concrete filter that wants to identify itself
// (for diagnostics and filter-name option matching).
type Named interface {
	Name() string
}

// composedLayer is one entry in the built dispatch chain: a handler
// table plus the filter it came from (for diagnostics).
type composedLayer struct {
	name     string
	handlers Handlers
}

// composed is the Filter produced by Compose: the single object whose
// dispatch walks upward through every constituent layer, realized as a
// handler-table vector threaded through a cursor index rather than a
// flattened, pre-merged table, so each handler genuinely observes the
// rewrite produced by every layer beneath it, not the original tree.
type composed struct {
	layers []composedLayer
	base   Handler
}

// Base is the default rewrite behavior: reconstruct n with each child
// recursively rewritten by the full composed chain. It is the ultimate
// fallback at the end of every handler's delegation chain.
func Base(chain Filter) Handler {
	return func(n *ast.Node, _ Next) *ast.Node {
		if n == nil {
			return nil
		}
		newChildren := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			if cn, ok := c.(*ast.Node); ok {
				rewritten := chain.Process(cn)
				if rewritten == nil {
					continue
				}
				newChildren = append(newChildren, rewritten)
			} else {
				newChildren = append(newChildren, c)
			}
		}
		return n.With(newChildren...)
	}
}

// Compose builds the composed dispatcher from a list of filters already
// in their final (post-Reorder) order. For a given tag, the entry point
// is the last filter in the list that registers a handler for that tag
// (the rightmost filter is consulted first); that handler's Next
// continuation dispatches to the next filter leftward with a handler
// for the same tag, and so on until Base is reached. A filter
// contributes its per-tag table via the extractor function, so Compose
// itself stays decoupled from any particular Filter implementation's
// internal layout.
func Compose(filters []Filter, extract func(Filter) (string, Handlers)) Filter {
	c := &composed{}
	for _, f := range filters {
		name, h := extract(f)
		c.layers = append(c.layers, composedLayer{name: name, handlers: h})
	}
	c.base = Base(c)
	return c
}

// Process dispatches n's tag through the composed chain, rightmost
// layer first, falling back to Base when no layer registers n's tag.
func (c *composed) Process(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	return c.dispatch(n, len(c.layers)-1)
}

// dispatch searches layers idx downward to 0 for the first one that
// registers n's tag, with Next wired to continue the search from that
// layer's left neighbor. A panic raised by the chosen layer's handler
// is recovered and re-raised as a *diagnostics.FilterFailure naming
// that layer and node, so a single composed chain still attributes a
// failure to the specific filter that raised it, the way the pipeline
// did when it applied each filter as a separate pass.
func (c *composed) dispatch(n *ast.Node, idx int) *ast.Node {
	for i := idx; i >= 0; i-- {
		h, ok := c.layers[i].handlers[n.Type]
		if !ok {
			continue
		}
		name := c.layers[i].name
		j := i - 1
		defer func() {
			if r := recover(); r != nil {
				if _, already := r.(*diagnostics.FilterFailure); already {
					panic(r)
				}
				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("%v", r)
				}
				panic(&diagnostics.FilterFailure{Filter: name, Node: n, Cause: cause})
			}
		}()
		return h(n, func(m *ast.Node) *ast.Node {
			if m == nil {
				return nil
			}
			return c.dispatch(m, j)
		})
	}
	return c.base(n, nil)
}

// Reorder applies every filter's optional Reorder hint to the list
// until a fixpoint is reached, capped to avoid an infinite permutation
// loop between two filters that each insist on preceding the other.
func Reorder(filters []Filter) []Filter {
	const maxIterations = 5
	cur := append([]Filter{}, filters...)
	for i := 0; i < maxIterations; i++ {
		changed := false
		for _, f := range cur {
			if r, ok := f.(Reorderer); ok {
				next := r.Reorder(cur)
				if !sameOrder(cur, next) {
					cur = next
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return cur
}

func sameOrder(a, b []Filter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CollectPrepends gathers every filter's Prepend() output, in filter
// list order, for the pipeline to splice ahead of the root.
func CollectPrepends(filters []Filter) []*ast.Node {
	var out []*ast.Node
	for _, f := range filters {
		if p, ok := f.(Prepender); ok {
			out = append(out, p.Prepend()...)
		}
	}
	return out
}
