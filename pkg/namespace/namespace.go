// Package namespace tracks nested class/module identities across a
// single compile, detecting "reopened" classes and recording the member
// set known for each resolved path so the converter can decide when a
// reference needs a `this.` prefix or a fresh declaration.
package namespace

import (
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

// MemberSet is the known member inventory for one resolved scope path.
type MemberSet struct {
	Methods map[string]bool
	IVars   map[string]bool
}

func newMemberSet() MemberSet {
	return MemberSet{Methods: map[string]bool{}, IVars: map[string]bool{}}
}

func (m MemberSet) merge(o MemberSet) MemberSet {
	for k := range o.Methods {
		m.Methods[k] = true
	}
	for k := range o.IVars {
		m.IVars[k] = true
	}
	return m
}

// Namespace is a stack of nested class/module scope frames, each a
// resolved dotted path, plus a side map keyed by full path carrying the
// known member set seen so far. A Namespace is owned by a single
// compile; it is not safe for concurrent use by multiple compiles.
type Namespace struct {
	stack   [][]string
	members map[string]MemberSet
}

// New returns an empty namespace (the "outer" scope).
func New() *Namespace {
	return &Namespace{members: map[string]MemberSet{}}
}

func pathKey(path []string) string { return strings.Join(path, "::") }

// ResolvePath walks a chain of `const` nodes rooted at ast.Nil and
// returns the flattened dotted path, per spec §4.1 ("A::B::C" is
// const(const(const(nil, A), B), C) -> resolution produces [A, B, C]).
func ResolvePath(constRef *ast.Node) []string {
	var parts []string
	n := constRef
	for n != nil && n.Type == ast.TypeConst {
		parts = append(parts, n.StrChild(1))
		n = n.NodeChild(0)
	}
	// reverse
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// active returns the fully-qualified path of the current scope.
func (ns *Namespace) active() []string {
	var full []string
	for _, frame := range ns.stack {
		full = append(full, frame...)
	}
	return full
}

// Enter pushes the resolved relative path (relative to the current
// scope) onto the active stack. If the resulting fully-qualified path
// was already defined earlier in this compile, Enter returns the prior
// member set and reopened=true -- the sole "class/module is being
// reopened" signal (spec §3.3, §4.1).
func (ns *Namespace) Enter(relative []string) (MemberSet, bool) {
	ns.stack = append(ns.stack, relative)
	key := pathKey(ns.active())
	prior, ok := ns.members[key]
	if !ok {
		prior = newMemberSet()
		ns.members[key] = prior
	}
	return prior, ok
}

// Leave pops one scope frame.
func (ns *Namespace) Leave() {
	if len(ns.stack) == 0 {
		return
	}
	ns.stack = ns.stack[:len(ns.stack)-1]
}

// Define merges the given members into the current scope's member set.
func (ns *Namespace) Define(methods, ivars []string) {
	key := pathKey(ns.active())
	ms, ok := ns.members[key]
	if !ok {
		ms = newMemberSet()
	}
	for _, m := range methods {
		ms.Methods[m] = true
	}
	for _, v := range ivars {
		ms.IVars[v] = true
	}
	ns.members[key] = ms
}

// Find searches outward from the deepest enclosing frame, repeatedly
// popping one element of the active path and looking up
// remaining+name. The first hit wins. All operations are total: a miss
// returns an empty (non-nil) MemberSet rather than an error, keeping
// callers branchless per spec §4.1.
func (ns *Namespace) Find(name []string) MemberSet {
	active := ns.active()
	for i := len(active); i >= 0; i-- {
		candidate := append(append([]string{}, active[:i]...), name...)
		if ms, ok := ns.members[pathKey(candidate)]; ok {
			return ms
		}
	}
	return newMemberSet()
}

// Own returns the member set of the current scope, or of a named
// subscope of it when sub is non-empty.
func (ns *Namespace) Own(sub ...string) MemberSet {
	key := pathKey(append(append([]string{}, ns.active()...), sub...))
	if ms, ok := ns.members[key]; ok {
		return ms
	}
	return newMemberSet()
}

// ActivePath exposes the current fully-qualified path, primarily for
// the converter's "this is a reopened class" decision and for tests.
func (ns *Namespace) ActivePath() []string {
	return append([]string{}, ns.active()...)
}
