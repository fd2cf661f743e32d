package convert

import "github.com/rubyjs/ruby2go/internal/diagnostics"

// VarState tracks a local variable's declaration status within a Scope:
// Pending means assigned but not yet declared at the scope's top;
// Declared means the hoisted declaration has already been emitted.
type VarState int

const (
	Pending VarState = iota
	Declared
)

// Scope is one lexical scope on the converter's scope stack (spec §4.4
// "scope"). Hoisting: a variable first seen via assignment is recorded
// Pending; at scope exit every still-Pending variable gets a single
// `let`/`var` declaration line inserted at the scope's top, in first-
// seen order. Jscope (Hoist == false) never hoists: a Pending variable
// simply leaks to the enclosing scope's responsibility instead.
type Scope struct {
	Vars  map[string]VarState
	order []string
	Hoist bool
	State State
}

// State is the spec §4.4.1 scope state machine's state.
type State int

const (
	StateOuter State = iota
	StateClassBody
	StateMethodBody
	StateBlockBody
)

func (s State) String() string {
	switch s {
	case StateClassBody:
		return "class-body"
	case StateMethodBody:
		return "method-body"
	case StateBlockBody:
		return "block-body"
	default:
		return "outer"
	}
}

// newScope constructs a scope in the given state.
func newScope(hoist bool, state State) *Scope {
	return &Scope{Vars: map[string]VarState{}, Hoist: hoist, State: state}
}

// markAssigned records name as having been assigned in this scope,
// Pending on first sight.
func (s *Scope) markAssigned(name string) {
	if _, ok := s.Vars[name]; !ok {
		s.Vars[name] = Pending
		s.order = append(s.order, name)
	}
}

// markDeclared promotes name to Declared (used once its hoisted
// declaration has been emitted).
func (s *Scope) markDeclared(name string) {
	s.Vars[name] = Declared
}

// pendingInOrder returns the names still Pending, in first-seen order.
func (s *Scope) pendingInOrder() []string {
	var out []string
	for _, name := range s.order {
		if s.Vars[name] == Pending {
			out = append(out, name)
		}
	}
	return out
}

// pushScope enters a new lexical scope and returns it; pair with
// popScope.
func (c *Converter) pushScope(hoist bool, state State) *Scope {
	sc := newScope(hoist, state)
	c.scopes = append(c.scopes, sc)
	return sc
}

// popScope leaves the innermost scope. If it hoists, the names of its
// still-pending variables are returned in first-seen order for the
// caller to declare at the scope's top; a non-hoisting scope instead leaks its
// pending variables into the new innermost scope.
func (c *Converter) popScope() []string {
	n := len(c.scopes)
	sc := c.scopes[n-1]
	c.scopes = c.scopes[:n-1]
	pending := sc.pendingInOrder()
	if !sc.Hoist && len(c.scopes) > 0 && len(pending) > 0 {
		outer := c.scopes[len(c.scopes)-1]
		for _, name := range pending {
			outer.markAssigned(name)
		}
		return nil
	}
	return pending
}

// currentScope returns the innermost scope.
func (c *Converter) currentScope() *Scope {
	return c.scopes[len(c.scopes)-1]
}

// declKeyword returns the hoisted-declaration keyword for the
// configured ES level: `let` at ES2015+, `var` at ES5.
func (c *Converter) declKeyword() string {
	if c.Options.SupportsES2015() {
		return "let"
	}
	return "var"
}

// legalFor reports whether keyword is legal given the innermost state
// stack, searching outward the way break/continue search out to the
// nearest enclosing loop/block/method in the source languages both Ruby
// and JS share.
func (c *Converter) legalFor(keyword string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		switch c.scopes[i].State {
		case StateBlockBody:
			return true
		case StateMethodBody:
			if keyword == "return" || keyword == "yield" {
				return true
			}
			if keyword == "break" || keyword == "next" {
				return false
			}
		case StateClassBody:
			return false
		}
	}
	return false
}

// raiseIllegalControl builds the diagnostics error for an illegal
// break/next/return/yield.
func raiseIllegalControl(keyword string, state State) error {
	return &diagnostics.IllegalControl{Keyword: keyword, State: state.String()}
}
