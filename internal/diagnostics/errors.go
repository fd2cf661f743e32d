// Package diagnostics implements the error taxonomy of spec §7. The
// core never swallows errors; every error type here carries a location
// whenever one is available and supports errors.As; SyntaxError and
// FilterFailure also expose their cause through Unwrap.
package diagnostics

import (
	"fmt"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

// SyntaxError wraps a diagnostic raised by the external parser,
// unchanged, per spec §7 ("The core re-raises unchanged").
type SyntaxError struct {
	Cause   error
	Loc     *ast.Location
	Caret   string // rendered caret pointing at the offending column, if available
}

func (e *SyntaxError) Error() string {
	if e.Loc != nil && e.Loc.Buffer != nil {
		return fmt.Sprintf("%s:%d: syntax error: %v", e.Loc.Buffer.Name, e.Loc.Line, e.Cause)
	}
	return fmt.Sprintf("syntax error: %v", e.Cause)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// UnknownNode is raised when a converter or filter handler is absent
// for an encountered tag. Fatal: carries file:line:column.
type UnknownNode struct {
	Type ast.NodeType
	Loc  *ast.Location
}

func (e *UnknownNode) Error() string {
	if e.Loc != nil && e.Loc.Buffer != nil {
		return fmt.Sprintf("%s:%d: no handler registered for node type %q", e.Loc.Buffer.Name, e.Loc.Line, e.Type)
	}
	return fmt.Sprintf("no handler registered for node type %q", e.Type)
}

// IllegalControl is raised by the converter's scope state machine
// (spec §4.4.1) when break/next/return/yield appears where it is not
// legal: break/next outside a loop or block, return outside a
// method/block, and so on.
type IllegalControl struct {
	Keyword string // "break", "next", "return", "yield"
	State   string // the scope state the keyword was encountered in
	Loc     *ast.Location
}

func (e *IllegalControl) Error() string {
	msg := fmt.Sprintf("%q is not legal in %s scope", e.Keyword, e.State)
	if e.Loc != nil && e.Loc.Buffer != nil {
		return fmt.Sprintf("%s:%d: %s", e.Loc.Buffer.Name, e.Loc.Line, msg)
	}
	return msg
}

// FilterFailure wraps an error raised by a filter during rewrite,
// propagated with the failing node's location and not recovered (spec
// §4.3 "Failure semantics").
type FilterFailure struct {
	Filter string
	Node   *ast.Node
	Cause  error
}

func (e *FilterFailure) Error() string {
	loc := ""
	if e.Node != nil && e.Node.Loc != nil && e.Node.Loc.Buffer != nil {
		loc = fmt.Sprintf("%s:%d: ", e.Node.Loc.Buffer.Name, e.Node.Loc.Line)
	}
	return fmt.Sprintf("%sfilter %q failed: %v", loc, e.Filter, e.Cause)
}

func (e *FilterFailure) Unwrap() error { return e.Cause }

// ConfigError is raised for a malformed option (e.g. an unrecognized
// filter name). Surfaced to the caller; no partial compile is retained.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Option, e.Reason)
}
