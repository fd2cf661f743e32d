// Package filters holds the concrete, independently-testable Filter
// implementations (spec.md §4.5): one file per filter, each satisfying
// pkg/filter's Filter interface and, where relevant, its optional
// Reorderer/Prepender capabilities.
package filters

import (
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
)

// replaceChild returns a copy of n with the child at idx replaced by v,
// leaving every other child untouched. Out-of-range idx is a no-op.
func replaceChild(n *ast.Node, idx int, v any) *ast.Node {
	if n == nil || idx < 0 || idx >= len(n.Children) {
		return n
	}
	children := append([]any{}, n.Children...)
	children[idx] = v
	return n.With(children...)
}

// snakeToCamel converts snake_case to camelCase, preserving any run of
// leading underscores (Ruby's "private-ish" naming convention) and a
// single trailing `?`/`!` predicate/bang marker verbatim.
func snakeToCamel(s string) string {
	if s == "" {
		return s
	}
	lead := 0
	for lead < len(s) && s[lead] == '_' {
		lead++
	}
	trail := ""
	body := s[lead:]
	if n := len(body); n > 0 && (body[n-1] == '?' || body[n-1] == '!') {
		trail = body[n-1:]
		body = body[:n-1]
	}
	parts := strings.Split(body, "_")
	var out strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			out.WriteString(p)
			continue
		}
		out.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			out.WriteString(p[1:])
		}
	}
	return s[:lead] + out.String() + trail
}

// compose1 builds a standalone single-layer composed chain for f, given
// its name and handler table -- the common Process() implementation
// shared by every filter in this package.
func compose1(f filter.Filter, name string, h filter.Handlers) filter.Filter {
	return filter.Compose([]filter.Filter{f}, func(x filter.Filter) (string, filter.Handlers) {
		return name, h
	})
}

// handlerSource is satisfied by every concrete filter in this package:
// a Name and the per-tag handler table Process composes over itself.
// Kept unexported and package-local so handlers() itself stays
// unexported on every filter type -- ComposeAll is the one place
// outside a filter's own Process method allowed to see its table.
type handlerSource interface {
	filter.Filter
	Name() string
	handlers() filter.Handlers
}

// ComposeAll builds the single cross-filter dispatch chain the
// pipeline runs once per compile, in place of applying each filter as
// an independent full-tree pass: filters in the order given contribute
// their handler tables to one filter.Compose call, so a handler
// calling "the next one up" sees the rewrite produced by every filter
// beneath it in the list, not the original tree (spec.md §4.3's
// "do not flatten the stack upfront"). filters not satisfying
// handlerSource (none currently -- every concrete type in this package
// does) are skipped rather than panicking, so a future filter added
// without a handlers() method degrades to a no-op layer instead of
// crashing the compile.
func ComposeAll(fs []filter.Filter) filter.Filter {
	var sources []filter.Filter
	names := map[filter.Filter]string{}
	tables := map[filter.Filter]filter.Handlers{}
	for _, f := range fs {
		hs, ok := f.(handlerSource)
		if !ok {
			continue
		}
		sources = append(sources, f)
		names[f] = hs.Name()
		tables[f] = hs.handlers()
	}
	return filter.Compose(sources, func(f filter.Filter) (string, filter.Handlers) {
		return names[f], tables[f]
	})
}
