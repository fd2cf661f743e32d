package pipeline

import (
	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/diagnostics"
	"github.com/rubyjs/ruby2go/pkg/convert"
	"github.com/rubyjs/ruby2go/pkg/filter"
	"github.com/rubyjs/ruby2go/pkg/filters"
	"github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/namespace"
)

// BuildFilters turns the ordered filter-identity list of opts.Filters
// (spec.md §6.2 "filters") into concrete pkg/filters instances, each
// configured from the rest of Options, mirroring the minimally
// conforming filter set named in spec.md §4.5. p is used to wire
// Template's recursive Compile callback without pkg/filters importing
// pkg/pipeline (which would be a cycle, since pipeline already imports
// pkg/filters to build this list). A listed "strict" always prepends
// "use strict"; opts.Strict adds the strict filter when the list does
// not name it.
func BuildFilters(opts config.Options, p loader.Parser) ([]filter.Filter, error) {
	allow := toSet(opts.IncludeOnly)
	deny := toSet(opts.Exclude)

	out := make([]filter.Filter, 0, len(opts.Filters)+1)
	strictListed := false
	for _, name := range opts.Filters {
		switch name {
		case "autoreturn":
			out = append(out, &filters.Autoreturn{})
		case "functions":
			out = append(out, &filters.Functions{Allow: allow, Deny: deny})
		case "camelCase":
			out = append(out, &filters.CamelCase{})
		case "esm":
			out = append(out, &filters.ESM{Disabled: opts.Module == config.ModuleCJS})
		case "strict":
			strictListed = true
			out = append(out, &filters.Strict{Enabled: true})
		case "react":
			out = append(out, &filters.React{Enabled: true})
		case "template":
			out = append(out, &filters.Template{Compile: compileSnippet(opts, p)})
		default:
			return nil, &diagnostics.ConfigError{Option: "filters", Reason: "unrecognized filter name \"" + name + "\""}
		}
	}
	if opts.Strict && !strictListed {
		out = append(out, &filters.Strict{Enabled: true})
	}
	return out, nil
}

// toSet turns a name list into a membership set, nil when the list is
// empty so Functions.allowed's nil-means-"no restriction" check holds.
func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// compileSnippet builds the Template filter's Compile callback: parse
// the interpolated Ruby expression with the same loader.Parser the
// outer compile used, then emit it directly through a fresh Converter
// (a bare expression snippet needs no filter pass of its own -- it is
// already inside the already-filtered template tail).
func compileSnippet(opts config.Options, p loader.Parser) func(string) (string, error) {
	return func(src string) (string, error) {
		root, _, err := p.Parse(src, opts.File)
		if err != nil {
			return "", &diagnostics.SyntaxError{Cause: err}
		}
		conv := convert.New(opts, namespace.New(), nil)
		return conv.Expr(root)
	}
}
