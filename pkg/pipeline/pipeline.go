// Package pipeline orchestrates one compile run end to end (spec.md
// §4.3 "Pipeline algorithm", §6.1 Core API): reorder the filter set to
// a fixpoint, apply every filter in order, reassociate comments against
// the rewritten tree, assemble the prepend list, then hand the result
// to the converter.
package pipeline

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/diagnostics"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/convert"
	"github.com/rubyjs/ruby2go/pkg/filter"
	"github.com/rubyjs/ruby2go/pkg/filters"
	"github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/namespace"
	"github.com/rubyjs/ruby2go/pkg/report"
	"github.com/rubyjs/ruby2go/pkg/sourcemap"
)

// Pipeline is one compile run's configuration: the filter set (already
// built from Options.Filters by the caller), the resolved Options, and
// the shared namespace tracker. A Pipeline is not reused across
// concurrent compiles; callers construct a fresh one per Run the same
// way a fresh Converter is built per spec.md §5.
type Pipeline struct {
	Filters  []filter.Filter
	Options  config.Options
	NS       *namespace.Namespace
	Reporter *report.Reporter
}

// Result is the public §6.1 Result: the emitted JS source, the
// post-filter AST, per-file mtimes surfaced from the loader, and the
// accumulated source map.
type Result struct {
	Code       string
	AST        *ast.Node
	Timestamps map[string]time.Time
	Map        *sourcemap.Builder
}

// Run implements the six-step algorithm of spec.md §4.3: fixpoint
// Reorder, apply every filter, Reassociate, prepend-list assembly, then
// Converter.Convert. No partial rewrite is ever retained: a filter
// failure aborts the run and the error carries the failing node's
// location, per §4.3 "Failure semantics".
func (p *Pipeline) Run(root *ast.Node, comments []ast.Comment) (*Result, error) {
	if root == nil {
		return nil, &diagnostics.ConfigError{Option: "root", Reason: "nil AST passed to pipeline.Run"}
	}

	ordered := filter.Reorder(p.Filters)

	chain := filters.ComposeAll(ordered)
	rewritten, err := applyFilter(chain, root)
	if err != nil {
		return nil, err
	}
	if p.Reporter != nil {
		p.Reporter.AddFiltersApplied(len(ordered))
		for i := 0; i < countTemplateErrors(rewritten); i++ {
			p.Reporter.IncWarnings()
		}
	}

	cm := ast.NewCommentMap(comments)
	cm.Reassociate(rewritten)

	prepends := dedupeByIdentity(filter.CollectPrepends(ordered))
	finalRoot := rewritten
	if len(prepends) > 0 {
		wrapped := ast.New(ast.TypeBegin, append(append([]any{}, toAny(prepends)...), finalRoot)...)
		cm.SetEmpty(wrapped)
		finalRoot = wrapped
	}

	conv := convert.New(p.Options, p.NS, cm)
	code, err := conv.Convert(finalRoot)
	if err != nil {
		return nil, err
	}

	return &Result{
		Code:       code,
		AST:        finalRoot,
		Timestamps: p.fileTimestamps(),
		Map:        conv.Map,
	}, nil
}

// fileTimestamps captures p.Options.File's on-disk mtime, the way
// pkg/loader's Load captures each SourceBuffer.ModTime, so a caller
// compiling straight from a file path (pkg/runner, cmd/ruby2gojs) gets
// it surfaced on Result without passing it through Run's signature.
// A source that is not a real file on disk (an "-ast-sexp" literal, a
// test snippet) simply yields no entry -- mtimes are "if known".
func (p *Pipeline) fileTimestamps() map[string]time.Time {
	if p.Options.File == "" {
		return nil
	}
	info, err := os.Stat(p.Options.File)
	if err != nil {
		return nil
	}
	return map[string]time.Time{p.Options.File: info.ModTime()}
}

// applyFilter runs f's Process over n, converting a panic raised
// during the rewrite into a located diagnostics.FilterFailure instead
// of propagating a bare runtime panic out of the pipeline. f is
// normally the single composed chain built by filters.ComposeAll, in
// which case composed.dispatch has already attributed the panic to its
// originating layer and re-raised it as a *diagnostics.FilterFailure;
// that value is returned as-is rather than re-wrapped under f's own
// name (which would just be "unknown", the composed chain not
// implementing filter.Named).
func applyFilter(f filter.Filter, n *ast.Node) (result *ast.Node, err error) {
	name := "unknown"
	if named, ok := f.(filter.Named); ok {
		name = named.Name()
	}
	defer func() {
		if r := recover(); r != nil {
			if ff, ok := r.(*diagnostics.FilterFailure); ok {
				err = ff
				return
			}
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &diagnostics.FilterFailure{Filter: name, Node: n, Cause: cause}
		}
	}()
	result = f.Process(n)
	return result, nil
}

// countTemplateErrors walks rewritten counting xnode leaves the
// Template filter produced for a failing interpolation (see
// filters.TemplateErrorPrefix): a template-compile failure is a
// reportable, non-fatal condition -- the compile still succeeds, with
// the bad snippet surfaced verbatim in the output -- rather than a
// FilterFailure, so it is surfaced via Reporter.IncWarnings instead of
// aborting the run.
func countTemplateErrors(n *ast.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Type == ast.TypeXnode && strings.HasPrefix(n.StrChild(0), filters.TemplateErrorPrefix) {
		count++
	}
	for _, c := range n.Children {
		if cn, ok := c.(*ast.Node); ok {
			count += countTemplateErrors(cn)
		}
	}
	return count
}

// dedupeByIdentity drops a node already seen by pointer identity,
// preserving first-seen (imports-first, stable) order.
func dedupeByIdentity(nodes []*ast.Node) []*ast.Node {
	seen := map[*ast.Node]bool{}
	var out []*ast.Node
	for _, n := range nodes {
		if n == nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func toAny(nodes []*ast.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// Convert is the §6.1 Core API one-shot entry point: parse source with
// p, run it through the filter chain built from opts, and return the
// compiled Result.
func Convert(source string, opts config.Options, p loader.Parser) (*Result, error) {
	root, comments, err := Parse(source, opts, p)
	if err != nil {
		return nil, err
	}
	fs, err := BuildFilters(opts, p)
	if err != nil {
		return nil, err
	}
	pl := &Pipeline{
		Filters: fs,
		Options: opts,
		NS:      namespace.New(),
	}
	return pl.Run(root, comments)
}

// ConvertNode is the §6.1 Core API entry point for a caller that already
// holds a parsed *ast.Node instead of source text -- the CLI's
// "-ast-json" ingestion flag (SPEC_FULL.md §15), unmarshaled straight
// from JSON rather than run through a loader.Parser. p is still needed
// to build the filter set (Template's Compile callback recompiles
// interpolated snippets via the same Parser a source-text compile
// would use).
func ConvertNode(root *ast.Node, opts config.Options, p loader.Parser) (*Result, error) {
	fs, err := BuildFilters(opts, p)
	if err != nil {
		return nil, err
	}
	pl := &Pipeline{
		Filters: fs,
		Options: opts,
		NS:      namespace.New(),
	}
	return pl.Run(root, nil)
}

// Parse is the §6.1 Core API parse step: delegates to the injected
// loader.Parser, the external-collaborator boundary of §6.3, then
// re-raises a parser error unchanged wrapped as diagnostics.SyntaxError
// per §7.
func Parse(source string, opts config.Options, p loader.Parser) (*ast.Node, []ast.Comment, error) {
	root, comments, err := p.Parse(source, opts.File)
	if err != nil {
		return nil, nil, &diagnostics.SyntaxError{Cause: err}
	}
	return root, comments, nil
}
