package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/diagnostics"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/filter"
	"github.com/rubyjs/ruby2go/pkg/filters"
	"github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/namespace"
	"github.com/rubyjs/ruby2go/pkg/report"
)

func TestConvertPutsSend(t *testing.T) {
	opts := config.Defaults()
	opts.File = "main.rb"
	opts.Source = `puts "hi"`
	opts.Filters = []string{"strict"}

	res, err := Convert(`(send nil puts (str "hi"))`, opts, loader.StubParser{})
	if err != nil {
		t.Fatalf("Convert returned unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "use strict") {
		t.Errorf("expected the strict prepend in the emitted code, got %q", res.Code)
	}
	if !strings.Contains(res.Code, "console.log") {
		t.Errorf("expected puts to lower to console.log, got %q", res.Code)
	}
}

func TestBuildFiltersUnknownName(t *testing.T) {
	opts := config.Defaults()
	opts.Filters = []string{"not-a-real-filter"}

	_, err := BuildFilters(opts, loader.StubParser{})
	if err == nil {
		t.Fatal("expected an error for an unrecognized filter name")
	}
}

func TestPipelineRunNilRoot(t *testing.T) {
	p := &Pipeline{Options: config.Defaults(), NS: namespace.New()}
	_, err := p.Run(nil, nil)
	if err == nil {
		t.Fatal("expected an error for a nil AST")
	}
}

func TestPipelineRunIncrementsReporter(t *testing.T) {
	opts := config.Defaults()
	opts.File = "main.rb"
	opts.Filters = []string{"strict", "camelCase"}

	fs, err := BuildFilters(opts, loader.StubParser{})
	if err != nil {
		t.Fatalf("BuildFilters returned unexpected error: %v", err)
	}

	rep := report.New()
	p := &Pipeline{Filters: fs, Options: opts, NS: namespace.New(), Reporter: rep}

	root := ast.New(ast.TypeLvasgn, "my_var", ast.New(ast.TypeInt, int64(1)))
	res, err := p.Run(root, nil)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "myVar") {
		t.Errorf("expected camelCase to rename my_var to myVar, got %q", res.Code)
	}

	data := rep.GetData()
	if data.FiltersApplied != len(fs) {
		t.Errorf("expected FiltersApplied == %d, got %d", len(fs), data.FiltersApplied)
	}
}

// TestPipelineRunCountsTemplateErrorsAsWarnings verifies a failing
// template interpolation is surfaced via Reporter.IncWarnings rather
// than aborting the run: the compile still succeeds, with the bad
// snippet left in the output as a comment.
func TestPipelineRunCountsTemplateErrorsAsWarnings(t *testing.T) {
	tmpl := &filters.Template{
		Compile: func(src string) (string, error) {
			return "", errors.New("unparseable snippet")
		},
	}
	rep := report.New()
	p := &Pipeline{
		Filters:  []filter.Filter{tmpl},
		Options:  config.Defaults(),
		NS:       namespace.New(),
		Reporter: rep,
	}

	root := ast.New(filters.TemplateTail, "<%= bad %>")
	res, err := p.Run(root, nil)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "template error") {
		t.Errorf("expected the failing interpolation surfaced in the output, got %q", res.Code)
	}
	if got := rep.GetData().Warnings; got != 1 {
		t.Errorf("expected Warnings == 1, got %d", got)
	}
}

// TestApplyFilterRecoversPanic exercises applyFilter's own panic-to-error
// recovery directly: Pipeline.Run always hands it the single chain built
// by filters.ComposeAll, but applyFilter itself recovers a panic from
// whatever filter.Filter it is given, located against the node being
// rewritten.
func TestApplyFilterRecoversPanic(t *testing.T) {
	root := ast.New(ast.TypeInt, int64(1))
	_, err := applyFilter(filterThatPanics{}, root)
	if err == nil {
		t.Fatal("expected a FilterFailure error")
	}
	var ff *diagnostics.FilterFailure
	if !errors.As(err, &ff) {
		t.Fatalf("expected a *diagnostics.FilterFailure, got %T: %v", err, err)
	}
}

// TestApplyFilterPassesThroughAlreadyLocatedFailure verifies that a
// panic already carrying a *diagnostics.FilterFailure (as composed's
// per-layer recovery raises) is returned as-is rather than re-wrapped
// under the outer filter's own name.
func TestApplyFilterPassesThroughAlreadyLocatedFailure(t *testing.T) {
	root := ast.New(ast.TypeInt, int64(1))
	inner := &diagnostics.FilterFailure{Filter: "camelCase", Node: root, Cause: errors.New("boom")}
	_, err := applyFilter(filterThatRepanics{inner}, root)
	var ff *diagnostics.FilterFailure
	if !errors.As(err, &ff) {
		t.Fatalf("expected a *diagnostics.FilterFailure, got %T: %v", err, err)
	}
	if ff.Filter != "camelCase" {
		t.Errorf("expected the original layer name %q to survive, got %q", "camelCase", ff.Filter)
	}
}

// filterThatPanics is a minimal filter.Filter test double exercising
// applyFilter's panic-to-error recovery.
type filterThatPanics struct{}

func (filterThatPanics) Process(n *ast.Node) *ast.Node {
	panic("boom")
}

// filterThatRepanics panics with a pre-built *diagnostics.FilterFailure,
// the shape composed.dispatch raises once it has attributed a panic to
// its originating layer.
type filterThatRepanics struct {
	failure *diagnostics.FilterFailure
}

func (f filterThatRepanics) Process(n *ast.Node) *ast.Node {
	panic(f.failure)
}
