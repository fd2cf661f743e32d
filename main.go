package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/pkg/ast"
	"github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/pipeline"
	"github.com/rubyjs/ruby2go/pkg/report"
	"github.com/rubyjs/ruby2go/pkg/runner"
)

// filterDescriptions is the registered filter table printed by
// -list-filters, grounded on spec.md §4.5's one-line-per-filter summary.
var filterDescriptions = []struct{ Name, Help string }{
	{"autoreturn", "insert an implicit return on a method/block's tail expression"},
	{"functions", "rename a curated Enumerable/Array vocabulary to its JS idiom"},
	{"camelCase", "translate snake_case identifiers to camelCase"},
	{"esm", "lower require/require_relative and top-level classes to import/export"},
	{"strict", "prepend \"use strict\"; to the compiled output"},
	{"react", "lower a recognized hash-props call shape to JSX-style output"},
	{"template", "split and compile a Haml/ERB-style template tail"},
}

// main is the CLI entry point. It executes the batch compiler and
// handles fatal errors by exiting with status 1.
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run parses arguments and executes the batch compiler.
//
// args: Command line arguments.
// stdout: Writer for logs and output.
func run(args []string, stdout io.Writer) error {
	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name("ruby2gojs"),
		kong.Description("Compile a directory of Ruby sources to JavaScript."),
		kong.Writers(stdout, io.Discard),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return err
	}

	if _, err = parser.Parse(args); err != nil {
		return err
	}

	log.SetOutput(stdout)

	if cfg.ListFilters {
		for _, f := range filterDescriptions {
			fmt.Fprintf(stdout, "%-10s %s\n", f.Name, f.Help)
		}
		return nil
	}

	opts, err := toOptions(cfg).Validate()
	if err != nil {
		return err
	}

	p := loader.Parser(loader.StubParser{})

	if cfg.AstSexp != "" {
		opts.File = "<ast-sexp>"
		opts.Source = cfg.AstSexp
		res, err := pipeline.Convert(cfg.AstSexp, opts, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, res.Code)
		return nil
	}

	if cfg.AstJson != "" {
		var root ast.Node
		if err := json.Unmarshal([]byte(cfg.AstJson), &root); err != nil {
			return fmt.Errorf("parsing -ast-json: %w", err)
		}
		opts.File = "<ast-json>"
		opts.Source = cfg.AstJson
		res, err := pipeline.ConvertNode(&root, opts, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, res.Code)
		return nil
	}

	log.Printf("Compiling %q (eslevel=%d, module=%s, filters=%v)", cfg.Dir, opts.ESLevel, opts.Module, opts.Filters)

	return runner.Run(runner.Options{
		Dir:         cfg.Dir,
		ExcludeGlob: cfg.ExcludeGlob,
		DryRun:      cfg.DryRun,
		Parser:      p,
		Base:        opts,
		Reporter:    report.New(),
	})
}

// toOptions maps the CLI Config onto internal/config.Options, the same
// one-field-per-flag mapping the teacher's run() does onto runner.Options.
func toOptions(cfg Config) config.Options {
	return config.Options{
		ESLevel:     cfg.ESLevel,
		Strict:      cfg.Strict,
		Comparison:  config.Comparison(cfg.Comparison),
		Or:          config.OrMode(cfg.Or),
		Truthy:      config.TruthyMode(cfg.Truthy),
		Module:      config.ModuleMode(cfg.Module),
		Width:       cfg.Width,
		Filters:     cfg.Filters,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		IncludeOnly: cfg.IncludeOnly,
	}
}
