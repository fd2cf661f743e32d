// Package main provides a second, more direct entry point for the
// compiler: it wires pkg/pipeline straight to internal/loader's minimal,
// non-recursive directory scan, without pkg/runner's batch/dry-run
// orchestration layer -- mirroring the teacher's own cmd/autoerr "direct"
// entry point alongside the fuller root main.go.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/loader"
	stubloader "github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/pipeline"
)

// CLI represents the command-line interface for ruby2gojs.
type CLI struct {
	Dir     string   `arg:"" help:"Directory to scan for .rb files (non-recursive)." default:"."`
	ESLevel int      `name:"eslevel" help:"Target ECMAScript level (5, or 2015-2022)." default:"2015"`
	Strict  bool     `name:"strict" help:"Prepend \"use strict\"; to compiled output."`
	Module  string   `name:"module" help:"Emitted module system: esm or cjs." default:"esm"`
	Filters []string `name:"filters" help:"Filter identities to run."`
}

// Run compiles every ".rb" file directly inside cli.Dir and prints each
// file's compiled JavaScript to stdout, prefixed with its source path.
func Run(cli CLI) error {
	buffers, err := loader.Load(cli.Dir)
	if err != nil {
		return fmt.Errorf("loading %q: %w", cli.Dir, err)
	}
	if len(buffers) == 0 {
		return fmt.Errorf("no .rb files found in %s", cli.Dir)
	}

	opts, err := config.Options{
		ESLevel: cli.ESLevel,
		Strict:  cli.Strict,
		Module:  config.ModuleMode(cli.Module),
		Filters: cli.Filters,
	}.Validate()
	if err != nil {
		return err
	}

	p := stubloader.StubParser{}
	for path, buf := range buffers {
		opts.File = path
		opts.Source = buf.Source
		res, err := pipeline.Convert(buf.Source, opts, p)
		if err != nil {
			return fmt.Errorf("compiling %q: %w", path, err)
		}
		fmt.Printf("// %s\n%s\n", path, res.Code)
	}
	return nil
}

// main parses the CLI flags and calls Run.
func main() {
	var cli CLI
	ctx := kong.Parse(&cli)
	if err := Run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
}
