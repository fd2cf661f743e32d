// Package runner implements the batch compile orchestration used by the
// root CLI entry point (SPEC_FULL.md §15 "Batch/directory compile mode"):
// collect every Ruby source file under a directory tree, run each through
// pkg/pipeline, and either write the compiled JavaScript alongside the
// source or preview it as a unified diff.
package runner

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/rubyjs/ruby2go/internal/config"
	"github.com/rubyjs/ruby2go/internal/files"
	"github.com/rubyjs/ruby2go/pkg/loader"
	"github.com/rubyjs/ruby2go/pkg/pipeline"
	"github.com/rubyjs/ruby2go/pkg/report"
)

// Options configures one batch compile run.
type Options struct {
	Dir         string
	ExcludeGlob []string
	DryRun      bool
	Parser      loader.Parser
	Base        config.Options
	Reporter    *report.Reporter
}

// Run collects every ".rb" file under opts.Dir (skipping opts.ExcludeGlob
// matches), compiles each through pkg/pipeline using opts.Base as the
// shared option set, and either writes the result as an adjacent ".js"
// file or, under opts.DryRun, prints a unified diff of what would be
// written -- the same dry-run-preview-over-write-to-disk branch as the
// teacher's own Run, grounded on its PrintDiffs/Save split.
func Run(opts Options) error {
	if opts.Reporter == nil {
		opts.Reporter = report.New()
	}
	if opts.Parser == nil {
		return fmt.Errorf("runner: a loader.Parser is required")
	}

	paths, err := files.CollectRubyFiles(opts.Dir, opts.ExcludeGlob)
	if err != nil {
		return fmt.Errorf("collecting ruby files: %w", err)
	}
	if len(paths) == 0 {
		log.Printf("No .rb files found under %q.", opts.Dir)
		return nil
	}
	sort.Strings(paths)

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}

		fileOpts := opts.Base
		fileOpts.File = path
		fileOpts.Source = string(src)

		res, err := pipeline.Convert(string(src), fileOpts, opts.Parser)
		if err != nil {
			return fmt.Errorf("compiling %q: %w", path, err)
		}
		opts.Reporter.AddFile(path)

		dest := strings.TrimSuffix(path, ".rb") + ".js"
		if opts.DryRun {
			if err := printDiff(dest, res.Code); err != nil {
				return err
			}
			continue
		}
		if err := os.WriteFile(dest, []byte(res.Code), 0644); err != nil {
			return fmt.Errorf("writing %q: %w", dest, err)
		}
		log.Printf("compiled %s -> %s", path, dest)
	}

	return nil
}

// printDiff shows what writing want to dest would change, the same
// gotextdiff/myers/span pipeline the teacher's PrintDiffs uses, reading
// the existing file's contents (if any) as the diff's "before" side.
func printDiff(dest, want string) error {
	before := ""
	if existing, err := os.ReadFile(dest); err == nil {
		before = string(existing)
	}
	if before == want {
		return nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(dest), before, want)
	unified := gotextdiff.ToUnified(dest, dest, before, edits)
	fmt.Fprint(os.Stdout, unified)
	return nil
}
