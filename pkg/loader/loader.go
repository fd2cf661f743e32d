// Package loader defines the external-parser boundary of spec.md §6.3
// and a filesystem loader that resolves a list of glob patterns into
// named source buffers, grounded on the teacher's own
// pkg/loader.LoadPackages "smart retry" shape: when nothing matched and
// one of the patterns names the directory itself ("", "." or "./"), a
// broader recursive retry follows, generalized here from Go package
// patterns to plain filesystem globs since this core has no notion of
// a Go package.
package loader

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

// Parser is the minimal interface the core requires from an external
// Ruby parser: turn source text into an AST plus its raw comment list.
// Nothing in this module depends on a concrete Ruby grammar; a Parser
// implementation lives entirely outside this module's scope (spec.md
// §2 "Non-goals").
type Parser interface {
	Parse(source, filename string) (*ast.Node, []ast.Comment, error)
}

// Load resolves patterns (e.g. "*.rb", "lib/models.rb") against dir
// into named source buffers, capturing each file's mtime (surfaced
// later as pipeline.Result.Timestamps). If nothing matched and one of
// the patterns is "", "." or "./", Load retries with a recursive
// directory walk collecting every ".rb" file beneath dir; any other
// pattern that matches nothing yields an empty result with no retry
// -- the same "smart module recursion" shape
// as the teacher's LoadPackages, re-purposed from a Go build-pattern
// retry to a plain-glob retry.
func Load(patterns []string, dir string) (map[string]*ast.SourceBuffer, error) {
	out, err := load(patterns, dir)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && shouldRetryRecursive(patterns) {
		log.Printf("[INFO] no files matched %v in %q; retrying with a recursive scan", patterns, dir)
		recursive, err := walkRuby(dir)
		if err != nil {
			return nil, err
		}
		out = recursive
	}
	return out, nil
}

func load(patterns []string, dir string) (map[string]*ast.SourceBuffer, error) {
	out := map[string]*ast.SourceBuffer{}
	for _, pat := range patterns {
		full := pat
		if !filepath.IsAbs(pat) {
			full = filepath.Join(dir, pat)
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if err := addFile(out, m); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// shouldRetryRecursive mirrors the teacher's hasDotPattern check: a
// bare "." (or empty) pattern is the signal that the caller meant "this
// whole directory", not a literal single file.
func shouldRetryRecursive(patterns []string) bool {
	for _, p := range patterns {
		if p == "" || p == "." || p == "./" {
			return true
		}
	}
	return false
}

// walkRuby recursively collects every ".rb" file beneath dir.
func walkRuby(dir string) (map[string]*ast.SourceBuffer, error) {
	out := map[string]*ast.SourceBuffer{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".rb") {
			return nil
		}
		return addFile(out, path)
	})
	if err != nil {
		return nil, fmt.Errorf("recursive scan of %q failed: %w", dir, err)
	}
	return out, nil
}

func addFile(out map[string]*ast.SourceBuffer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %q: %w", path, err)
	}
	out[path] = &ast.SourceBuffer{Name: path, Source: string(data), ModTime: info.ModTime()}
	return nil
}
