// Package files provides utilities for filesystem traversal and file collection.
package files

import (
	"os"
	"path/filepath"
	"strings"
)

// bundledGemDirs names directories Bundler (Ruby's dependency manager)
// populates with a project's vendored gems -- "vendor/bundle" for
// `bundle install --path vendor/bundle`, ".bundle" for its local config
// and, on some setups, a cached-copy mirror. A .rb file under one of
// these belongs to a fetched dependency, not to the project being
// compiled, so it is always skipped regardless of excludeGlobs, the
// same way go tooling never descends into a module's own vendor/ tree
// when resolving local packages.
var bundledGemDirs = map[string]bool{
	"vendor":  true,
	".bundle": true,
}

// CollectRubyFiles collects every ".rb" source file in the directory tree
// rooted at dir, for the CLI's batch compile mode (SPEC_FULL.md §15). It
// traverses the directory using filepath.WalkDir, skipping directories and
// files that match any of the excludeGlobs patterns via filepath.Match on
// the relative path, plus any directory Bundler would have populated with
// vendored gems (bundledGemDirs) regardless of excludeGlobs. A "_spec.rb"
// suffix is excluded the same way the teacher's Go-specific collector
// excluded "_test.go" -- Ruby's own rspec/minitest convention for a file
// that describes another rather than compiling to a standalone module.
//
// dir: root directory to traverse.
// excludeGlobs: list of glob patterns to match against relative paths for exclusion.
func CollectRubyFiles(dir string, excludeGlobs []string) ([]string, error) {
	var files []string
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(absDir, path)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		if d.IsDir() && bundledGemDirs[d.Name()] {
			return filepath.SkipDir
		}

		matched := false
		for _, glob := range excludeGlobs {
			if match, _ := filepath.Match(glob, rel); match {
				matched = true
				break
			}
		}
		if matched {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, ".rb") && !strings.HasSuffix(name, "_spec.rb") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
