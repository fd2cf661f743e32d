// Package loader is the minimal, non-retrying source loader used by
// cmd/ruby2gojs -- the "direct" entry point that wires the pipeline
// without pkg/runner's fuller orchestration, mirroring the teacher's
// own internal/loader.LoadPackages minimal counterpart to
// pkg/loader.LoadPackages.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rubyjs/ruby2go/pkg/ast"
)

// Load reads every ".rb" file directly inside dir (no recursion, no
// glob retry -- callers wanting that reach for pkg/loader.Load
// instead) into named source buffers.
func Load(dir string) (map[string]*ast.SourceBuffer, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", dir, err)
	}
	out := map[string]*ast.SourceBuffer{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".rb") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		out[path] = &ast.SourceBuffer{Name: path, Source: string(data), ModTime: info.ModTime()}
	}
	return out, nil
}
