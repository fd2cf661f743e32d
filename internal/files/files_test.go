// Package files provides tests for the file collection utility.
package files

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

// TestCollectRubyFiles tests CollectRubyFiles with various scenarios:
// normal collection, exclusions, and error cases.
func TestCollectRubyFiles(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(dir string) error
		dir          string
		excludeGlobs []string
		want         []string
		wantErr      bool
	}{
		{
			name:  "no files",
			setup: func(dir string) error { return nil },
			want:  nil,
		},
		{
			name: "collect basic ruby files",
			setup: func(dir string) error {
				if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte("puts 1"), 0644); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(dir, "other.rb"), []byte("puts 2"), 0644); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(dir, "main_spec.rb"), []byte("describe 'main'"), 0644); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0644)
			},
			want: []string{"main.rb", "other.rb"},
		},
		{
			name: "exclude specific file",
			setup: func(dir string) error {
				if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte("puts 1"), 0644); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, "other.rb"), []byte("puts 2"), 0644)
			},
			excludeGlobs: []string{"main.rb"},
			want:         []string{"other.rb"},
		},
		{
			name: "exclude directory",
			setup: func(dir string) error {
				if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte("puts 1"), 0644); err != nil {
					return err
				}
				if err := os.Mkdir(filepath.Join(dir, "vendor"), 0755); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, "vendor", "lib.rb"), []byte("puts 3"), 0644)
			},
			excludeGlobs: []string{"vendor"},
			want:         []string{"main.rb"},
		},
		{
			name: "vendored gems skipped without an explicit exclude",
			setup: func(dir string) error {
				if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte("puts 1"), 0644); err != nil {
					return err
				}
				if err := os.MkdirAll(filepath.Join(dir, "vendor", "bundle"), 0755); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(dir, "vendor", "bundle", "gem.rb"), []byte("puts 2"), 0644); err != nil {
					return err
				}
				if err := os.Mkdir(filepath.Join(dir, ".bundle"), 0755); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, ".bundle", "config.rb"), []byte("puts 3"), 0644)
			},
			want: []string{"main.rb"},
		},
		{
			name: "multiple excludes",
			setup: func(dir string) error {
				if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte("puts 1"), 0644); err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(dir, "other.rb"), []byte("puts 2"), 0644); err != nil {
					return err
				}
				if err := os.Mkdir(filepath.Join(dir, "exclude"), 0755); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(dir, "exclude", "excluded.rb"), []byte("puts 4"), 0644)
			},
			excludeGlobs: []string{"other.rb", "exclude"},
			want:         []string{"main.rb"},
		},
		{
			name:    "invalid directory",
			dir:     "/nonexistent/directory",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			dir := tempDir
			if tt.dir != "" {
				dir = tt.dir
			} else if tt.setup != nil {
				if err := tt.setup(tempDir); err != nil {
					t.Fatal(err)
				}
			}

			got, err := CollectRubyFiles(dir, tt.excludeGlobs)
			if (err != nil) != tt.wantErr {
				t.Errorf("CollectRubyFiles() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			var gotBases []string
			for _, p := range got {
				gotBases = append(gotBases, filepath.Base(p))
			}
			sort.Strings(gotBases)
			sort.Strings(tt.want)

			if !reflect.DeepEqual(gotBases, tt.want) {
				t.Errorf("CollectRubyFiles() got = %v, want %v", gotBases, tt.want)
			}
		})
	}
}
