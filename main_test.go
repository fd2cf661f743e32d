package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCompilesDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte(`(send nil puts (str "hi"))`), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := run([]string{"--filters=strict", dir}, &buf); err != nil {
		t.Fatalf("run returned unexpected error: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "main.js"))
	if err != nil {
		t.Fatalf("expected main.js to be written: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected non-empty compiled output")
	}
}

func TestRunListFilters(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--list-filters"}, &buf); err != nil {
		t.Fatalf("run returned unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "camelCase") {
		t.Errorf("expected the filter table to list camelCase, got %q", buf.String())
	}
}

func TestRunAstSexp(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{`--ast-sexp=(send nil puts (str "hi"))`}, &buf)
	if err != nil {
		t.Fatalf("run returned unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "console.log") {
		t.Errorf("expected puts to lower to console.log, got %q", buf.String())
	}
}

func TestRunInvalidOption(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--eslevel=1999"}, &buf); err == nil {
		t.Fatal("expected an error for an invalid eslevel")
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--not-a-real-flag"}, &buf); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}
