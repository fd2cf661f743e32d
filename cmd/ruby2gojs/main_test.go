package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCompilesEachFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte(`(send nil puts (str "hi"))`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(CLI{Dir: dir, ESLevel: 2015, Module: "esm", Strict: true}); err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
}

func TestRunNoFiles(t *testing.T) {
	if err := Run(CLI{Dir: t.TempDir(), ESLevel: 2015, Module: "esm"}); err == nil {
		t.Fatal("expected an error when the directory has no .rb files")
	}
}

func TestRunInvalidModule(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.rb"), []byte(`(send nil puts (str "hi"))`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Run(CLI{Dir: dir, ESLevel: 2015, Module: "not-a-module"}); err == nil {
		t.Fatal("expected an error for an invalid module option")
	}
}
