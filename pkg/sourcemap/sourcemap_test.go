package sourcemap

import "testing"

func TestPushPopCursor(t *testing.T) {
	b := New()
	if _, _, _, ok := b.Current(); ok {
		t.Fatalf("expected no current cursor initially")
	}
	b.Push("a.rb", 1, 0)
	file, line, col, ok := b.Current()
	if !ok || file != "a.rb" || line != 1 || col != 0 {
		t.Fatalf("unexpected cursor: %v %v %v %v", file, line, col, ok)
	}
	b.Push("a.rb", 2, 4)
	file, line, _, _ = b.Current()
	if file != "a.rb" || line != 2 {
		t.Fatalf("expected nested push to update current cursor")
	}
	b.Pop()
	_, line, _, _ = b.Current()
	if line != 1 {
		t.Fatalf("expected pop to restore outer cursor, got line %d", line)
	}
}

func TestEntriesAreIsolatedCopy(t *testing.T) {
	b := New()
	b.Add(Entry{EmitLine: 0, EmitCol: 0, SrcFile: "a.rb", SrcLine: 1, SrcCol: 0})
	entries := b.Entries()
	entries[0].SrcFile = "mutated"
	if b.Entries()[0].SrcFile != "a.rb" {
		t.Fatalf("Entries() should return an isolated copy")
	}
}
