package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	s := NewFileStore(path)

	if got := s.Load(); got != "" {
		t.Errorf("Load() on missing file = %q, want empty", got)
	}

	if err := s.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := s.Load(); got != "abc123" {
		t.Errorf("Load() = %q, want abc123", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	s := NewFileStore(path)

	if err := s.Save("tok"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	// Clearing again must not fail.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
	if got := s.Load(); got != "" {
		t.Errorf("Load() after Clear = %q, want empty", got)
	}
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	if err := os.WriteFile(path, []byte("tok\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	if got := s.Load(); got != "tok" {
		t.Errorf("Load() = %q, want tok", got)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	if err := s.Save("x"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := s.Load(); got != "x" {
		t.Errorf("Load() = %q, want x", got)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := s.Load(); got != "" {
		t.Errorf("Load() after Clear = %q, want empty", got)
	}
}
