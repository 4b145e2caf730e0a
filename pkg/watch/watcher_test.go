package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "combat.log")
	if err := os.WriteFile(path, []byte("line one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })
	return w, path
}

func TestChangeOnGrowth(t *testing.T) {
	w, path := newTestWatcher(t)

	var calls int
	var sawFresh bool
	w.OnChange = func(fresh bool) error {
		calls++
		sawFresh = fresh
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("line two\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	w.handleChange()
	if calls != 1 || sawFresh {
		t.Errorf("calls = %d fresh = %v, want one stale-free change", calls, sawFresh)
	}

	// Same size and mtime: no further callback.
	w.handleChange()
	if calls != 1 {
		t.Errorf("unchanged file triggered callback")
	}
}

func TestRotationReportsFresh(t *testing.T) {
	w, path := newTestWatcher(t)

	var sawFresh bool
	w.OnChange = func(fresh bool) error {
		sawFresh = fresh
		return nil
	}

	// Rotation: the file is replaced with a shorter one.
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w.handleChange()
	if !sawFresh {
		t.Error("shrunken log not reported as fresh")
	}
}

func TestMissingLogRejected(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Error("want error for missing log")
	}
}
