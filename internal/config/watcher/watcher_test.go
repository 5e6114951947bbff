package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, w)
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("Path = %q, want %q", ev.Path, abs)
	}
	if !ev.Op.Has(OpWrite) && !ev.Op.Has(OpCreate) {
		t.Errorf("Op = %v, want write", ev.Op)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(watched); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Events for the sibling are filtered, so the first one delivered must
	// be for the watched file.
	ev := waitEvent(t, w)
	if filepath.Base(ev.Path) != "watched.txt" {
		t.Errorf("Path = %q, want watched.txt", ev.Path)
	}
}

func TestWatcherRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}

	tmp := filepath.Join(dir, "doc.txt.tmp")
	if err := os.WriteFile(tmp, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, w)
	if filepath.Base(ev.Path) != "doc.txt" {
		t.Errorf("Path = %q", ev.Path)
	}
}

func TestWatcherAddRemove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{a, b, a} {
		if err := w.Add(p); err != nil {
			t.Fatalf("Add(%s) error = %v", p, err)
		}
	}
	if got := len(w.Watched()); got != 2 {
		t.Errorf("Watched() = %d paths, want 2", got)
	}
	if err := w.Remove(a); err != nil {
		t.Errorf("Remove(a) error = %v", err)
	}
	if err := w.Remove(a); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Remove error = %v, want ErrNotWatching", err)
	}
	if err := w.Remove(b); err != nil {
		t.Errorf("Remove(b) error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Add(a); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Add after Close error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events channel should be closed")
	}
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(filepath.Join(t.TempDir(), "missing", "file")); err == nil {
		t.Error("Add in a missing directory should fail")
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{OpCreate | OpWrite, "multiple"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
	if !(OpCreate | OpWrite).Has(OpWrite) {
		t.Error("Has(OpWrite) = false")
	}
}
