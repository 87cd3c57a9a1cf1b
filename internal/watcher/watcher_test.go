package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherEmitsReloadOnDataFileWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "medecon.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}

	w, err := New(dbPath)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()
	w.Start()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(dbPath, []byte("changed"), 0644); err != nil {
		t.Fatalf("write data file: %v", err)
	}

	select {
	case ev := <-w.Events:
		if ev.Path != mustAbs(t, dbPath) {
			t.Fatalf("unexpected event path: %s", ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload event")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "medecon.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}

	w, err := New(dbPath)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()
	w.Start()

	time.Sleep(100 * time.Millisecond)

	// A burst of writes within the debounce window should collapse into a
	// single reload event.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(dbPath, []byte{byte(i)}, 0644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Events:
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for coalesced reload event")
	}

	select {
	case <-w.Events:
		t.Fatal("burst produced more than one reload event")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "medecon.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}

	w, err := New(dbPath)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()
	w.Start()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	select {
	case ev := <-w.Events:
		t.Fatalf("unexpected reload for unrelated file: %+v", ev)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherMatchesJournalSiblings(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "medecon.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}

	w, err := New(dbPath)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	abs := mustAbs(t, dbPath)
	for _, name := range []string{abs, abs + "-wal", abs + "-shm", abs + "-journal"} {
		if !w.matches(name) {
			t.Errorf("expected %s to match", name)
		}
	}
	if w.matches(filepath.Join(dir, "other.db")) {
		t.Error("unrelated file matched")
	}
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	return abs
}
