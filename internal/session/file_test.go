package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/micro-blogger/telegram-client/pkg/logger"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session")
	return NewFileStore(path, logger.New(logger.Opts{Env: "production"})), path
}

func TestSetGetClear(t *testing.T) {
	store, _ := newTestStore(t)

	if _, ok := store.Get(); ok {
		t.Fatal("expected no token in a fresh store")
	}

	if err := store.Set("tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	token, ok := store.Get()
	if !ok || token != "tok-123" {
		t.Fatalf("got %q, %v; want tok-123, true", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("token still present after clear")
	}
}

func TestSurvivesReopen(t *testing.T) {
	store, path := newTestStore(t)
	if err := store.Set("persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A new store on the same path models a process restart.
	reopened := NewFileStore(path, logger.New(logger.Opts{Env: "production"}))
	token, ok := reopened.Get()
	if !ok || token != "persisted" {
		t.Fatalf("got %q, %v after reopen; want persisted, true", token, ok)
	}
}

func TestEmptyFileMeansAnonymous(t *testing.T) {
	store, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("blank session file should read as absent")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Clear(); err != nil {
		t.Fatalf("clear on missing file: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFilePermissions(t *testing.T) {
	store, path := newTestStore(t)
	if err := store.Set("secret"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode %o, want 600", perm)
	}
}
