package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/rectscreen/internal/hash"
)

const waitTimeout = 5 * time.Second

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// startWatcher runs w on path in the background and returns a channel
// receiving the content seen by each callback.
func startWatcher(t *testing.T, w *Watcher, path string) <-chan string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan string, 16)
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx, path, func(p string) error {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			calls <- string(data)
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run() returned %v", err)
			}
		case <-time.After(waitTimeout):
			t.Error("Run() did not return after cancel")
		}
	})
	return calls
}

func expectCall(t *testing.T, calls <-chan string, want string) {
	t.Helper()
	select {
	case got := <-calls:
		if got != want {
			t.Errorf("callback saw %q, want %q", got, want)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("callback not called for %q", want)
	}
}

func TestWatcher_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	writeFile(t, path, "100 100 10 10 red\n")

	w := New(hash.NewSHA256Hasher(), WithDebounce(20*time.Millisecond))
	calls := startWatcher(t, w, path)

	expectCall(t, calls, "100 100 10 10 red\n")

	writeFile(t, path, "200 200 10 10 blue\n")
	expectCall(t, calls, "200 200 10 10 blue\n")

	// Rewriting identical content must not trigger another call.
	writeFile(t, path, "200 200 10 10 blue\n")
	select {
	case got := <-calls:
		t.Errorf("unexpected callback for unchanged content: %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.txt")
	writeFile(t, path, "1 1 1 1\n")

	w := New(hash.NewSHA256Hasher(), WithDebounce(20*time.Millisecond))
	calls := startWatcher(t, w, path)
	expectCall(t, calls, "1 1 1 1\n")

	writeFile(t, filepath.Join(dir, "other.txt"), "noise")
	select {
	case got := <-calls:
		t.Errorf("unexpected callback for unrelated file: %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	writeFile(t, path, "x")

	h := hash.NewFakeHasher()
	h.SetHash(path, "v1")

	errs := make(chan error, 4)
	w := New(h, WithErrorHandler(func(err error) { errs <- err }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	want := errors.New("bad batch")
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, path, func(string) error { return want })
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, want) {
			t.Errorf("error handler got %v, want %v", err, want)
		}
	case <-time.After(waitTimeout):
		t.Fatal("error handler not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("Run() did not return after cancel")
	}
}
