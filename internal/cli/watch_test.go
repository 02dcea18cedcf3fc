package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.toml")
	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(file, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{file}, func() { changes <- struct{}{} })
	}()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changes:
		t.Fatal("change reported for an unwatched file")
	case <-time.After(3 * watchDebounce):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte{byte('b' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Error("burst of writes reported more than once")
	case <-time.After(3 * watchDebounce):
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("watchFiles() = %v, want context.Canceled", err)
	}
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	if err := os.WriteFile(a, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.dot")

	d1 := digest([]string{a, missing})
	if d1 != digest([]string{a, missing}) {
		t.Error("digest should be deterministic")
	}
	if err := os.WriteFile(a, []byte("x = 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if digest([]string{a, missing}) == d1 {
		t.Error("digest should change with file contents")
	}
}
