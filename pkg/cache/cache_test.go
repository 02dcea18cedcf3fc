package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte(`{"d":"M 0 0"}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != `{"d":"M 0 0"}` {
		t.Errorf("Get(a) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("entry survived Clear")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DefaultDir(); got != "/tmp/xdg/tether" {
		t.Errorf("DefaultDir() = %q", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	type req struct {
		Path      string
		Curvature float64
	}
	g1 := k.GeometryKey(req{"arc", 0.2})
	g2 := k.GeometryKey(req{"arc", 0.3})
	if g1 == g2 {
		t.Error("different requests should produce different keys")
	}
	if g1 != k.GeometryKey(req{"arc", 0.2}) {
		t.Error("GeometryKey should be deterministic")
	}
	if !strings.HasPrefix(g1, "geometry:") {
		t.Errorf("GeometryKey unexpected: %s", g1)
	}

	if got := k.PlugKey("arrow1", 12.5); got != "plug:arrow1:12.5" {
		t.Errorf("PlugKey unexpected: %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:123:")

	if got := scoped.PlugKey("disc", 8); got != "tenant:123:plug:disc:8" {
		t.Errorf("ScopedKeyer PlugKey unexpected: %s", got)
	}
	if got := scoped.GeometryKey(1); !strings.HasPrefix(got, "tenant:123:geometry:") {
		t.Errorf("ScopedKeyer GeometryKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.PlugKey("disc", 8); got != "prefix:plug:disc:8" {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

var errDown = errors.New("backend down")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errDown)
	if !IsRetryable(err) {
		t.Error("IsRetryable should report a marked error")
	}
	if !errors.Is(err, errDown) || err.Error() != errDown.Error() {
		t.Errorf("marked error should wrap the original: %v", err)
	}
	if IsRetryable(errDown) {
		t.Error("IsRetryable should be false for an unmarked error")
	}
}

func TestRetryDo(t *testing.T) {
	r := Retry{Attempts: 3, Delay: time.Millisecond}
	ctx := context.Background()

	tests := []struct {
		name      string
		fails     int // marked failures before success; -1 fails unmarked
		wantErr   error
		wantCalls int
	}{
		{"success", 0, nil, 1},
		{"unmarked stops", -1, errDown, 1},
		{"retry once", 1, nil, 2},
		{"exhausted", 5, errDown, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := r.Do(ctx, func() error {
				calls++
				switch {
				case tt.fails < 0:
					return errDown
				case calls <= tt.fails:
					return Retryable(errDown)
				}
				return nil
			})
			if err != tt.wantErr || calls != tt.wantCalls {
				t.Errorf("Do() = %v after %d calls, want %v after %d", err, calls, tt.wantErr, tt.wantCalls)
			}
		})
	}
}

func TestRetryDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error {
		return Retryable(errDown)
	})
	if err != context.Canceled {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}
