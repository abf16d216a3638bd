package watch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	testData := []struct {
		op       fsnotify.Op
		expected bool
	}{
		{op: fsnotify.Write, expected: true},
		{op: fsnotify.Create, expected: true},
		{op: fsnotify.Write | fsnotify.Chmod, expected: true},
		{op: fsnotify.Remove, expected: false},
		{op: fsnotify.Rename, expected: false},
		{op: fsnotify.Chmod, expected: false},
	}
	for _, data := range testData {
		assert.Equal(t, data.expected, relevant(fsnotify.Event{Name: "a.mc", Op: data.op}), data.op.String())
	}
}

func TestFiles(t *testing.T) {
	saved := Debounce
	Debounce = 10 * time.Millisecond
	defer func() { Debounce = saved }()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.mc")
	other := filepath.Join(dir, "other.mc")
	require.NoError(t, os.WriteFile(path, []byte("int a;"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Files(ctx, []string{path}, func(p string) { changed <- p }, nil)
	}()

	// The watcher needs a moment to register, so keep writing until it reports.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	var got string
loop:
	for {
		select {
		case got = <-changed:
			break loop
		case <-ticker.C:
			require.NoError(t, os.WriteFile(other, []byte("int b;"), 0o644))
			require.NoError(t, os.WriteFile(path, []byte("int a; int b;"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
	assert.Equal(t, path, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	for len(changed) > 0 {
		assert.Equal(t, path, <-changed, "unwatched files are ignored")
	}
}

func TestFiles_MissingDirectory(t *testing.T) {
	err := Files(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "a.mc")}, func(string) {}, nil)
	assert.Error(t, err)
}

func TestDebouncer_Coalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()
	for i := 0; i < 3; i++ {
		d.touch("a.mc")
		time.Sleep(5 * time.Millisecond)
	}

	calls := 0
	deadline := time.After(300 * time.Millisecond)
loop:
	for {
		select {
		case f := <-d.fire:
			if d.take(f) {
				calls++
			}
		case <-deadline:
			break loop
		}
	}
	assert.Equal(t, 1, calls)
}

func TestDebouncer_StaleFiring(t *testing.T) {
	d := newDebouncer(time.Hour)
	defer d.stop()
	d.touch("a.mc")
	d.touch("a.mc")
	assert.False(t, d.take(firing{path: "a.mc", seq: 1}))
	assert.True(t, d.take(firing{path: "a.mc", seq: 2}))
	assert.False(t, d.take(firing{path: "a.mc", seq: 2}), "a path fires once per quiet period")
	assert.False(t, d.take(firing{path: "other.mc", seq: 1}))
}

func TestDebouncer_StopReleasesTimers(t *testing.T) {
	before := runtime.NumGoroutine()
	d := newDebouncer(time.Millisecond)
	for i := 0; i < 50; i++ {
		d.touch(strconv.Itoa(i) + ".mc")
	}
	// Nobody receives, so every timer goroutine is now blocked on delivery.
	time.Sleep(50 * time.Millisecond)
	d.stop()
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}
