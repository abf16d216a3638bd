package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Debounce is how long a file must stay quiet after an event before onChange runs.
// Editors often write a file in several steps, this folds them into one call.
var Debounce = 100 * time.Millisecond

// Files watches paths and calls onChange with the path as given whenever one of them is
// written or created. It blocks until ctx is cancelled. onChange runs on the watching
// goroutine, one call at a time.
//
// The parent directories are watched rather than the files, so a file replaced by an
// editor's rename-on-save is still seen.
func Files(ctx context.Context, paths []string, onChange func(path string), logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		watched[abs] = path
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		dirs[dir] = true
		logger.Debug("watching", "dir", dir)
	}

	debounce := newDebouncer(Debounce)
	defer debounce.stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("stopping file watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, ok := watched[filepath.Clean(event.Name)]
			if !ok || !relevant(event) {
				continue
			}
			logger.Debug("file event", "file", path, "op", event.Op.String())
			debounce.touch(path)

		case f := <-debounce.fire:
			if debounce.take(f) {
				onChange(f.path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

type firing struct {
	path string
	seq  int
}

// debouncer delays a path until it has been quiet for delay. Every touch restarts the
// delay and bumps the path's sequence number; a firing with an older number is stale.
// touch and take must be called from one goroutine.
type debouncer struct {
	delay  time.Duration
	fire   chan firing
	done   chan struct{}
	timers map[string]*time.Timer
	seqs   map[string]int
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		fire:   make(chan firing),
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
		seqs:   make(map[string]int),
	}
}

func (d *debouncer) touch(path string) {
	if timer, ok := d.timers[path]; ok {
		timer.Stop()
	}
	d.seqs[path]++
	f := firing{path: path, seq: d.seqs[path]}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		select {
		case d.fire <- f:
		case <-d.done:
		}
	})
}

// take reports whether f is the latest firing for its path and forgets the path if so.
func (d *debouncer) take(f firing) bool {
	timer, ok := d.timers[f.path]
	if !ok || d.seqs[f.path] != f.seq {
		return false
	}
	timer.Stop()
	delete(d.timers, f.path)
	return true
}

// stop cancels pending timers and releases any timer goroutine waiting to deliver.
func (d *debouncer) stop() {
	close(d.done)
	for _, timer := range d.timers {
		timer.Stop()
	}
}

// relevant reports whether event may have changed the file content.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
