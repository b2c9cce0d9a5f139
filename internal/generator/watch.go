package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/doctags/doctags-mcp/internal/discovery"
	"github.com/doctags/doctags-mcp/internal/notify"
)

// Watcher regenerates tag indexes when documentation files change.
// Events are debounced per root so a burst of writes triggers one
// regeneration, and only the root that changed is regenerated.
type Watcher struct {
	gen      *Generator
	watcher  *fsnotify.Watcher
	roots    []string
	opts     *Options
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time // root -> last change time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a Watcher over the given roots.
func NewWatcher(gen *Generator, roots []string, opts *Options, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		gen:      gen,
		watcher:  fw,
		roots:    roots,
		opts:     opts,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Watch registers every root's directory tree and starts the event and
// debounce loops. It returns immediately; use Close to stop.
func (w *Watcher) Watch() error {
	for _, root := range w.roots {
		if err := w.addRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	go w.processEvents()
	go w.processPending()
	return nil
}

// Close stops watching and waits for the debounce loop to drain.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	<-w.done
	return err
}

// addRecursive adds a directory and all its subdirectories to the watch
// list. Hidden directories are skipped, matching discovery.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event round recovers.
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// A new subdirectory has to be watched before its files produce events.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	name := filepath.Base(event.Name)
	if !discovery.IsDocFile(name) || isIndexFile(name) {
		return
	}

	root := w.rootFor(event.Name)
	if root == "" {
		return
	}

	w.mu.Lock()
	w.pending[root] = time.Now()
	w.mu.Unlock()
}

// isIndexFile filters the generator's own output so a write never
// retriggers itself.
func isIndexFile(name string) bool {
	return name == "tags" || strings.HasPrefix(name, "tags-")
}

// rootFor maps an event path back to the documentation root containing it.
func (w *Watcher) rootFor(path string) string {
	for _, root := range w.roots {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return root
		}
	}
	return ""
}

// processPending regenerates roots whose last change is older than the
// debounce window.
func (w *Watcher) processPending() {
	defer close(w.done)

	interval := w.debounce / 2
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			for _, root := range w.drainReady() {
				if _, err := w.gen.Generate(w.ctx, root, w.opts); err != nil {
					w.gen.notifier.Notify(fmt.Sprintf("Regeneration of %s failed: %v", root, err), notify.SeverityError)
				}
			}
		}
	}
}

// drainReady removes and returns the roots whose quiet period elapsed.
func (w *Watcher) drainReady() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	now := time.Now()
	for root, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, root)
			delete(w.pending, root)
		}
	}
	return ready
}
