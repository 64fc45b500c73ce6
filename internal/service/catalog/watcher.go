package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher keeps a MemoryStore in sync with a YAML catalog file.
type Watcher struct {
	path     string
	store    *catalog.MemoryStore
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for path that reloads into store.
func NewWatcher(path string, store *catalog.MemoryStore) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		store:    store,
		debounce: defaultDebounce,
	}
}

// Reload parses the file and swaps the store contents. On failure the
// previous catalog stays in place.
func (w *Watcher) Reload() error {
	items, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	w.store.Replace(items)
	log.Printf("[catalog] loaded %d restaurants from %s", len(items), w.path)
	return nil
}

// Start watches the file's directory until ctx is cancelled. The directory is
// watched rather than the file so that editors replacing the file by rename
// are still picked up.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[catalog] watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.Reload(); err != nil {
			log.Printf("[catalog] reload failed, keeping previous catalog: %v", err)
		}
	})
}
