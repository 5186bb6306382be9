package i18n

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a user catalog file into a Translator whenever it changes.
// The user catalog is layered over the builtin one, so a partial file only
// overrides the keys it defines.
type Watcher struct {
	watcher    *fsnotify.Watcher
	translator *Translator
	base       Catalog
	filePath   string
	logger     *slog.Logger
	onReload   func(Catalog)
	done       chan struct{}
	mu         sync.Mutex
	running    bool
}

// NewWatcher creates a watcher for filePath. base is the catalog the file is
// merged over; nil means Builtin().
func NewWatcher(t *Translator, filePath string, base Catalog) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = Builtin()
	}

	return &Watcher{
		watcher:    fw,
		translator: t,
		base:       base,
		filePath:   filePath,
		logger:     t.logger,
		done:       make(chan struct{}),
	}, nil
}

// OnReload registers a callback run after each successful reload.
func (w *Watcher) OnReload(fn func(Catalog)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Start loads the file once and begins watching it.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.Reload(); err != nil {
		w.logger.Warn("initial catalog load failed", "file", w.filePath, "error", err)
	}

	// Watch the directory: editors often replace the file rather than write it.
	if err := w.watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// Reload reads the file and swaps the merged catalog into the translator.
// On error the translator keeps its current catalog.
func (w *Watcher) Reload() error {
	cat, err := LoadCatalog(w.filePath)
	if err != nil {
		return err
	}
	merged := w.base.Merge(cat)
	w.translator.Replace(merged)

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()
	if fn != nil {
		fn(merged)
	}
	return nil
}

func (w *Watcher) watch() {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("catalog changed, reloading", "file", w.filePath)
				if err := w.Reload(); err != nil {
					w.logger.Warn("failed to reload catalog", "error", err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
