package snapshot

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
	"github.com/teranos/netlens/logger"
)

// DefaultDebounce coalesces the burst of events editors emit for one save
const DefaultDebounce = 300 * time.Millisecond

// ReloadCallback receives every successfully decoded snapshot
type ReloadCallback func(*graph.Snapshot) error

// Watcher re-reads a snapshot file when it changes and hands the result to
// the registered callbacks
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu            sync.RWMutex
	callbacks     []ReloadCallback
	debounceTimer *time.Timer
	done          chan struct{}
}

// NewWatcher watches the directory containing path, so editors that replace
// the file by rename are still seen
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		logger:   logger.Logger.Named("snapshot.watcher"),
		done:     make(chan struct{}),
	}, nil
}

// OnReload registers a callback to be called with each new snapshot
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Done is closed once the watch loop exits
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
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
			w.logger.Debugw("Snapshot change detected",
				logger.FieldPath, event.Name,
				logger.FieldOperation, event.Op.String(),
			)
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Snapshot watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		if err := w.Reload(); err != nil {
			w.logger.Errorw("Snapshot reload failed", logger.FieldPath, w.path, logger.FieldError, err)
		}
	})
}

// Reload reads the snapshot now and calls every callback. A callback error
// is logged and does not stop the remaining callbacks.
func (w *Watcher) Reload() error {
	snap, err := ReadFile(w.path)
	if err != nil {
		return err
	}

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(snap); err != nil {
			w.logger.Warnw("Snapshot reload callback error", logger.FieldError, err)
		}
	}
	w.logger.Infow("Snapshot reloaded",
		logger.FieldPath, w.path,
		logger.FieldNodes, len(snap.Nodes),
		logger.FieldLinks, len(snap.Links),
	)
	return nil
}

// Stop stops watching
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
