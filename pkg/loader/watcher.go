package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher clears a loader's cache for a framework whenever a YAML file under
// frameworks/<framework>/ changes.
type Watcher struct {
	loader  *Loader
	root    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
	closed  bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher watches the frameworks directory below root, the directory l
// reads from.
func NewWatcher(l *Loader, root string) (*Watcher, error) {
	if l == nil {
		return nil, errors.New("loader: watcher needs a loader")
	}
	if root == "" {
		root = l.Root()
	}
	if root == "" {
		return nil, errors.New("loader: watcher needs a content directory")
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		loader:  l,
		root:    filepath.Clean(root),
		watcher: notify,
		logger:  l.logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	if err := w.addTree(filepath.Join(w.root, "frameworks")); err != nil {
		notify.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
}

// Start handles file events in a goroutine until ctx is done or Close is
// called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.closed {
		return
	}
	w.running = true
	go w.run(ctx)
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("content watcher could not add directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	ext := filepath.Ext(event.Name)
	if ext != ".yml" && ext != ".yaml" {
		return
	}
	framework := w.frameworkOf(event.Name)
	if framework == "" {
		return
	}
	w.loader.Reset(framework)
	w.logger.Debug("content changed", zap.String("framework", framework), zap.String("path", event.Name), zap.Stringer("op", event.Op))
}

// frameworkOf returns the framework directory a path belongs to.
func (w *Watcher) frameworkOf(name string) string {
	rel, err := filepath.Rel(filepath.Join(w.root, "frameworks"), name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
