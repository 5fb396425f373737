// Package watch signals when session files under a directory tree change so
// callers can reload from disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

// DefaultDebounce is how long the watcher waits for a burst to settle
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a sessions root and each project directory under it
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// New starts watching root and its immediate subdirectories. root must exist.
func New(root string, log *zap.Logger) (*Watcher, error) {
	const op serrors.Op = "watch.New"
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := os.Stat(root); err != nil {
		return nil, serrors.FS(op, root, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serrors.E(op, serrors.KindIO, err)
	}

	w := &Watcher{
		root:     root,
		watcher:  fw,
		debounce: DefaultDebounce,
		log:      log.Named("watch"),
	}

	if err := fw.Add(root); err != nil {
		_ = fw.Close()
		return nil, serrors.FS(op, root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		_ = fw.Close()
		return nil, serrors.FS(op, root, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			w.addDir(filepath.Join(root, e.Name()))
		}
	}

	return w, nil
}

// SetDebounce changes the quiet period before onChange fires
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run delivers one onChange call per burst of events until ctx is done or
// the watcher is closed. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.root {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					w.addDir(event.Name)
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}

func (w *Watcher) addDir(dir string) {
	if err := w.watcher.Add(dir); err != nil {
		w.log.Debug("cannot watch directory", zap.String("dir", dir), zap.Error(err))
	}
}
