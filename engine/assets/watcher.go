package assets

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/custicle/custicle/engine/core"
)

// Watcher observes the shader directory and logs when a compiled
// binary changes on disk. The swapchain and pipeline are never rebuilt
// at runtime, so the log line only advises a restart.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Watch starts observing the named directory.
func (w *Watcher) Watch(dir string) error {
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if err := w.fsnotify.Add(dir); err != nil {
		return err
	}
	go w.run()
	return nil
}

func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(e.Name, ".spv") {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				core.LogWarn("shader binary %s changed on disk; restart to apply", filepath.Base(e.Name))
			}
			if e.Op&fsnotify.Remove != 0 {
				core.LogWarn("shader binary %s removed; the next startup will fail", filepath.Base(e.Name))
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("shader watcher: %s", err)
		case <-w.done:
			return
		}
	}
}
