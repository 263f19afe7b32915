// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.FileWatcher.
package filewatcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
)

// FSNotifyWatcher implements ports.FileWatcher using fsnotify.
// It watches the file's parent directory so edits that replace the file
// (editor save-via-rename) are still observed.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
}

// NewFSNotifyWatcher creates a new file watcher.
func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{watcher: w}, nil
}

// Watch starts monitoring the file and emits events until ctx is done.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileEvent, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !sameFile(event.Name, abs) {
					continue
				}

				var op ports.FileOperation
				switch {
				case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
					op = ports.FileModified
				case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					op = ports.FileDeleted
				default:
					continue
				}

				select {
				case events <- ports.FileEvent{Path: abs, Operation: op}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

// sameFile compares event paths against the watched file.
func sameFile(eventPath, watched string) bool {
	abs, err := filepath.Abs(eventPath)
	if err != nil {
		return false
	}
	return abs == watched
}
