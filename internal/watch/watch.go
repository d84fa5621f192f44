// Package watch reports changes to an annotation document on disk.
package watch

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher observes a single file. The file's directory is watched rather
// than the file itself, so atomic saves (write temp, rename over) are seen.
type Watcher struct {
	path   string
	fsw    *fsnotify.Watcher
	logger *log.Logger
}

// New starts watching path. Events are delivered once Run is called.
func New(path string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{path: abs, fsw: fsw, logger: logger}, nil
}

// Run calls onChange for every write or create of the watched file until ctx
// is cancelled. It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("document changed", "path", event.Name, "op", event.Op.String())
				onChange()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

// Watch is New followed by Run.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func()) error {
	w, err := New(path, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, onChange)
}
