// internal/server/watch.go
package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mwiater/ragbench/internal/logging"
)

// Watch reloads a dataset whenever its fixture file is written or replaced.
// The watcher is registered before Watch returns and stops when ctx is done.
// onReload, when non-nil, is called after every reload attempt.
func (s *Store) Watch(ctx context.Context, onReload func(name string, err error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch parent directories; a file replaced by rename drops a direct watch.
	dirs := map[string]struct{}{}
	for _, ds := range s.List() {
		dir := filepath.Dir(ds.Path)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name, ok := s.byPath(event.Name)
				if !ok {
					continue
				}
				ds, err := s.Reload(name)
				if err != nil {
					logging.LogEvent("reload %s failed, keeping previous document: %v", name, err)
				} else {
					logging.LogEvent("reloaded dataset %s (%d raw results)", name, len(ds.Doc.SpeedTest.RawResults))
				}
				if onReload != nil {
					onReload(name, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.LogEvent("fixture watcher error: %v", err)
			}
		}
	}()
	return nil
}
