package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the layer whenever its file changes on disk and calls
// onReload with the reload result (nil on success). Chains referencing
// the layer see the new contents immediately after a successful
// reload; they are never rebuilt.
//
// The directory containing the file is watched rather than the file
// itself, which keeps the watch alive across atomic writes (temp file
// + rename) and file recreation.
//
// Watching stops when ctx is canceled or when the returned stop
// function is called; stop is safe to call multiple times.
func (l *Layer) Watch(ctx context.Context, onReload func(error)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", l.path, err)
	}

	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	filename := filepath.Base(l.path)

	var once sync.Once
	stop = func() {
		once.Do(func() {
			w.Close()
		})
	}

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filename {
					continue
				}
				// Write for in-place edits, Create and Rename for
				// atomic replace.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					onReload(l.Load(ctx))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onReload(fmt.Errorf("watch %q: %w", l.path, err))
			}
		}
	}()

	return stop, nil
}
