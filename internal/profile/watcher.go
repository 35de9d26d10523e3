package profile

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the profile directory and reports changed profile names.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange func(name string)
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWatcher starts watching dir. onChange is called with the profile name
// whenever its file is written, created, removed or renamed. The directory
// is created if missing so that later profiles are seen.
func NewWatcher(store *Store, onChange func(name string)) (*Watcher, error) {
	if err := store.fs.MkdirAll(store.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than files to handle editors that replace files.
	if err := fsWatcher.Add(store.dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		dir:      store.dir,
		watcher:  fsWatcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
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
			slog.Warn("profile watcher error", slog.String("error", err.Error()))
		}
	}
}

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&watchedOps == 0 {
		return
	}
	name, ok := NameFromPath(event.Name)
	if !ok {
		return
	}
	slog.Debug("profile changed",
		slog.String("profile", name),
		slog.String("op", event.Op.String()),
	)
	if w.onChange != nil {
		w.onChange(name)
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
