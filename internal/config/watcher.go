package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file whenever it changes on disk and hands
// each new, valid configuration to a callback.
type Watcher struct {
	path     string
	config   *Config
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	adjust   func(*Config)
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithAdjust runs fn on every loaded config before it is validated, e.g. to
// reapply command-line overrides.
func WithAdjust(fn func(*Config)) WatcherOption {
	return func(w *Watcher) {
		w.adjust = fn
	}
}

// NewWatcher loads path and starts watching it. The file's directory must
// exist. onChange only fires when a reload changes at least one section.
func NewWatcher(path string, onChange func(*Config), opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	cfg, err := w.load()
	if err != nil {
		return nil, err
	}
	w.config = cfg

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file, so watch the directory.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	w.watcher = fsWatcher

	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// Config returns the current configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) load() (*Config, error) {
	cfg, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if w.adjust != nil {
		w.adjust(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", slog.String("error", err.Error()))
		}
	}
}

// reload keeps the previous config when the new file is unreadable or invalid.
func (w *Watcher) reload() {
	cfg, err := w.load()
	if err != nil {
		slog.Error("config reload rejected",
			slog.String("path", w.path),
			slog.String("error", err.Error()),
		)
		return
	}

	w.mu.Lock()
	changed := Diff(w.config, cfg)
	if len(changed) > 0 {
		w.config = cfg
	}
	w.mu.Unlock()

	if len(changed) == 0 {
		slog.Debug("config file touched without changes", slog.String("path", w.path))
		return
	}
	slog.Info("config reloaded",
		slog.String("path", w.path),
		slog.Any("sections", changed),
	)

	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Diff returns the names of the top-level sections that differ between a and b.
func Diff(a, b *Config) []string {
	var changed []string
	if a.Logging != b.Logging {
		changed = append(changed, "logging")
	}
	if a.Profiles != b.Profiles {
		changed = append(changed, "profiles")
	}
	if a.Generate != b.Generate {
		changed = append(changed, "generate")
	}
	if a.MCP != b.MCP {
		changed = append(changed, "mcp")
	}
	return changed
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
