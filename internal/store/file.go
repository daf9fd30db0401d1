package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hyp3rd/ewrap"

	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/pkg/types"
)

// DefaultCachePath returns <home>/.config/live_progress/.tmp_expectancy.json,
// using "." when the home directory cannot be determined.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".config", "live_progress", ".tmp_expectancy.json")
}

// FileCache persists one table snapshot at a fixed path. There is no expiry:
// once written the cache is trusted until someone removes the file.
type FileCache struct {
	path string
}

// NewFileCache returns a FileCache backed by path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: filepath.Clean(path)}
}

// Path returns the cache file location.
func (c *FileCache) Path() string { return c.path }

// Exists reports whether the cache file exists and is a regular file.
// Stat errors count as absent.
func (c *FileCache) Exists() bool {
	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Load reads the cache file. Malformed content yields
// sentinel.ErrDeserialization.
func (c *FileCache) Load() (types.Table, error) {
	return readTable(c.path)
}

// Save writes t to the cache file, creating parent directories as needed.
// Entries with NaN, infinite or negative values are rejected with
// sentinel.ErrInvalidValue. The write is a plain overwrite, not an atomic
// replace.
func (c *FileCache) Save(t types.Table) error {
	for name, stat := range t {
		if !stat.Valid() {
			return ewrap.Wrapf(sentinel.ErrInvalidValue, "cache entry %q: %+v", name, stat)
		}
	}
	data, err := encodeTable(t)
	if err != nil {
		return ewrap.Wrapf(sentinel.ErrFilesystem, "encode cache: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return ewrap.Wrapf(sentinel.ErrFilesystem, "create cache dir: %v", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil { //nolint:gosec // cache holds public data
		return ewrap.Wrapf(sentinel.ErrFilesystem, "write cache: %v", err)
	}
	slog.Debug("store: cache written", "path", c.path, "entries", len(t))
	return nil
}

// Watch calls onChange with the reloaded table each time the cache file is
// written or created. The parent directory is watched so the file need not
// exist yet; it must, however, exist itself. Watch runs until ctx is
// cancelled.
//
// A reload that fails (for example a half-written file) is logged and
// skipped.
func (c *FileCache) Watch(ctx context.Context, onChange func(types.Table)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ewrap.Wrap(err, "store: new watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(c.path)
	if err := watcher.Add(dir); err != nil {
		return ewrap.Wrapf(err, "store: watch %s", dir)
	}

	slog.Info("store: watching cache", "path", c.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != c.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			t, err := c.Load()
			if err != nil {
				slog.Warn("store: cache reload failed", "path", c.path, "err", err)
				continue
			}
			onChange(t)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("store: watcher error", "err", err)
		}
	}
}
