package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// atomicSave writes content to a temp file beside path and renames it over
// path, the way most editors save.
func atomicSave(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
}

// waitForLevel reads reloads until one carries level, or fails after a timeout.
func waitForLevel(t *testing.T, got <-chan *Config, level string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Log.Level == level {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload with log.level %q", level)
		}
	}
}

func TestWatch_RenameOverSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) {
			select {
			case got <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before saving.
	time.Sleep(100 * time.Millisecond)

	atomicSave(t, path, "log:\n  level: debug\n")
	waitForLevel(t, got, "debug")

	// A second save must still be seen after the first rename replaced the inode.
	atomicSave(t, path, "log:\n  level: warn\n")
	waitForLevel(t, got, "warn")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned %v", err)
	}
}

func TestWatch_InvalidReloadSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 16)
	go func() {
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case got <- cfg:
			default:
			}
		})
	}()
	time.Sleep(100 * time.Millisecond)

	atomicSave(t, path, "source:\n  table_index: -1\n")
	atomicSave(t, path, "log:\n  level: error\n")
	waitForLevel(t, got, "error")

	select {
	case cfg := <-got:
		if cfg.Source.TableIndex < 0 {
			t.Errorf("invalid config delivered to onChange: %+v", cfg.Source)
		}
	default:
	}
}

func TestWatch_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "config.yaml")
	if err := Watch(context.Background(), path, func(*Config) {}); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
