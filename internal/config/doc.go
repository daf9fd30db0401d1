// Package config loads and watches the optional YAML configuration file.
//
// Top-level types:
//   - Config{Source, Cache, Defaults, Server, Log}: full tree parsed from YAML
//   - Source: url, table_class, table_index, strict, timeout, user_agent
//   - CacheConfig: path of the cache file
//   - DefaultsData: path of the bundled fallback dataset
//   - ServerConfig, LogConfig: settings for the serve command and slog
//
// Load(path) applies defaults (the Wikipedia page, third "wikitable", 10s
// timeout, cache under ~/.config/live_progress), overlays the YAML file when
// path is non-empty, then validates. Load("") returns the defaults.
//
// Watch(ctx, path, onChange) uses fsnotify to reload the file on change.
package config
