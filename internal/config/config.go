package config

import (
	"net/url"
	"os"
	"time"

	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/liveprogress/expectancy/internal/store"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultURL         = "https://en.wikipedia.org/wiki/List_of_countries_by_life_expectancy"
	DefaultTableClass  = "wikitable"
	DefaultTableIndex  = 2
	DefaultTimeout     = 10 * time.Second
	DefaultUserAgent   = "live-progress-expectancy/1.0 (+https://github.com/liveprogress/expectancy)"
	DefaultDefaultData = "default_expectancy.json"
	DefaultServerAddr  = ":8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config is the top-level configuration. Fields map 1:1 to config.example.yaml.
type Config struct {
	Source   Source       `yaml:"source"`
	Cache    CacheConfig  `yaml:"cache"`
	Defaults DefaultsData `yaml:"defaults"`
	Server   ServerConfig `yaml:"server"`
	Log      LogConfig    `yaml:"log"`
}

// Source describes the remote page and how its table is located.
type Source struct {
	// URL is the page holding the life-expectancy table.
	URL string `yaml:"url"`

	// TableClass is the class token that marks candidate tables.
	TableClass string `yaml:"table_class"`

	// TableIndex is the zero-based position of the data table among the
	// elements carrying TableClass.
	TableIndex int `yaml:"table_index"`

	// Strict fails the whole parse on a country row with fewer than four
	// cells. When false such rows are skipped.
	Strict bool `yaml:"strict"`

	// Timeout bounds the whole GET, including reading the body.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent on the GET. Wikipedia rejects requests without one.
	UserAgent string `yaml:"user_agent"`
}

// CacheConfig locates the cache file.
type CacheConfig struct {
	// Path is the cache file. Defaults to
	// ~/.config/live_progress/.tmp_expectancy.json.
	Path string `yaml:"path"`
}

// DefaultsData locates the bundled fallback dataset.
type DefaultsData struct {
	// Path is resolved against the working directory when relative.
	Path string `yaml:"path"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: text | json.
	Format string `yaml:"format"`
}

// Load reads and parses the YAML config file at path.
// An empty path returns the defaults. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrapf(err, "config: read file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ewrap.Wrapf(err, "config: parse yaml")
	}

	if err := validate(cfg); err != nil {
		return nil, ewrap.Wrap(err, "config")
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Source: Source{
			URL:        DefaultURL,
			TableClass: DefaultTableClass,
			TableIndex: DefaultTableIndex,
			Timeout:    DefaultTimeout,
			UserAgent:  DefaultUserAgent,
		},
		Cache:    CacheConfig{Path: store.DefaultCachePath()},
		Defaults: DefaultsData{Path: DefaultDefaultData},
		Server:   ServerConfig{Addr: DefaultServerAddr},
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Source.URL == "" {
		return ewrap.New("source.url is required")
	}
	u, err := url.Parse(cfg.Source.URL)
	if err != nil {
		return ewrap.Wrapf(err, "source.url %q", cfg.Source.URL)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return ewrap.Newf("source.url %q: scheme must be http or https", cfg.Source.URL)
	}
	if cfg.Source.TableClass == "" {
		return ewrap.New("source.table_class is required")
	}
	if cfg.Source.TableIndex < 0 {
		return ewrap.New("source.table_index must not be negative")
	}
	if cfg.Source.Timeout <= 0 {
		return ewrap.New("source.timeout must be positive")
	}
	if cfg.Cache.Path == "" {
		return ewrap.New("cache.path is required")
	}
	if cfg.Defaults.Path == "" {
		return ewrap.New("defaults.path is required")
	}
	switch cfg.Log.Format {
	case "text", "json", "":
	default:
		return ewrap.Newf("log.format: unknown format %q", cfg.Log.Format)
	}
	return nil
}
