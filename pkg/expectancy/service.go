package expectancy

import (
	"context"

	"github.com/hyp3rd/ewrap"

	"github.com/liveprogress/expectancy/internal/compute"
	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/scraper"
	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/internal/store"
	"github.com/liveprogress/expectancy/pkg/types"
)

// Cache is the persisted snapshot of the last successful fetch.
type Cache interface {
	Exists() bool
	Load() (types.Table, error)
	Save(types.Table) error
}

// Remote produces a table without the Common entry, such as a scraped page.
type Remote interface {
	Scrape(ctx context.Context) (types.Table, error)
}

// Loader returns a complete table, such as the bundled default dataset.
type Loader interface {
	Load() (types.Table, error)
}

// Service runs the cache, remote, default fallback chain.
// It holds no state between calls other than what the Cache persists.
type Service struct {
	cache    Cache
	remote   Remote
	defaults Loader
	observer Observer
}

// Option customises a Service built by New.
type Option func(*Service)

// WithObserver replaces the default slog-backed Observer. A nil Observer
// is ignored.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithCache replaces the file cache.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithScraper replaces the remote stage.
func WithScraper(r Remote) Option {
	return func(s *Service) { s.remote = r }
}

// WithDefaults replaces the default dataset loader.
func WithDefaults(l Loader) Option {
	return func(s *Service) { s.defaults = l }
}

// New builds a Service from cfg. Options override individual stages.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cache:    store.NewFileCache(cfg.Cache.Path),
		remote:   scraper.New(cfg.Source),
		defaults: store.NewDefaultSource(cfg.Defaults.Path),
		observer: LogObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a Service from the YAML config file at path. An empty path
// uses the built-in defaults.
func Open(path string, opts ...Option) (*Service, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// GetData returns the statistics table using the default configuration: the
// cache under the home directory, the Wikipedia page, and
// default_expectancy.json in the working directory.
func GetData() (types.Table, error) {
	return New(config.Defaults()).GetData(context.Background())
}

// GetData returns the table from the first stage of the chain that yields
// one. The returned map is not shared with the Service.
func (s *Service) GetData(ctx context.Context) (types.Table, error) {
	t, _, err := s.GetDataFrom(ctx)
	return t, err
}

// GetDataFrom is GetData that also reports which stage produced the table.
func (s *Service) GetDataFrom(ctx context.Context) (types.Table, Source, error) {
	t, src, err := s.get(ctx)
	if err != nil {
		return nil, "", err
	}
	s.observer.SourceUsed(src, len(t))
	return t, src, nil
}

func (s *Service) get(ctx context.Context) (types.Table, Source, error) {
	if s.cache.Exists() {
		t, err := s.cache.Load()
		if err != nil {
			return nil, "", ewrap.Wrap(err, "load cache")
		}
		return t, SourceCache, nil
	}

	t, err := s.fetch(ctx)
	if err == nil {
		if err := s.cache.Save(t); err != nil {
			return nil, "", ewrap.Wrap(err, "save cache")
		}
		return t.Clone(), SourceRemote, nil
	}
	s.observer.FetchFailed(err)

	t, err = s.defaults.Load()
	if err != nil {
		return nil, "", ewrap.Wrap(err, "load default data")
	}
	return t, SourceDefault, nil
}

// fetch runs the remote stage and adds the Common entry. An empty parse is
// a failure: its mean would be NaN.
func (s *Service) fetch(ctx context.Context) (types.Table, error) {
	t, err := s.remote.Scrape(ctx)
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, sentinel.ErrEmptyTable
	}
	return compute.WithCommon(t), nil
}
