package store

import (
	"os"
	"path/filepath"

	"github.com/hyp3rd/ewrap"

	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/pkg/types"
)

// DefaultSource reads the bundled fallback dataset. The file is expected to
// carry its own Common entry; nothing is recomputed.
type DefaultSource struct {
	path string
}

// NewDefaultSource returns a DefaultSource for path. A relative path is
// resolved against the working directory at Load time, not here.
func NewDefaultSource(path string) *DefaultSource {
	return &DefaultSource{path: path}
}

// Load returns the file contents verbatim.
func (d *DefaultSource) Load() (types.Table, error) {
	path := d.path
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, ewrap.Wrapf(sentinel.ErrFilesystem, "resolve working directory: %v", err)
		}
		path = filepath.Join(wd, path)
	}
	return readTable(path)
}
