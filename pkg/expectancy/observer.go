package expectancy

import "log/slog"

// Source names the stage of the fallback chain that produced a table.
type Source string

const (
	SourceCache   Source = "cache"
	SourceRemote  Source = "remote"
	SourceDefault Source = "default"
)

// Observer receives the events GetData does not surface as errors.
type Observer interface {
	// FetchFailed is called with the error that made the remote stage fall
	// through to the default dataset.
	FetchFailed(err error)

	// SourceUsed is called once per successful GetData with the stage that
	// produced the table.
	SourceUsed(src Source, entries int)
}

// LogObserver reports events through slog.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// FetchFailed logs at warn level.
func (o LogObserver) FetchFailed(err error) {
	o.logger().Warn("expectancy: remote fetch failed, using default data", "err", err)
}

// SourceUsed logs at info level.
func (o LogObserver) SourceUsed(src Source, entries int) {
	o.logger().Info("expectancy: data loaded", "source", string(src), "entries", entries)
}
