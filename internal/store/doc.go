// Package store holds every place a life-expectancy table lives outside the
// network: the on-disk cache file, the bundled default dataset, and the
// in-memory snapshot served by the HTTP API.
//
// file.go provides FileCache (Exists, Load, Save, Watch) for the single cache
// file, and DefaultCachePath for its conventional location.
//
// defaults.go provides DefaultSource, which reads the bundled fallback file.
//
// memory.go provides Memory, a mutex-guarded holder of the latest table and
// where it came from.
//
// Both files share the JSON shape {"<country>": {"all", "male", "female"}},
// encoded with goccy/go-json.
package store
