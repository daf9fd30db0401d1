// Package types defines the shared life-expectancy types used by the
// acquisition pipeline and its callers. A Table is the in-memory form of the
// cache file and the bundled default file; both serialize to the same JSON
// object keyed by country name.
package types
