package types

import (
	"math"
	"sort"
)

// CommonKey is the synthetic entry holding the unweighted mean of every
// country in a freshly fetched table.
const CommonKey = "Common"

// CountryStatistic holds life expectancy in years for one country, or for
// the synthetic Common entry.
type CountryStatistic struct {
	All    float64 `json:"all"`
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}

// Valid reports whether every field is a finite, non-negative number.
func (c CountryStatistic) Valid() bool {
	for _, v := range [...]float64{c.All, c.Male, c.Female} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// Table maps a country name to its statistics.
type Table map[string]CountryStatistic

// Countries returns the sorted country names, excluding Common.
func (t Table) Countries() []string {
	out := make([]string, 0, len(t))
	for name := range t {
		if name == CommonKey {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Common returns the aggregate entry and whether it is present.
func (t Table) Common() (CountryStatistic, bool) {
	c, ok := t[CommonKey]
	return c, ok
}

// Clone returns a copy that shares no storage with t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
