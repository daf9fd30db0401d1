package compute

import (
	"sort"

	"github.com/liveprogress/expectancy/pkg/types"
)

// Aggregate returns the per-field arithmetic mean of every entry in t,
// each rounded to DefaultPlaces.
//
// t must not already contain types.CommonKey or the mean includes itself.
// For an empty table the result fields are NaN; callers must check for
// emptiness first.
func Aggregate(t types.Table) types.CountryStatistic {
	// Sum in key order so the result does not depend on map iteration.
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var all, male, female float64
	for _, k := range keys {
		s := t[k]
		all += s.All
		male += s.Male
		female += s.Female
	}

	n := float64(len(t))
	return types.CountryStatistic{
		All:    RoundDefault(all / n),
		Male:   RoundDefault(male / n),
		Female: RoundDefault(female / n),
	}
}

// WithCommon returns a copy of t with the Common entry computed from the
// remaining entries. An existing Common entry in t is ignored when averaging
// and replaced.
func WithCommon(t types.Table) types.Table {
	out := t.Clone()
	if out == nil {
		out = types.Table{}
	}
	delete(out, types.CommonKey)
	common := Aggregate(out)
	out[types.CommonKey] = common
	return out
}
