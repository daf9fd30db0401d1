// Package metrics renders a life-expectancy table as Prometheus gauges.
//
// Every country becomes three samples of life_expectancy_years, one per sex
// label (all, male, female). The Common entry is exported like any other
// country so dashboards can plot the mean next to individual countries.
package metrics

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/liveprogress/expectancy/pkg/types"
)

// Metric and label names.
const (
	FamilyName   = "life_expectancy_years"
	LabelCountry = "country"
	LabelSex     = "sex"
)

const familyHelp = "Life expectancy at birth in years, by country and sex."

// Format is the exposition format Write produces.
var Format = expfmt.NewFormat(expfmt.TypeTextPlain)

// Families converts t into metric families. Countries are emitted in sorted
// order with Common last. An empty table yields no families, since the text
// format cannot express a family without samples.
func Families(t types.Table) []*dto.MetricFamily {
	names := t.Countries()
	if _, ok := t.Common(); ok {
		names = append(names, types.CommonKey)
	}
	if len(names) == 0 {
		return nil
	}

	mf := &dto.MetricFamily{
		Name: ptr(FamilyName),
		Help: ptr(familyHelp),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, name := range names {
		s := t[name]
		for _, sample := range []struct {
			sex   string
			value float64
		}{
			{"all", s.All},
			{"male", s.Male},
			{"female", s.Female},
		} {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: []*dto.LabelPair{
					{Name: ptr(LabelCountry), Value: ptr(name)},
					{Name: ptr(LabelSex), Value: ptr(sample.sex)},
				},
				Gauge: &dto.Gauge{Value: ptr(sample.value)},
			})
		}
	}
	return []*dto.MetricFamily{mf}
}

// Write encodes t to w in the Prometheus text exposition format.
func Write(w io.Writer, t types.Table) error {
	enc := expfmt.NewEncoder(w, Format)
	for _, mf := range Families(t) {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
