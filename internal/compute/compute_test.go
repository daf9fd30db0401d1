package compute

import (
	"math"
	"testing"

	"github.com/liveprogress/expectancy/pkg/types"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// --- Round ---

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places uint
		want   float64
	}{
		{"two places", 83.0499999999, 2, 83.05},
		{"midpoint rounds up", 2.345, 2, 2.35},
		{"negative midpoint rounds away from zero", -2.345, 2, -2.35},
		{"zero places half up", 2.5, 0, 3},
		{"zero places half negative", -2.5, 0, -3},
		{"three places", 3.14159, 3, 3.142},
		{"already rounded", 81.5, 2, 81.5},
		{"zero", 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.value, tt.places); got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestRound_Idempotent(t *testing.T) {
	values := []float64{0, 1.005, 2.345, -2.345, 83.0499999, 85.94999999999999, 1e6 / 3, -7.777777}
	for _, v := range values {
		for p := uint(0); p <= 6; p++ {
			once := Round(v, p)
			if twice := Round(once, p); twice != once {
				t.Errorf("Round(Round(%v, %d)) = %v, want %v", v, p, twice, once)
			}
		}
	}
}

func TestRoundDefault_UsesTwoPlaces(t *testing.T) {
	if got := RoundDefault(76.126); got != 76.13 {
		t.Errorf("RoundDefault(76.126) = %v, want 76.13", got)
	}
}

// --- Aggregate ---

func TestAggregate_FranceJapan(t *testing.T) {
	tbl := types.Table{
		"France": {All: 81.5, Male: 78.7, Female: 84.3},
		"Japan":  {All: 84.6, Male: 81.6, Female: 87.6},
	}
	got := Aggregate(tbl)
	want := types.CountryStatistic{All: 83.05, Male: 80.15, Female: 85.95}
	if got != want {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}

func TestAggregate_MatchesManualMean(t *testing.T) {
	tbl := types.Table{
		"A": {All: 70, Male: 68, Female: 72},
		"B": {All: 75, Male: 73, Female: 77.5},
		"C": {All: 80.2, Male: 78.1, Female: 82.3},
	}
	got := Aggregate(tbl)

	wantAll := Round((70+75+80.2)/3, 2)
	wantMale := Round((68+73+78.1)/3, 2)
	wantFemale := Round((72+77.5+82.3)/3, 2)
	if !almostEqual(got.All, wantAll, 1e-9) {
		t.Errorf("All = %v, want %v", got.All, wantAll)
	}
	if !almostEqual(got.Male, wantMale, 1e-9) {
		t.Errorf("Male = %v, want %v", got.Male, wantMale)
	}
	if !almostEqual(got.Female, wantFemale, 1e-9) {
		t.Errorf("Female = %v, want %v", got.Female, wantFemale)
	}
}

func TestAggregate_SingleEntry(t *testing.T) {
	tbl := types.Table{"Solo": {All: 71.234, Male: 69.999, Female: 73.5}}
	got := Aggregate(tbl)
	want := types.CountryStatistic{All: 71.23, Male: 70, Female: 73.5}
	if got != want {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}

func TestAggregate_EmptyIsNaN(t *testing.T) {
	got := Aggregate(types.Table{})
	if !math.IsNaN(got.All) || !math.IsNaN(got.Male) || !math.IsNaN(got.Female) {
		t.Errorf("Aggregate(empty) = %+v, want all NaN", got)
	}
}

// --- WithCommon ---

func TestWithCommon_InsertsAggregate(t *testing.T) {
	tbl := types.Table{
		"France": {All: 81.5, Male: 78.7, Female: 84.3},
		"Japan":  {All: 84.6, Male: 81.6, Female: 87.6},
	}
	out := WithCommon(tbl)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	common, ok := out.Common()
	if !ok {
		t.Fatal("Common entry missing")
	}
	if want := (types.CountryStatistic{All: 83.05, Male: 80.15, Female: 85.95}); common != want {
		t.Errorf("Common = %+v, want %+v", common, want)
	}
	if _, ok := tbl[types.CommonKey]; ok {
		t.Error("input table must not be mutated")
	}
}

func TestWithCommon_ReplacesStaleCommon(t *testing.T) {
	tbl := types.Table{
		"A":             {All: 60, Male: 58, Female: 62},
		"B":             {All: 80, Male: 78, Female: 82},
		types.CommonKey: {All: 1000, Male: 1000, Female: 1000},
	}
	common, _ := WithCommon(tbl).Common()
	if want := (types.CountryStatistic{All: 70, Male: 68, Female: 72}); common != want {
		t.Errorf("Common = %+v, want %+v", common, want)
	}
}
