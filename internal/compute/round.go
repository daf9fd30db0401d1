package compute

import "math"

// DefaultPlaces is the number of decimal places derived figures keep.
const DefaultPlaces = 2

// Round rounds value to places decimal places, with midpoints rounded away
// from zero. Place values beyond ~15 lose meaning to float64 precision.
func Round(value float64, places uint) float64 {
	base := math.Pow(10, float64(places))
	return math.Round(value*base) / base
}

// RoundDefault is Round with DefaultPlaces.
func RoundDefault(value float64) float64 {
	return Round(value, DefaultPlaces)
}
