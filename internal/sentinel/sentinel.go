// Package sentinel holds the error values shared across the acquisition
// pipeline. Call sites wrap these with ewrap so errors.Is keeps working on
// the returned chain.
package sentinel

import "github.com/hyp3rd/ewrap"

var (
	// ErrNetwork is returned when the source page could not be retrieved.
	ErrNetwork = ewrap.New("network error")

	// ErrTableNotFound is returned when the page has fewer matching tables
	// than the selector index requires, or the table has no body.
	ErrTableNotFound = ewrap.New("table not found")

	// ErrRowShape is returned in strict mode for a country row with fewer
	// than four cells.
	ErrRowShape = ewrap.New("malformed table row")

	// ErrNumericParse is returned when a statistic cell is not a number.
	ErrNumericParse = ewrap.New("numeric parse error")

	// ErrEmptyTable is returned when a fetched table yields no countries.
	ErrEmptyTable = ewrap.New("empty table")

	// ErrDeserialization is returned for malformed cache or default data.
	ErrDeserialization = ewrap.New("deserialization error")

	// ErrInvalidValue is returned when a table entry is NaN, infinite or
	// negative and so cannot be persisted.
	ErrInvalidValue = ewrap.New("invalid statistic value")

	// ErrFilesystem is returned when reading or writing a data file fails.
	ErrFilesystem = ewrap.New("filesystem error")
)
