// Package expectancy returns life expectancy by country without the caller
// knowing where the numbers come from.
//
// GetData walks a fixed fallback chain:
//
//  1. the cache file, if it exists and is a regular file;
//  2. the source web page, whose parsed table gains a Common entry and is
//     written to the cache before being returned;
//  3. the bundled default dataset.
//
// Only failures of step 2 are swallowed; they are reported to the Observer
// and the chain moves on. A corrupt cache, a failed cache write, or a
// missing default file is returned to the caller.
package expectancy
