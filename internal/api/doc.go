// Package api implements the HTTP API of the serve command.
//
// New(memory) returns an http.Handler that serves:
//
//	GET /api/v1/health           whether a table is loaded, its source and size
//	GET /api/v1/countries        the full table plus source and load time
//	GET /api/v1/countries/{name} one country; 404 if unknown
//	GET /api/v1/common           the Common aggregate; 404 if absent
//	GET /metrics                 Prometheus text exposition of the table
//
// JSON endpoints respond with Content-Type: application/json and return 405
// for non-GET methods and 503 while no table has been loaded.
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
