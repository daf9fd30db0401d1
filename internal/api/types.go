package api

import "github.com/liveprogress/expectancy/pkg/types"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"` // "ok" | "empty"
	Source    string `json:"source,omitempty"`
	Countries int    `json:"countries"`
	UpdatedAt string `json:"updated_at,omitempty"` // RFC3339
}

// TableResponse is the payload for GET /api/v1/countries.
type TableResponse struct {
	Source    string      `json:"source"`
	UpdatedAt string      `json:"updated_at"` // RFC3339
	Countries types.Table `json:"countries"`
}

// CountryResponse is one entry in GET /api/v1/countries/{name} or
// GET /api/v1/common.
type CountryResponse struct {
	Country string  `json:"country"`
	All     float64 `json:"all"`
	Male    float64 `json:"male"`
	Female  float64 `json:"female"`
}

type errorResponse struct {
	Error string `json:"error"`
}
