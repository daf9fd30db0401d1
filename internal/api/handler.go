package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/liveprogress/expectancy/internal/metrics"
	"github.com/liveprogress/expectancy/internal/store"
	"github.com/liveprogress/expectancy/pkg/types"
)

// Handler is the HTTP handler for /api/v1/* and /metrics.
// It reads the current table from the in-memory store.
type Handler struct {
	mem *store.Memory
	mux *http.ServeMux
}

// New creates a Handler wired to mem and registers all routes.
func New(mem *store.Memory) http.Handler {
	h := &Handler{mem: mem, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/countries", h.listCountries)
	h.mux.HandleFunc("/api/v1/countries/", h.getCountry) // subtree, extracts {name}
	h.mux.HandleFunc("/api/v1/common", h.common)
	h.mux.HandleFunc("/metrics", h.metrics)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health. It answers 200 even with no table so
// liveness probes do not depend on the data source.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	e, ok := h.mem.Get()
	if !ok {
		jsonResp(w, http.StatusOK, HealthResponse{Status: "empty"})
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Source:    e.Source,
		Countries: len(e.Table.Countries()),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// listCountries returns GET /api/v1/countries, the whole table.
func (h *Handler) listCountries(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(w, r)
	if !ok {
		return
	}
	jsonResp(w, http.StatusOK, TableResponse{
		Source:    e.Source,
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
		Countries: e.Table,
	})
}

// getCountry returns GET /api/v1/countries/{name}.
func (h *Handler) getCountry(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/countries/")
	if name == "" {
		h.listCountries(w, r)
		return
	}
	e, ok := h.entry(w, r)
	if !ok {
		return
	}
	h.writeCountry(w, e.Table, name)
}

// common returns GET /api/v1/common.
func (h *Handler) common(w http.ResponseWriter, r *http.Request) {
	e, ok := h.entry(w, r)
	if !ok {
		return
	}
	h.writeCountry(w, e.Table, types.CommonKey)
}

// metrics returns GET /metrics in the Prometheus text format. With no table
// loaded the body is empty.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", string(metrics.Format))
	e, ok := h.mem.Get()
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := metrics.Write(w, e.Table); err != nil {
		slog.Warn("api: metrics write failed", "err", err)
	}
}

// --- helpers ----------------------------------------------------------------

// entry enforces GET and returns the loaded table, writing the error
// response itself when it returns false.
func (h *Handler) entry(w http.ResponseWriter, r *http.Request) (store.Entry, bool) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return store.Entry{}, false
	}
	e, ok := h.mem.Get()
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, "no data loaded")
		return store.Entry{}, false
	}
	return e, true
}

func (h *Handler) writeCountry(w http.ResponseWriter, t types.Table, name string) {
	s, ok := t[name]
	if !ok {
		jsonErr(w, http.StatusNotFound, "country not found")
		return
	}
	jsonResp(w, http.StatusOK, CountryResponse{Country: name, All: s.All, Male: s.Male, Female: s.Female})
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
