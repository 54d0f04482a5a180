package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/animecove/storefront-api/internal/services"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
)

// BuildInfo identifies the running binary in health payloads.
type BuildInfo struct {
	Version     string
	CommitSHA   string
	Environment string
	StartedAt   time.Time
}

// HealthHandlers serves the liveness and readiness endpoints.
type HealthHandlers struct {
	build   BuildInfo
	clock   func() time.Time
	catalog services.CatalogService
}

// HealthOption customises HealthHandlers construction.
type HealthOption func(*HealthHandlers)

// WithHealthBuildInfo attaches build metadata to health payloads.
func WithHealthBuildInfo(info BuildInfo) HealthOption {
	return func(h *HealthHandlers) {
		h.build = info
	}
}

// WithHealthClock overrides the time source, primarily for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthCatalogService wires the catalog service whose upstream pings
// back the readiness endpoint.
func WithHealthCatalogService(svc services.CatalogService) HealthOption {
	return func(h *HealthHandlers) {
		h.catalog = svc
	}
}

// NewHealthHandlers constructs the health endpoints.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		clock: time.Now,
	}
	if h.build.StartedAt.IsZero() {
		h.build.StartedAt = time.Now()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Healthz reports process liveness with build metadata.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	payload := map[string]any{
		"status":    healthStatusOK,
		"timestamp": now.UTC().Format(time.RFC3339),
	}
	if !h.build.StartedAt.IsZero() {
		payload["uptime"] = now.Sub(h.build.StartedAt).String()
	}
	if h.build.Version != "" {
		payload["version"] = h.build.Version
	}
	if h.build.CommitSHA != "" {
		payload["commitSha"] = h.build.CommitSHA
	}
	if h.build.Environment != "" {
		payload["environment"] = h.build.Environment
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Latency   string `json:"latency"`
	CheckedAt string `json:"checkedAt"`
}

// Readyz pings every configured upstream source and reports aggregate
// readiness. Any failing source degrades the response to 503.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	payload := map[string]any{
		"status":    healthStatusOK,
		"timestamp": now.UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if h.catalog != nil {
		checks := make(map[string]readinessCheck)
		details := make([]string, 0)

		start := h.clock()
		results := h.catalog.CheckSources(r.Context())
		latency := h.clock().Sub(start)

		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			check := readinessCheck{
				Status:    healthStatusOK,
				Latency:   latency.String(),
				CheckedAt: now.UTC().Format(time.RFC3339),
			}
			if err := results[name]; err != nil {
				check.Status = healthStatusDegraded
				check.Error = err.Error()
				details = append(details, name+": "+err.Error())
			}
			checks[name] = check
		}

		payload["checks"] = checks
		payload["details"] = details
		if len(details) > 0 {
			payload["status"] = healthStatusDegraded
			status = http.StatusServiceUnavailable
		}
	}

	writeJSONResponse(w, status, payload)
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
