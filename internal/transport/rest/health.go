package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// subscriberCounter reports how many live subscribers the bus holds and
// how many it accepts.
type subscriberCounter interface {
	Subscribers() int
	Capacity() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	subs    subscriberCounter
	version string
}

// NewHealthHandler creates a HealthHandler. subs may be nil.
func NewHealthHandler(db dbPinger, subs subscriberCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, subs: subs, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health pings the database with latency measurement and reports
// notification fan-out load. A full subscriber registry is reported as
// "full" without failing the check: REST traffic is unaffected, only new
// /ws clients are turned away.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overall := "ok"

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: "down"}
		overall = "down"
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	if h.subs != nil {
		n, capacity := h.subs.Subscribers(), h.subs.Capacity()
		comp := CompStatus{Status: "ok", Detail: fmt.Sprintf("%d/%d subscribers", n, capacity)}
		if n >= capacity {
			comp.Status = "full"
		}
		components["notifications"] = comp
	}

	status := http.StatusOK
	if overall != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
