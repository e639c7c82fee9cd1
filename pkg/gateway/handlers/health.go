package handlers

import (
	"net/http"
	"time"

	"github.com/behark/ai/pkg/gateway/types"
	"github.com/behark/ai/pkg/platform"
)

// HealthHandler serves the liveness view of the platform: always 200, with
// the component map and model count attached so probes double as a cheap
// status check.
type HealthHandler struct {
	state     *platform.State
	providers ProviderManager
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(state *platform.State, pm ProviderManager) *HealthHandler {
	return &HealthHandler{state: state, providers: pm}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.state.Snapshot()
	status := h.providers.Status()

	response := map[string]interface{}{
		"status":               "healthy",
		"uptime_seconds":       snap.Uptime.Seconds(),
		"timestamp":            time.Now().Format(time.RFC3339),
		"platform_status":      snap.Status,
		"components":           snap.Components,
		"llm_models_available": len(status.Models),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// StatusHandler serves the platform summary: identity, lifecycle status,
// components, and the counters backed by the audit and session stores.
type StatusHandler struct {
	state     *platform.State
	providers ProviderManager
	memories  UsageCounter
	sessions  UsageCounter
}

// NewStatusHandler creates a new status handler. The counters may be nil;
// the corresponding fields then read zero.
func NewStatusHandler(state *platform.State, pm ProviderManager, memories, sessions UsageCounter) *StatusHandler {
	return &StatusHandler{state: state, providers: pm, memories: memories, sessions: sessions}
}

// ServeHTTP implements http.Handler.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.state.Snapshot()
	status := h.providers.Status()

	response := map[string]interface{}{
		"platform":       platform.ProductName,
		"version":        platform.ProductVersion,
		"status":         snap.Status,
		"uptime":         snap.Uptime.Seconds(),
		"components":     snap.Components,
		"agent_count":    0,
		"memory_entries": countOrZero(r, h.memories),
		"llm_models":     len(status.Models),
		"chat_sessions":  countOrZero(r, h.sessions),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// countOrZero reads a store counter, treating a missing store or a count
// failure as zero. Status reporting never fails on a storage error.
func countOrZero(r *http.Request, counter UsageCounter) int64 {
	if counter == nil {
		return 0
	}
	n, err := counter.Count(r.Context())
	if err != nil {
		return 0
	}
	return n
}
