package handlers

import (
	"net/http"

	"github.com/behark/ai/pkg/gateway/types"
	"github.com/behark/ai/pkg/platform"
)

// OpenWebUIStatusHandler reports the frontend integration view.
// Availability comes from a live probe of the frontend base URL, so the
// answer reflects what the reverse proxy would actually reach.
type OpenWebUIStatusHandler struct {
	frontend  FrontendProber
	providers ProviderManager
	state     *platform.State
}

// NewOpenWebUIStatusHandler creates the frontend integration status handler.
func NewOpenWebUIStatusHandler(prober FrontendProber, pm ProviderManager, state *platform.State) *OpenWebUIStatusHandler {
	return &OpenWebUIStatusHandler{frontend: prober, providers: pm, state: state}
}

// ServeHTTP implements http.Handler.
func (h *OpenWebUIStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	available := h.frontend.Probe(r.Context())
	status := h.providers.Status()

	integrationStatus, ok := h.state.Component(platform.ComponentOpenWebUI)
	if !ok {
		integrationStatus = "not_found"
	}

	ollamaStatus, ok := h.state.Component(platform.ComponentOllama)
	if !ok {
		ollamaStatus = platform.ConditionUnknown
	}

	response := map[string]interface{}{
		"available":          available,
		"frontend_available": available,
		"integration_status": integrationStatus,
		"models_available":   len(status.Models),
		"ollama_status":      ollamaStatus,
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}
