package handlers

import (
	"net/http"
	"time"

	"github.com/behark/ai/pkg/gateway/types"
	"github.com/behark/ai/pkg/platform"
)

// ModelsHandler serves the OpenAI-compatible model listing consumed by
// OpenWebUI. The listing is never empty: when the provider is down it
// carries the fallback descriptor.
type ModelsHandler struct {
	providers ProviderManager
}

// NewModelsHandler creates a new model listing handler.
func NewModelsHandler(pm ProviderManager) *ModelsHandler {
	return &ModelsHandler{providers: pm}
}

// ServeHTTP implements http.Handler.
func (h *ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.providers.Status()
	created := time.Now().Unix()

	entries := make([]map[string]interface{}, 0, len(status.Models))
	for _, model := range status.Models {
		entries = append(entries, map[string]interface{}{
			"id":         model.ID,
			"object":     "model",
			"created":    created,
			"owned_by":   "ollama",
			"permission": []interface{}{},
			"root":       model.ID,
			"parent":     nil,
		})
	}

	_ = types.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": entries})
}

// AvailableModelsHandler serves the detailed model listing with the
// provider connection state attached.
type AvailableModelsHandler struct {
	providers ProviderManager
	state     *platform.State
}

// NewAvailableModelsHandler creates a new detailed model listing handler.
func NewAvailableModelsHandler(pm ProviderManager, state *platform.State) *AvailableModelsHandler {
	return &AvailableModelsHandler{providers: pm, state: state}
}

// ServeHTTP implements http.Handler.
func (h *AvailableModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.providers.Status()

	ollamaStatus, ok := h.state.Component(platform.ComponentOllama)
	if !ok {
		ollamaStatus = platform.ConditionUnknown
	}

	response := map[string]interface{}{
		"models":        status.Models,
		"total":         len(status.Models),
		"ollama_status": ollamaStatus,
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}
