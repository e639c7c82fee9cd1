package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/gateway/types"
)

// validDimensions are the consciousness dimensions accepted by the expand
// endpoint, in the order they are reported.
var validDimensions = []string{"creative", "analytical", "emotional", "intuitive"}

// ConsciousnessStateHandler reports the fixed consciousness readout. The
// values are part of the platform's public surface and deliberately static;
// no consciousness engine backs them.
type ConsciousnessStateHandler struct{}

// NewConsciousnessStateHandler creates the consciousness state handler.
func NewConsciousnessStateHandler() *ConsciousnessStateHandler {
	return &ConsciousnessStateHandler{}
}

// ServeHTTP implements http.Handler.
func (h *ConsciousnessStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"awareness_level": 0.7,
		"emotional_state": map[string]interface{}{
			"confidence": 0.8,
			"curiosity":  0.6,
			"stability":  0.9,
		},
		"dimensions": map[string]interface{}{
			"creative":   0.6,
			"analytical": 0.8,
			"emotional":  0.7,
			"intuitive":  0.5,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// ConsciousnessExpandHandler acknowledges a dimension expansion request.
// Parameters arrive in the query string: dimension names one of
// validDimensions, amount is a number in [0, 1].
type ConsciousnessExpandHandler struct{}

// NewConsciousnessExpandHandler creates the consciousness expand handler.
func NewConsciousnessExpandHandler() *ConsciousnessExpandHandler {
	return &ConsciousnessExpandHandler{}
}

// ServeHTTP implements http.Handler.
func (h *ConsciousnessExpandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errResp := types.NewInvalidRequestError(
			fmt.Sprintf("Method %s not allowed. Use POST instead.", r.Method),
			"method",
			"method_not_allowed",
		)
		_ = types.WriteError(w, errResp)
		return
	}

	query := r.URL.Query()

	dimension := query.Get("dimension")
	if !containsString(validDimensions, dimension) {
		errResp := types.NewInvalidRequestError(
			"dimension must be one of: creative, analytical, emotional, intuitive",
			"dimension",
			types.CodeInvalidValue,
		)
		_ = types.WriteError(w, errResp)
		return
	}

	amount, err := strconv.ParseFloat(query.Get("amount"), 64)
	if err != nil {
		errResp := types.NewInvalidRequestError("amount must be a number", "amount", types.CodeInvalidValue)
		_ = types.WriteError(w, errResp)
		return
	}
	if amount < 0.0 || amount > 1.0 {
		errResp := types.NewInvalidRequestError("amount must be between 0.0 and 1.0", "amount", types.CodeInvalidValue)
		_ = types.WriteError(w, errResp)
		return
	}

	response := map[string]interface{}{
		"success":   true,
		"dimension": dimension,
		"amount":    amount,
		"message":   fmt.Sprintf("Expanded %s by %v", dimension, amount),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// AgentsHandler reports the agent registry. No agent runtime ships with
// the gateway, so the registry is always empty.
type AgentsHandler struct{}

// NewAgentsHandler creates the agent listing handler.
func NewAgentsHandler() *AgentsHandler {
	return &AgentsHandler{}
}

// ServeHTTP implements http.Handler.
func (h *AgentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"total_agents": 0,
		"agents":       map[string]interface{}{},
		"timestamp":    time.Now().Format(time.RFC3339),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// MemoryStatsHandler reports memory statistics. The total is backed by the
// audit store; the per-type breakdown is a fixed shape with no memory
// subsystem behind it.
type MemoryStatsHandler struct {
	memories UsageCounter
}

// NewMemoryStatsHandler creates the memory statistics handler. The counter
// may be nil; the total then reads zero.
func NewMemoryStatsHandler(memories UsageCounter) *MemoryStatsHandler {
	return &MemoryStatsHandler{memories: memories}
}

// ServeHTTP implements http.Handler.
func (h *MemoryStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"total_memories": countOrZero(r, h.memories),
		"memory_types": map[string]interface{}{
			"semantic":   0,
			"episodic":   0,
			"procedural": 0,
			"working":    0,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// TradingStatusHandler reports the trading configuration. Positions and
// profit are fixed empty values; no trading engine ships with the gateway.
type TradingStatusHandler struct {
	platform config.PlatformConfig
}

// NewTradingStatusHandler creates the trading status handler.
func NewTradingStatusHandler(platformCfg config.PlatformConfig) *TradingStatusHandler {
	return &TradingStatusHandler{platform: platformCfg}
}

// ServeHTTP implements http.Handler.
func (h *TradingStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"trading_enabled": h.platform.TradingEnabled,
		"trading_mode":    h.platform.TradingMode,
		"risk_level":      h.platform.TradingRiskLevel,
		"positions":       []interface{}{},
		"pnl":             0.0,
		"timestamp":       time.Now().Format(time.RFC3339),
	}

	_ = types.WriteJSON(w, http.StatusOK, response)
}

// containsString checks if a slice contains a string.
func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
