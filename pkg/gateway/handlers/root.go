package handlers

import (
	"net/http"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/dashboard"
	"github.com/behark/ai/pkg/frontend"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// RootHandler serves the platform entry point. When the chat frontend
// answers a probe the visitor is redirected to it; otherwise a locally
// rendered status page stands in, so the root URL is useful in every
// deployment state.
type RootHandler struct {
	frontend  FrontendProber
	providers ProviderManager
	state     *platform.State
	renderer  *dashboard.Renderer
	platform  config.PlatformConfig
	logger    *logging.Logger
}

// NewRootHandler creates the entry point handler.
func NewRootHandler(prober FrontendProber, pm ProviderManager, state *platform.State, renderer *dashboard.Renderer, platformCfg config.PlatformConfig, logger *logging.Logger) *RootHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RootHandler{
		frontend:  prober,
		providers: pm,
		state:     state,
		renderer:  renderer,
		platform:  platformCfg,
		logger:    logger,
	}
}

// ServeHTTP implements http.Handler. The handler owns the mux's catch-all
// pattern, so any path nothing else matched lands here and turns into 404.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	available := h.frontend.Probe(r.Context())
	if available {
		http.Redirect(w, r, frontend.MountPrefix, http.StatusTemporaryRedirect)
		return
	}

	snap := h.state.Snapshot()
	status := h.providers.Status()

	data := dashboard.StatusData{
		Status:            snap.Status,
		Uptime:            snap.Uptime.Seconds(),
		ComponentCount:    len(snap.Components),
		ModelCount:        len(status.Models),
		FrontendAvailable: available,
		OllamaState:       status.State.String(),
		TradingEnabled:    h.platform.TradingEnabled,
	}

	if err := h.renderer.WriteStatus(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "rendering status page failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ChatPageHandler serves the /chat convenience page: a meta-refresh
// document pointing the browser at the frontend's own root.
type ChatPageHandler struct {
	renderer *dashboard.Renderer
	logger   *logging.Logger
}

// NewChatPageHandler creates the chat redirect page handler.
func NewChatPageHandler(renderer *dashboard.Renderer, logger *logging.Logger) *ChatPageHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ChatPageHandler{renderer: renderer, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *ChatPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.renderer.WriteChatRedirect(w); err != nil {
		h.logger.ErrorContext(r.Context(), "rendering chat redirect failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
