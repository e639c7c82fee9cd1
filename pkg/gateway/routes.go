package gateway

import (
	"net/http"

	"github.com/behark/ai/pkg/frontend"
	"github.com/behark/ai/pkg/gateway/handlers"
	"github.com/behark/ai/pkg/gateway/middleware"
)

// Route patterns. The table below is the complete HTTP surface; routes are
// registered once in setupRoutes and never change at runtime.
const (
	routeRoot                = "/"
	routeChatPage            = "/chat"
	routeHealth              = "/health"
	routeStatus              = "/status"
	routeModels              = "/api/models"
	routeModelsV1            = "/api/v1/models"
	routeModelsAvailable     = "/api/models/available"
	routeSimpleChat          = "/api/chat"
	routeChatCompletions     = "/api/chat/completions"
	routeChatCompletionsV1   = "/api/v1/chat/completions"
	routeConsciousnessState  = "/consciousness/state"
	routeConsciousnessExpand = "/consciousness/expand"
	routeAgents              = "/agents"
	routeMemoryStats         = "/memory/stats"
	routeTradingStatus       = "/trading/status"
	routeOpenWebUIStatus     = "/openwebui/status"
)

// setupRoutes builds the route table and wraps it in the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Optional recording subsystems arrive as concrete pointers; assign
	// them to the interface only when present so handlers see a nil
	// interface, not a typed nil.
	var memories handlers.UsageCounter
	if s.deps.Recorder != nil {
		memories = s.deps.Recorder
	}
	var chatSessions handlers.UsageCounter
	if s.deps.Tracker != nil {
		chatSessions = s.deps.Tracker
	}

	chatDeps := handlers.ChatDeps{
		Bridge:    s.deps.Bridge,
		Providers: s.deps.Providers,
		State:     s.deps.State,
		Collector: s.deps.Collector,
		Recorder:  s.deps.Recorder,
		Tracker:   s.deps.Tracker,
		Logger:    s.deps.Logger,
	}

	// Landing pages.
	s.handle(mux, routeRoot, handlers.NewRootHandler(s.deps.Frontend, s.deps.Providers, s.deps.State, s.renderer, s.config.Platform, s.deps.Logger))
	s.handle(mux, routeChatPage, handlers.NewChatPageHandler(s.renderer, s.deps.Logger))

	// Health and status.
	s.handle(mux, routeHealth, handlers.NewHealthHandler(s.deps.State, s.deps.Providers))
	s.handle(mux, routeStatus, handlers.NewStatusHandler(s.deps.State, s.deps.Providers, memories, chatSessions))

	// Model listings.
	modelsHandler := handlers.NewModelsHandler(s.deps.Providers)
	s.handle(mux, routeModels, modelsHandler)
	s.handle(mux, routeModelsV1, modelsHandler)
	s.handle(mux, routeModelsAvailable, handlers.NewAvailableModelsHandler(s.deps.Providers, s.deps.State))

	// Chat. Each route gets its own handler so metrics and audit records
	// carry the endpoint the client actually called.
	s.handle(mux, routeChatCompletions, handlers.NewCompletionsHandler(routeChatCompletions, chatDeps))
	s.handle(mux, routeChatCompletionsV1, handlers.NewCompletionsHandler(routeChatCompletionsV1, chatDeps))
	s.handle(mux, routeSimpleChat, handlers.NewSimpleChatHandler(routeSimpleChat, chatDeps))

	// Platform surface.
	s.handle(mux, routeConsciousnessState, handlers.NewConsciousnessStateHandler())
	s.handle(mux, routeConsciousnessExpand, handlers.NewConsciousnessExpandHandler())
	s.handle(mux, routeAgents, handlers.NewAgentsHandler())
	s.handle(mux, routeMemoryStats, handlers.NewMemoryStatsHandler(memories))
	s.handle(mux, routeTradingStatus, handlers.NewTradingStatusHandler(s.config.Platform))
	s.handle(mux, routeOpenWebUIStatus, handlers.NewOpenWebUIStatusHandler(s.deps.Frontend, s.deps.Providers, s.deps.State))

	// Frontend proxy. Both the bare prefix and the subtree map to the
	// proxy; it records its own metrics, so no per-route wrapper here.
	mux.Handle(frontend.MountPrefix, s.deps.Frontend)
	mux.Handle(frontend.MountPrefix+"/", s.deps.Frontend)

	if s.config.Telemetry.Metrics.Enabled && s.deps.Collector != nil {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.deps.Collector.Handler())
	}

	// Middleware chain, innermost first. A request passes through
	// recovery, logging, request ID assignment, CORS, and the timeout
	// before reaching the mux.
	var handler http.Handler = mux
	handler = middleware.TimeoutMiddleware(s.config.Server.RequestTimeout)(handler)
	handler = middleware.CORSMiddleware(s.convertCORSConfig())(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(s.deps.Logger)(handler)
	handler = middleware.RecoveryMiddleware(s.deps.Logger)(handler)

	return handler
}

// handle registers a handler with per-route metrics instrumentation. The
// route pattern doubles as the metrics label, keeping label cardinality
// bounded by the route table.
func (s *Server) handle(mux *http.ServeMux, route string, handler http.Handler) {
	mux.Handle(route, middleware.MetricsMiddleware(s.deps.Collector, route)(handler))
}

// convertCORSConfig maps the configuration's CORS settings onto the
// middleware's own config type.
func (s *Server) convertCORSConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:          s.config.Server.CORS.Enabled,
		AllowedOrigins:   s.config.Server.CORS.AllowedOrigins,
		AllowedMethods:   s.config.Server.CORS.AllowedMethods,
		AllowedHeaders:   s.config.Server.CORS.AllowedHeaders,
		ExposedHeaders:   s.config.Server.CORS.ExposedHeaders,
		MaxAge:           s.config.Server.CORS.MaxAge,
		AllowCredentials: s.config.Server.CORS.AllowCredentials,
	}
}
