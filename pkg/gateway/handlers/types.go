package handlers

import (
	"context"

	"github.com/behark/ai/pkg/audit"
	"github.com/behark/ai/pkg/bridge"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/providers"
	"github.com/behark/ai/pkg/sessions"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/telemetry/metrics"
)

// ProviderManager is the view of the provider chain the handlers need.
// *providers.Manager satisfies it.
type ProviderManager interface {
	Status() providers.Status
}

// FrontendProber checks whether the proxied chat frontend is reachable.
// *frontend.Proxy satisfies it.
type FrontendProber interface {
	Probe(ctx context.Context) bool
	BaseURL() string
}

// ChatBridge translates between the gateway's chat surfaces and the
// provider's native format. *bridge.Bridge satisfies it.
type ChatBridge interface {
	Complete(ctx context.Context, req *bridge.ChatRequest) (*bridge.ChatResponse, bridge.Outcome, error)
	SimpleChat(ctx context.Context, req *bridge.ChatRequest) (*bridge.SimpleResponse, int, bridge.Outcome, error)
}

// UsageCounter reports how many entries a store holds. *audit.Recorder and
// *sessions.Tracker satisfy it.
type UsageCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ChatDeps bundles the collaborators shared by the chat handlers. Recorder
// and Tracker may be nil when the respective subsystem is disabled.
type ChatDeps struct {
	Bridge    ChatBridge
	Providers ProviderManager
	State     *platform.State
	Collector *metrics.Collector
	Recorder  *audit.Recorder
	Tracker   *sessions.Tracker
	Logger    *logging.Logger
}
