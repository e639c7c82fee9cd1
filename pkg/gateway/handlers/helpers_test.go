package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/behark/ai/pkg/audit"
	"github.com/behark/ai/pkg/bridge"
	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/providers"
	"github.com/behark/ai/pkg/sessions"
	"github.com/behark/ai/pkg/telemetry/metrics"
)

// stubProviders returns a fixed status snapshot.
type stubProviders struct {
	status providers.Status
}

func (s *stubProviders) Status() providers.Status { return s.status }

func connectedProviders() *stubProviders {
	return &stubProviders{status: providers.Status{
		State:      providers.StateConnected,
		Capability: providers.CapabilityNone,
		Models: []providers.ModelDescriptor{
			{ID: "llama3.1", Name: "Llama 3.1", Description: "General purpose model", Size: "7B"},
			{ID: "phi", Name: "Phi", Description: "Small model", Size: "3B"},
		},
		LastProbe: time.Now(),
	}}
}

// stubFrontend reports a fixed availability.
type stubFrontend struct {
	available bool
	baseURL   string
}

func (s *stubFrontend) Probe(_ context.Context) bool { return s.available }
func (s *stubFrontend) BaseURL() string              { return s.baseURL }

// stubBridge replays configured results and captures the request it saw.
type stubBridge struct {
	completeResp    *bridge.ChatResponse
	completeOutcome bridge.Outcome
	completeErr     error

	simpleResp    *bridge.SimpleResponse
	simpleStatus  int
	simpleOutcome bridge.Outcome
	simpleErr     error

	lastReq *bridge.ChatRequest
}

func (s *stubBridge) Complete(_ context.Context, req *bridge.ChatRequest) (*bridge.ChatResponse, bridge.Outcome, error) {
	s.lastReq = req
	if s.completeErr != nil {
		return nil, bridge.OutcomeInvalid, s.completeErr
	}
	return s.completeResp, s.completeOutcome, nil
}

func (s *stubBridge) SimpleChat(_ context.Context, req *bridge.ChatRequest) (*bridge.SimpleResponse, int, bridge.Outcome, error) {
	s.lastReq = req
	if s.simpleErr != nil {
		return nil, 400, bridge.OutcomeInvalid, s.simpleErr
	}
	return s.simpleResp, s.simpleStatus, s.simpleOutcome, nil
}

// captureAuditStore is an audit.Store that keeps records in arrival order.
type captureAuditStore struct {
	mu      sync.Mutex
	records []*audit.Record
}

func (s *captureAuditStore) Store(_ context.Context, record *audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *captureAuditStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

func (s *captureAuditStore) DeleteBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (s *captureAuditStore) DeleteOldest(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

func (s *captureAuditStore) Close() error { return nil }

func (s *captureAuditStore) all() []*audit.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*audit.Record, len(s.records))
	copy(out, s.records)
	return out
}

// waitForAudit polls until the store holds want records. The recorder
// writes asynchronously, so handler tests must wait before asserting.
func waitForAudit(t *testing.T, store *captureAuditStore, want int) []*audit.Record {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		records := store.all()
		if len(records) >= want {
			return records
		}
		time.Sleep(5 * time.Millisecond)
	}
	records := store.all()
	t.Fatalf("expected %d audit records, got %d", want, len(records))
	return records
}

// captureSessionStore is a sessions.Store that keeps sessions in arrival
// order. Saves are synchronous, so no waiting is needed.
type captureSessionStore struct {
	mu       sync.Mutex
	sessions []*sessions.Session
}

func (s *captureSessionStore) Save(_ context.Context, session *sessions.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *captureSessionStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sessions)), nil
}

func (s *captureSessionStore) Close() error { return nil }

func (s *captureSessionStore) all() []*sessions.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*sessions.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// stubCounter is a UsageCounter with a fixed answer.
type stubCounter struct {
	n   int64
	err error
}

func (s *stubCounter) Count(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.n, nil
}

var errCountBroken = errors.New("store unavailable")

// chatFixture bundles the dependencies and capture stores for chat
// handler tests.
type chatFixture struct {
	deps     ChatDeps
	bridge   *stubBridge
	audits   *captureAuditStore
	sessions *captureSessionStore
	state    *platform.State
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	auditStore := &captureAuditStore{}
	recorder := audit.NewRecorder(auditStore, config.RecorderConfig{}, nil)
	t.Cleanup(func() { recorder.Close() })

	sessionStore := &captureSessionStore{}
	tracker := sessions.NewTracker(sessionStore, nil)

	stub := &stubBridge{}
	state := platform.NewState()

	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "handlers",
	}, nil)

	return &chatFixture{
		deps: ChatDeps{
			Bridge:    stub,
			Providers: connectedProviders(),
			State:     state,
			Collector: collector,
			Recorder:  recorder,
			Tracker:   tracker,
		},
		bridge:   stub,
		audits:   auditStore,
		sessions: sessionStore,
		state:    state,
	}
}

// completionResponse builds a minimal successful bridge response.
func completionResponse(model, content string, promptTokens, completionTokens int) *bridge.ChatResponse {
	return &bridge.ChatResponse{
		ID:      "chatcmpl-test",
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []bridge.Choice{{
			Index:        0,
			Message:      bridge.ResponseMessage{Role: bridge.RoleAssistant, Content: content},
			FinishReason: bridge.FinishReasonStop,
		}},
		Usage: bridge.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}
}

// decodeBody unmarshals a recorder body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v\n%s", err, w.Body.String())
	}
	return decoded
}
