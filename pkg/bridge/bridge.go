package bridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/providers"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// fallbackTemplate is the canned assistant reply served when the provider
// cannot answer. The wording is part of the public contract; clients match
// on it to detect degraded replies.
const fallbackTemplate = "I'm the AI Behar Platform consciousness. I received your message: '%s'. The LLM service might be unavailable, but I'm here to help with platform operations, consciousness expansion, and agent coordination."

// fallbackModelName is echoed on failed simple replies when the request
// named no model.
const fallbackModelName = "fallback"

// fallbackCompletionTokens is the fixed completion count reported with
// templated fallback replies.
const fallbackCompletionTokens = 50

// Outcome classifies how a chat call resolved. Handlers use it to pick
// metric labels and audit fields without re-deriving the failure class.
type Outcome int

const (
	// OutcomeSuccess is a translated reply from the provider.
	OutcomeSuccess Outcome = iota
	// OutcomeUpstreamStatus is a provider reply with a non-200 status.
	OutcomeUpstreamStatus
	// OutcomeTransport covers unreachable providers, timeouts, and
	// unparseable reply bodies.
	OutcomeTransport
	// OutcomeInvalid is a request rejected before any provider call.
	OutcomeInvalid
)

// String returns the label form of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUpstreamStatus:
		return "upstream_status"
	case OutcomeTransport:
		return "transport"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Fallback reports whether the outcome produced a templated reply.
func (o Outcome) Fallback() bool {
	return o == OutcomeUpstreamStatus || o == OutcomeTransport
}

// ChatCaller sends an encoded native chat payload to the primary provider.
// *providers.Manager satisfies it.
type ChatCaller interface {
	Chat(ctx context.Context, payload []byte) (*providers.ChatResult, error)
}

// Bridge translates between the OpenAI-compatible chat surface and the
// provider's native format. It is safe for concurrent use.
type Bridge struct {
	caller ChatCaller
	logger *logging.Logger

	defaultModel       string
	simpleDefaultModel string
	defaultTemperature float64
	defaultMaxTokens   int
}

// New creates a Bridge backed by caller. Zero-value config fields fall
// back to the stock defaults.
func New(cfg *config.BridgeConfig, caller ChatCaller, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.NewNop()
	}
	b := &Bridge{
		caller:             caller,
		logger:             logger,
		defaultModel:       cfg.DefaultModel,
		simpleDefaultModel: cfg.SimpleDefaultModel,
		defaultTemperature: cfg.DefaultTemperature,
		defaultMaxTokens:   cfg.DefaultMaxTokens,
	}
	if b.defaultModel == "" {
		b.defaultModel = "llama3.1"
	}
	if b.simpleDefaultModel == "" {
		b.simpleDefaultModel = "phi"
	}
	if b.defaultTemperature == 0 {
		b.defaultTemperature = 0.7
	}
	if b.defaultMaxTokens <= 0 {
		b.defaultMaxTokens = 2048
	}
	return b
}

// Complete serves the OpenAI-compatible completion flow. Provider failures
// of any kind degrade to a templated completion returned as a normal
// reply; the Outcome records which path was taken. The only error returned
// is a *ValidationError for a request rejected before the provider call.
func (b *Bridge) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, OutcomeInvalid, err
	}
	last := req.LastMessage().Content

	payload, model, err := b.buildNativePayload(req, b.defaultModel)
	if err != nil {
		b.logger.ErrorContext(ctx, "encoding chat payload failed, serving fallback", "model", model, "error", err)
		return b.fallbackCompletion(last, model), OutcomeTransport, nil
	}

	result, err := b.caller.Chat(ctx, payload)
	if err != nil {
		b.logger.WarnContext(ctx, "chat provider unreachable, serving fallback", "model", model, "error", err)
		return b.fallbackCompletion(last, model), OutcomeTransport, nil
	}
	if result.StatusCode != http.StatusOK {
		b.logger.WarnContext(ctx, "chat provider returned error status, serving fallback", "model", model, "status", result.StatusCode)
		return b.fallbackCompletion(last, model), OutcomeUpstreamStatus, nil
	}

	content, ok := extractAssistantText(result.Body)
	if !ok {
		b.logger.WarnContext(ctx, "chat provider returned malformed body, serving fallback", "model", model)
		return b.fallbackCompletion(last, model), OutcomeTransport, nil
	}

	return &ChatResponse{
		ID:      newCompletionID(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{{
			Index:        0,
			Message:      ResponseMessage{Role: RoleAssistant, Content: content},
			FinishReason: FinishReasonStop,
		}},
		Usage: wordUsage(last, content),
	}, OutcomeSuccess, nil
}

// SimpleChat serves the native-format chat flow. Unlike Complete, provider
// failures surface to the caller: an error status from the provider
// propagates unchanged, and transport failures map to 502 Bad Gateway,
// both with a templated fallback body. The returned status is the HTTP
// status the handler should write.
func (b *Bridge) SimpleChat(ctx context.Context, req *ChatRequest) (*SimpleResponse, int, Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, http.StatusBadRequest, OutcomeInvalid, err
	}
	last := req.LastMessage().Content

	payload, model, err := b.buildNativePayload(req, b.simpleDefaultModel)
	if err != nil {
		b.logger.ErrorContext(ctx, "encoding chat payload failed", "model", model, "error", err)
		return b.simpleFallback(req.Model, last, err.Error()), http.StatusBadGateway, OutcomeTransport, nil
	}

	result, err := b.caller.Chat(ctx, payload)
	if err != nil {
		b.logger.WarnContext(ctx, "chat provider unreachable", "model", model, "error", err)
		return b.simpleFallback(req.Model, last, err.Error()), http.StatusBadGateway, OutcomeTransport, nil
	}
	if result.StatusCode != http.StatusOK {
		b.logger.WarnContext(ctx, "chat provider returned error status", "model", model, "status", result.StatusCode)
		errText := fmt.Sprintf("provider returned status %d", result.StatusCode)
		return b.simpleFallback(req.Model, last, errText), result.StatusCode, OutcomeUpstreamStatus, nil
	}

	content, ok := extractAssistantText(result.Body)
	if !ok {
		b.logger.WarnContext(ctx, "chat provider returned malformed body", "model", model)
		return b.simpleFallback(req.Model, last, "provider returned a malformed response body"), http.StatusBadGateway, OutcomeTransport, nil
	}

	return &SimpleResponse{
		Response:  content,
		Model:     model,
		Timestamp: time.Now().Format(time.RFC3339),
		Success:   true,
	}, http.StatusOK, OutcomeSuccess, nil
}

// fallbackCompletion builds the templated completion served when the
// provider cannot answer. It reports the fixed completion token count.
func (b *Bridge) fallbackCompletion(last, model string) *ChatResponse {
	prompt := wordCount(last)
	return &ChatResponse{
		ID:      newCompletionID(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{{
			Index:        0,
			Message:      ResponseMessage{Role: RoleAssistant, Content: fmt.Sprintf(fallbackTemplate, last)},
			FinishReason: FinishReasonStop,
		}},
		Usage: Usage{
			PromptTokens:     prompt,
			CompletionTokens: fallbackCompletionTokens,
			TotalTokens:      prompt + fallbackCompletionTokens,
		},
	}
}

// simpleFallback builds the failure body for the native-format flow. It
// echoes the model named by the request, not the resolved default, so a
// request that named none reports "fallback".
func (b *Bridge) simpleFallback(requestedModel, last, errText string) *SimpleResponse {
	model := requestedModel
	if model == "" {
		model = fallbackModelName
	}
	return &SimpleResponse{
		Response:  fmt.Sprintf(fallbackTemplate, last),
		Model:     model,
		Timestamp: time.Now().Format(time.RFC3339),
		Success:   false,
		Error:     errText,
	}
}

// newCompletionID derives a completion identifier from the current time.
func newCompletionID() string {
	return fmt.Sprintf("chatcmpl-%d", time.Now().UnixNano())
}

// wordCount approximates token counts by splitting on whitespace. Existing
// callers depend on word-based counts, so this must not switch to a real
// tokenizer.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// wordUsage counts the final prompt message and the completion.
func wordUsage(prompt, completion string) Usage {
	p := wordCount(prompt)
	c := wordCount(completion)
	return Usage{PromptTokens: p, CompletionTokens: c, TotalTokens: p + c}
}
