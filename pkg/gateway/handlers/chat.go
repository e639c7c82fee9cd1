package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/behark/ai/pkg/audit"
	"github.com/behark/ai/pkg/bridge"
	"github.com/behark/ai/pkg/gateway/types"
	"github.com/behark/ai/pkg/sessions"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// MaxRequestBodySize is the maximum allowed chat request body size (10MB).
const MaxRequestBodySize = 10 * 1024 * 1024

// CompletionsHandler serves the OpenAI-compatible chat completion flow.
// Provider failures never surface here: the bridge degrades them to a
// templated completion returned with HTTP 200, and only the recorded
// outcome tells the paths apart.
type CompletionsHandler struct {
	route string
	deps  ChatDeps
}

// NewCompletionsHandler creates a completion handler bound to one route.
// The route string is used as the endpoint label in metrics and audit
// records, so the two completion routes get separate handlers.
func NewCompletionsHandler(route string, deps ChatDeps) *CompletionsHandler {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &CompletionsHandler{route: route, deps: deps}
}

// ServeHTTP implements http.Handler.
func (h *CompletionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	ctx := r.Context()

	if !requirePost(w, r) {
		return
	}

	req, errResp := decodeChatRequest(r)
	if errResp != nil {
		_ = types.WriteError(w, errResp)
		h.deps.recordInvalid(ctx, h.route, "", errResp.Error.Message, time.Since(startTime))
		return
	}

	resp, outcome, err := h.deps.Bridge.Complete(ctx, req)
	if err != nil {
		message := writeValidationError(w, err)
		h.deps.recordInvalid(ctx, h.route, req.Model, message, time.Since(startTime))
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, resp)

	latency := time.Since(startTime)
	h.deps.Logger.InfoContext(ctx, "chat completion served",
		"route", h.route,
		"model", resp.Model,
		"outcome", outcome.String(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"latency_ms", latency.Milliseconds(),
	)

	h.deps.recordServed(ctx, served{
		route:           h.route,
		model:           resp.Model,
		outcome:         outcome,
		statusCode:      http.StatusOK,
		latency:         latency,
		promptWords:     resp.Usage.PromptTokens,
		completionWords: resp.Usage.CompletionTokens,
	})
}

// SimpleChatHandler serves the native-format chat flow. Unlike the
// completion flow, provider failures surface to the client: error statuses
// pass through unchanged and transport failures map to 502, both with the
// templated fallback body.
type SimpleChatHandler struct {
	route string
	deps  ChatDeps
}

// NewSimpleChatHandler creates a simple chat handler bound to one route.
func NewSimpleChatHandler(route string, deps ChatDeps) *SimpleChatHandler {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &SimpleChatHandler{route: route, deps: deps}
}

// ServeHTTP implements http.Handler.
func (h *SimpleChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	ctx := r.Context()

	if !requirePost(w, r) {
		return
	}

	req, errResp := decodeChatRequest(r)
	if errResp != nil {
		_ = types.WriteError(w, errResp)
		h.deps.recordInvalid(ctx, h.route, "", errResp.Error.Message, time.Since(startTime))
		return
	}

	resp, statusCode, outcome, err := h.deps.Bridge.SimpleChat(ctx, req)
	if err != nil {
		message := writeValidationError(w, err)
		h.deps.recordInvalid(ctx, h.route, req.Model, message, time.Since(startTime))
		return
	}

	_ = types.WriteJSON(w, statusCode, resp)

	latency := time.Since(startTime)
	h.deps.Logger.InfoContext(ctx, "chat reply served",
		"route", h.route,
		"model", resp.Model,
		"outcome", outcome.String(),
		"status", statusCode,
		"latency_ms", latency.Milliseconds(),
	)

	h.deps.recordServed(ctx, served{
		route:           h.route,
		model:           resp.Model,
		outcome:         outcome,
		statusCode:      statusCode,
		latency:         latency,
		promptWords:     wordCount(req.LastMessage().Content),
		completionWords: wordCount(resp.Response),
		errText:         resp.Error,
	})
}

// requirePost rejects non-POST methods with the OpenAI error envelope.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		errResp := types.NewInvalidRequestError(
			fmt.Sprintf("Method %s not allowed. Use POST instead.", r.Method),
			"method",
			"method_not_allowed",
		)
		_ = types.WriteError(w, errResp)
		return false
	}
	return true
}

// decodeChatRequest reads and decodes a chat request body. A nil error
// response means the request decoded cleanly; field-level validation is
// left to the bridge.
func decodeChatRequest(r *http.Request) (*bridge.ChatRequest, *types.ErrorResponse) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize))
	if err != nil {
		return nil, types.NewInvalidRequestError("failed to read request body", "body", types.CodeInvalidValue)
	}

	if len(body) >= MaxRequestBodySize {
		return nil, types.NewInvalidRequestError(
			fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxRequestBodySize),
			"body",
			types.CodeRequestTooLarge,
		)
	}

	var req bridge.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, types.NewInvalidRequestError(
			fmt.Sprintf("invalid JSON: %v", err),
			"body",
			types.CodeInvalidJSON,
		)
	}

	return &req, nil
}

// writeValidationError writes the envelope for a bridge validation failure
// and returns the message for recording.
func writeValidationError(w http.ResponseWriter, err error) string {
	var valErr *bridge.ValidationError
	if errors.As(err, &valErr) {
		param, code := validationParamCode(valErr)
		_ = types.WriteError(w, types.NewInvalidRequestError(valErr.Message, param, code))
		return valErr.Message
	}

	_ = types.WriteError(w, types.NewInvalidRequestError(err.Error(), "", types.CodeInvalidValue))
	return err.Error()
}

// validationParamCode picks the envelope param and code for a validation
// failure. Absent fields report missing_field, out-of-range values report
// invalid_value.
func validationParamCode(err *bridge.ValidationError) (string, string) {
	if err.Field == "messages" || strings.HasSuffix(err.Field, ".role") {
		return err.Field, types.CodeMissingField
	}
	return err.Field, types.CodeInvalidValue
}

// wordCount approximates the bridge's whitespace word accounting for the
// native flow, which carries no usage block of its own.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// served carries the facts recorded after a chat reply is written.
type served struct {
	route           string
	model           string
	outcome         bridge.Outcome
	statusCode      int
	latency         time.Duration
	promptWords     int
	completionWords int
	errText         string
}

// recordServed writes the metric, audit, and session entries for a chat
// request that produced a reply, fallback or not.
func (d *ChatDeps) recordServed(ctx context.Context, s served) {
	if d.Collector != nil {
		d.Collector.RecordChatRequest(s.route, s.model, s.outcome.String(), s.latency)
		if s.outcome.Fallback() {
			d.Collector.RecordChatFallback(s.route, s.outcome.String())
		}
		d.Collector.RecordChatTokens(s.model, s.promptWords, s.completionWords)
	}

	if d.Recorder != nil {
		d.Recorder.Record(&audit.Record{
			RequestID:        logging.GetRequestID(ctx),
			Endpoint:         s.route,
			Model:            s.model,
			ProviderState:    d.Providers.Status().State.String(),
			Outcome:          s.outcome.String(),
			Fallback:         s.outcome.Fallback(),
			StatusCode:       s.statusCode,
			Latency:          s.latency,
			PromptTokens:     s.promptWords,
			CompletionTokens: s.completionWords,
			TotalTokens:      s.promptWords + s.completionWords,
			Error:            s.errText,
		})
	}

	if d.Tracker != nil {
		d.Tracker.Track(ctx, &sessions.Session{
			Endpoint:        s.route,
			Model:           s.model,
			PromptWords:     s.promptWords,
			CompletionWords: s.completionWords,
			Success:         !s.outcome.Fallback(),
		})
	}

	if d.State != nil {
		d.State.IncrementChatSessions()
	}
}

// recordInvalid writes the metric and audit entries for a request rejected
// before any provider call. Rejected requests do not count as chat
// sessions.
func (d *ChatDeps) recordInvalid(ctx context.Context, route, model, errText string, latency time.Duration) {
	if d.Collector != nil {
		d.Collector.RecordChatRequest(route, model, bridge.OutcomeInvalid.String(), latency)
	}

	if d.Recorder != nil {
		d.Recorder.Record(&audit.Record{
			RequestID:     logging.GetRequestID(ctx),
			Endpoint:      route,
			Model:         model,
			ProviderState: d.Providers.Status().State.String(),
			Outcome:       bridge.OutcomeInvalid.String(),
			StatusCode:    http.StatusBadRequest,
			Latency:       latency,
			Error:         errText,
		})
	}
}
