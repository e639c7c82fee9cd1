package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// nativeChatRequest is the provider's wire format for a chat call.
// Stream is always false; streaming is accepted inbound but never honored.
type nativeChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  nativeOptions `json:"options"`
}

// nativeOptions carries the sampling parameters in the provider's shape.
type nativeOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// buildNativePayload translates an inbound request into the provider wire
// format. The model defaults per endpoint family; temperature and
// max_tokens default from configuration when the request omits them.
func (b *Bridge) buildNativePayload(req *ChatRequest, defaultModel string) ([]byte, string, error) {
	model := req.Model
	if model == "" {
		model = defaultModel
	}

	temperature := b.defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := b.defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	payload, err := json.Marshal(nativeChatRequest{
		Model:    model,
		Messages: req.Messages,
		Stream:   false,
		Options: nativeOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("encoding native chat request: %w", err)
	}
	return payload, model, nil
}

// extractAssistantText pulls the assistant content out of a native chat
// response body. The extraction is absent-safe: a valid body without
// message content yields an empty string. The second return value is
// false when the body is not valid JSON at all.
func extractAssistantText(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	return gjson.GetBytes(body, "message.content").String(), true
}
