package bridge

import "fmt"

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FinishReasonStop is the only finish reason this gateway emits; it has
// no notion of truncation versus natural stop.
const FinishReasonStop = "stop"

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is the author of the message (system, user, assistant)
	Role string `json:"role"`

	// Content is the text content of the message
	Content string `json:"content"`
}

// ChatRequest is the inbound chat request accepted by both chat endpoint
// families. It matches the OpenAI chat request shape for the fields this
// gateway honors.
type ChatRequest struct {
	// Model is the model to use. Optional; each endpoint family applies
	// its own default.
	Model string `json:"model"`

	// Messages is the conversation history. Must not be empty.
	Messages []ChatMessage `json:"messages"`

	// Stream is accepted for compatibility but never honored; responses
	// are always whole.
	Stream bool `json:"stream"`

	// Temperature controls randomness (0.0 to 2.0). Optional.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate. Optional.
	MaxTokens *int `json:"max_tokens,omitempty"`
}

// Validate checks that required fields are present and values are within
// acceptable ranges.
func (r *ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return &ValidationError{
			Field:   "messages",
			Message: "messages must contain at least one message",
		}
	}

	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 2.0) {
		return &ValidationError{
			Field:   "temperature",
			Message: "temperature must be between 0.0 and 2.0",
		}
	}

	if r.MaxTokens != nil && *r.MaxTokens < 1 {
		return &ValidationError{
			Field:   "max_tokens",
			Message: "max_tokens must be greater than 0",
		}
	}

	for i, msg := range r.Messages {
		if msg.Role == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("messages[%d].role", i),
				Message: "message role is required",
			}
		}
	}

	return nil
}

// LastMessage returns the final message in the conversation. Call only
// after Validate has passed.
func (r *ChatRequest) LastMessage() ChatMessage {
	return r.Messages[len(r.Messages)-1]
}

// ChatResponse is an OpenAI-compatible chat completion response.
type ChatResponse struct {
	// ID is a unique identifier for the chat completion
	ID string `json:"id"`

	// Object is always "chat.completion"
	Object string `json:"object"`

	// Created is the Unix timestamp (seconds) of when the completion was
	// created
	Created int64 `json:"created"`

	// Model is the model that served the completion
	Model string `json:"model"`

	// Choices is the list of completion choices (always exactly one)
	Choices []Choice `json:"choices"`

	// Usage contains the word-count token approximation
	Usage Usage `json:"usage"`
}

// Choice represents a single completion choice.
type Choice struct {
	// Index is the index of this choice
	Index int `json:"index"`

	// Message is the generated message
	Message ResponseMessage `json:"message"`

	// FinishReason is always "stop"; the gateway has no notion of
	// truncation
	FinishReason string `json:"finish_reason"`
}

// ResponseMessage is the assistant message inside a choice.
type ResponseMessage struct {
	// Role is always "assistant"
	Role string `json:"role"`

	// Content is the generated text
	Content string `json:"content"`
}

// Usage contains token usage statistics. Counts are whitespace word
// counts of the respective texts, not tokenizer counts; existing callers
// depend on this approximation.
type Usage struct {
	// PromptTokens is the word count of the final request message
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the word count of the assistant text
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the sum of the two
	TotalTokens int `json:"total_tokens"`
}

// SimpleResponse is the native-format reply served by the simple chat
// endpoint.
type SimpleResponse struct {
	// Response is the assistant text, or the templated fallback
	Response string `json:"response"`

	// Model is the model echo; "fallback" when a failed request named none
	Model string `json:"model"`

	// Timestamp is when the reply was produced (RFC 3339)
	Timestamp string `json:"timestamp"`

	// Success is false when the reply is a fallback
	Success bool `json:"success"`

	// Error describes the upstream failure on fallback replies
	Error string `json:"error,omitempty"`
}

// ValidationError represents a chat request validation error.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}
