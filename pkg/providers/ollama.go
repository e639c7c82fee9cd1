package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/upstream"
)

// ProviderName identifies the primary provider in errors, metrics labels,
// and the platform components map.
const ProviderName = "ollama"

// Default timeouts applied when the configuration leaves them zero.
const (
	defaultProbeTimeout = 5 * time.Second
	defaultChatTimeout  = 60 * time.Second
)

// Client is a thin HTTP client for the Ollama API. It covers the two calls
// the gateway makes: the model listing used by the connection probe and the
// native chat endpoint used by the format bridge.
//
// The client never follows redirects; a redirecting provider URL is treated
// as whatever status the redirect response carries.
type Client struct {
	baseURL      string
	probeTimeout time.Duration
	chatTimeout  time.Duration
	forwarder    *upstream.Forwarder
	logger       *logging.Logger
}

// ChatResult is the outcome of a native chat call that produced an HTTP
// response. Error statuses are carried here, not returned as errors; the
// caller decides what a non-200 means.
type ChatResult struct {
	// StatusCode is the upstream HTTP status
	StatusCode int

	// Body is the full response body
	Body []byte
}

// NewClient creates an Ollama client from configuration.
func NewClient(cfg config.OllamaConfig, logger *logging.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &ConfigError{
			Provider: ProviderName,
			Field:    "base_url",
			Message:  "must not be empty",
		}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	chatTimeout := cfg.ChatTimeout
	if chatTimeout <= 0 {
		chatTimeout = defaultChatTimeout
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		probeTimeout: probeTimeout,
		chatTimeout:  chatTimeout,
		forwarder:    upstream.NewForwarder(upstream.Options{}),
		logger:       logger,
	}, nil
}

// BaseURL returns the configured provider base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels fetches the provider's model listing and converts it to
// descriptors. A reachable provider with no models returns an empty slice
// and no error.
//
// Error classes: *upstream.TransportError for unreachable hosts,
// *TimeoutError when the probe deadline is exceeded, *ProviderError for
// non-200 statuses, *ParseError for malformed listing bodies.
func (c *Client) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	c.logger.DebugContext(ctx, "listing provider models", "provider", ProviderName, "base_url", c.baseURL)

	resp, err := c.forwarder.Forward(ctx, upstream.Request{
		BaseURL: c.baseURL,
		Path:    "/api/tags",
		Method:  http.MethodGet,
		Timeout: c.probeTimeout,
	})
	if err != nil {
		return nil, c.classifyTransport(err, c.probeTimeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Provider: ProviderName,
			Message:  "reading model listing body",
			Cause:    err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Message:    "model listing failed",
		}
	}

	return parseModelListing(body)
}

// Chat posts a native chat payload and returns the upstream status and
// body. The payload must already be the provider's wire format; this
// client does not inspect it.
func (c *Client) Chat(ctx context.Context, payload []byte) (*ChatResult, error) {
	c.logger.DebugContext(ctx, "sending native chat request", "provider", ProviderName, "bytes", len(payload))

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	resp, err := c.forwarder.Forward(ctx, upstream.Request{
		BaseURL:       c.baseURL,
		Path:          "/api/chat",
		Method:        http.MethodPost,
		Header:        header,
		Body:          bytes.NewReader(payload),
		ContentLength: int64(len(payload)),
		Timeout:       c.chatTimeout,
	})
	if err != nil {
		return nil, c.classifyTransport(err, c.chatTimeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{
			Provider: ProviderName,
			Message:  "reading chat response body",
			Cause:    err,
		}
	}

	return &ChatResult{StatusCode: resp.StatusCode, Body: body}, nil
}

// Close releases the client's pooled connections.
func (c *Client) Close() {
	c.forwarder.Close()
}

// classifyTransport turns a deadline-driven transport failure into a
// TimeoutError and passes every other transport error through.
func (c *Client) classifyTransport(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: ProviderName, Timeout: timeout, Cause: err}
	}
	return err
}

// parseModelListing converts a native /api/tags body into descriptors.
// A listing without a "models" key counts as empty, matching a provider
// that answers 200 with no models installed.
func parseModelListing(body []byte) ([]ModelDescriptor, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ParseError{
			Provider:    ProviderName,
			RawResponse: truncateRaw(body),
			Cause:       errors.New("invalid JSON in model listing"),
		}
	}

	listing := gjson.GetBytes(body, "models")
	if !listing.Exists() {
		return []ModelDescriptor{}, nil
	}
	if !listing.IsArray() {
		return nil, &ParseError{
			Provider:    ProviderName,
			RawResponse: truncateRaw(body),
			Cause:       errors.New(`"models" is not an array`),
		}
	}

	entries := listing.Array()
	models := make([]ModelDescriptor, 0, len(entries))
	for i, entry := range entries {
		name := entry.Get("name")
		if !name.Exists() || name.String() == "" {
			return nil, &ParseError{
				Provider:    ProviderName,
				RawResponse: truncateRaw(body),
				Cause:       fmt.Errorf("model entry %d has no name", i),
			}
		}

		// The provider reports size as a byte count; keep it as the
		// provider spelled it rather than formatting it.
		sizeField := "Unknown"
		sizeText := "Unknown size"
		if size := entry.Get("size"); size.Exists() {
			sizeField = size.String()
			sizeText = size.String()
		}

		models = append(models, ModelDescriptor{
			ID:          name.String(),
			Name:        name.String(),
			Description: "Ollama model - " + sizeText,
			Size:        sizeField,
		})
	}
	return models, nil
}

// truncateRaw bounds the raw body captured in parse errors.
func truncateRaw(body []byte) string {
	const maxRaw = 512
	if len(body) > maxRaw {
		return string(body[:maxRaw]) + "..."
	}
	return string(body)
}
