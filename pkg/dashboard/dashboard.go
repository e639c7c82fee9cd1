// Package dashboard renders the platform's own HTML pages: the status
// page served at the root when the frontend is unreachable and the
// meta-refresh page that lands /chat on the frontend.
package dashboard

import (
	"bytes"
	"net/http"
	"strings"
)

// StatusData carries the live numbers shown on the status page.
type StatusData struct {
	Status            string
	Uptime            float64
	ComponentCount    int
	ModelCount        int
	FrontendAvailable bool
	OllamaState       string
	TradingEnabled    bool
}

// StatusTitle returns the platform status in display form.
func (d StatusData) StatusTitle() string {
	return title(d.Status)
}

// OllamaTitle returns the Ollama component state in display form.
func (d StatusData) OllamaTitle() string {
	return title(d.OllamaState)
}

// title upper-cases each underscore-separated word for display, so
// "degraded_error" reads "Degraded Error".
func title(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Renderer writes the dashboard pages. The chat redirect always points
// at the root of the configured frontend base URL.
type Renderer struct {
	chatTarget string
}

// NewRenderer creates a renderer targeting the given frontend base URL.
func NewRenderer(frontendBaseURL string) *Renderer {
	return &Renderer{
		chatTarget: strings.TrimSuffix(frontendBaseURL, "/") + "/",
	}
}

// ChatTarget returns the URL the /chat page refreshes to.
func (r *Renderer) ChatTarget() string {
	return r.chatTarget
}

// WriteStatus renders the status page. The page is built in memory first
// so a render failure never leaves a half-written response.
func (r *Renderer) WriteStatus(w http.ResponseWriter, data StatusData) error {
	var buf bytes.Buffer
	if err := statusPage.Execute(&buf, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteChatRedirect renders the page that immediately refreshes to the
// frontend root.
func (r *Renderer) WriteChatRedirect(w http.ResponseWriter) error {
	var buf bytes.Buffer
	if err := chatRedirectPage.Execute(&buf, struct{ Target string }{r.chatTarget}); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}
