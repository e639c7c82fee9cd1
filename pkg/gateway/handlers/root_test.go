package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/dashboard"
	"github.com/behark/ai/pkg/platform"
)

func newRootHandler(available bool) *RootHandler {
	return NewRootHandler(
		&stubFrontend{available: available, baseURL: "http://localhost:8080"},
		connectedProviders(),
		platform.NewState(),
		dashboard.NewRenderer("http://localhost:8080"),
		config.PlatformConfig{TradingMode: "simulation"},
		nil,
	)
}

func TestRootHandler_RedirectsWhenFrontendUp(t *testing.T) {
	handler := newRootHandler(true)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/ui" {
		t.Errorf("Location = %q, want /ui", loc)
	}
}

func TestRootHandler_StatusPageWhenFrontendDown(t *testing.T) {
	handler := newRootHandler(false)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "AI Behar Platform") {
		t.Error("expected the status page body")
	}
	if strings.Contains(w.Body.String(), "Start Chatting") {
		t.Error("chat buttons must not render while the frontend is down")
	}
}

func TestRootHandler_StrayPath404(t *testing.T) {
	handler := newRootHandler(true)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRootHandler_MethodNotAllowed(t *testing.T) {
	handler := newRootHandler(true)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestChatPageHandler(t *testing.T) {
	handler := NewChatPageHandler(dashboard.NewRenderer("http://localhost:8080"), nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http://localhost:8080/") {
		t.Error("expected the refresh target in the page")
	}
	if !strings.Contains(w.Body.String(), "Redirecting to OpenWebUI Chat") {
		t.Error("expected the redirect page body")
	}
}

func TestChatPageHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatPageHandler(dashboard.NewRenderer("http://localhost:8080"), nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
