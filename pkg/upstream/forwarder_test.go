package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestForwarder_Forward(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/chat" {
			t.Errorf("expected path /api/chat, got %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("expected X-Custom header, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"q":1}` {
			t.Errorf("unexpected body: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"a":2}`))
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	defer f.Close()
	header := http.Header{}
	header.Set("X-Custom", "value")

	resp, err := f.Forward(context.Background(), Request{
		BaseURL: server.URL,
		Path:    "/api/chat",
		Method:  http.MethodPost,
		Header:  header,
		Body:    strings.NewReader(`{"q":1}`),
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"a":2}` {
		t.Errorf("unexpected response body: %s", body)
	}
}

func TestForwarder_Forward_EmptyPathHitsBareBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("expected bare root request, got %s", r.URL.Path)
		}
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Forward(context.Background(), Request{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	resp.Body.Close()
}

func TestForwarder_Forward_QueryPassedVerbatim(t *testing.T) {
	const rawQuery = "b=2&a=%2Fui&a=x"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != rawQuery {
			t.Errorf("expected query %q, got %q", rawQuery, r.URL.RawQuery)
		}
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Forward(context.Background(), Request{
		BaseURL: server.URL,
		Path:    "/search",
		Query:   rawQuery,
	})
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	resp.Body.Close()
}

func TestForwarder_Forward_DefaultsToGET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Forward(context.Background(), Request{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	resp.Body.Close()
}

func TestForwarder_Forward_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewForwarder(Options{})
	_, err := f.Forward(context.Background(), Request{BaseURL: url, Path: "/api/tags", Timeout: time.Second})
	if err == nil {
		t.Fatal("expected error for unreachable upstream")
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if terr.Target != url+"/api/tags" {
		t.Errorf("expected target %q in error, got %q", url+"/api/tags", terr.Target)
	}
	if terr.Cause == nil {
		t.Error("expected a cause in the transport error")
	}
}

func TestForwarder_Forward_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	_, err := f.Forward(context.Background(), Request{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
}

func TestForwarder_Forward_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Forward(context.Background(), Request{BaseURL: server.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("expected response for 500 status, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
}

func TestForwarder_RedirectPolicy(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusTemporaryRedirect)
	}))
	defer redirecting.Close()

	t.Run("probe forwarder returns the redirect itself", func(t *testing.T) {
		f := NewForwarder(Options{FollowRedirects: false})
		resp, err := f.Forward(context.Background(), Request{BaseURL: redirecting.URL, Timeout: time.Second})
		if err != nil {
			t.Fatalf("Forward returned error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusTemporaryRedirect {
			t.Errorf("expected 307, got %d", resp.StatusCode)
		}
	})

	t.Run("proxy forwarder follows the redirect", func(t *testing.T) {
		f := NewForwarder(Options{FollowRedirects: true})
		resp, err := f.Forward(context.Background(), Request{BaseURL: redirecting.URL, Timeout: time.Second})
		if err != nil {
			t.Fatalf("Forward returned error: %v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if string(body) != "landed" {
			t.Errorf("expected redirect to be followed, got status %d body %q", resp.StatusCode, body)
		}
	})
}

func TestForwarder_Forward_TimeoutCoversBodyRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("late"))
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Forward(context.Background(), Request{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	defer resp.Body.Close()

	if _, err := io.ReadAll(resp.Body); err == nil {
		t.Error("expected body read to fail once the deadline passed")
	}
}

func TestForwarder_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("expected /api/tags, got %s", r.URL.Path)
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewForwarder(Options{})
	resp, err := f.Get(context.Background(), server.URL, "/api/tags", time.Second)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestForwarder_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	f := NewForwarder(Options{})
	_, err := f.Forward(ctx, Request{BaseURL: server.URL})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}
