package frontend

import (
	"net/http"
	"testing"
)

func TestFilterRequestHeaders(t *testing.T) {
	src := http.Header{}
	src.Set("Host", "gateway.local")
	src.Set("Content-Length", "42")
	src.Set("Connection", "keep-alive")
	src.Set("Keep-Alive", "timeout=5")
	src.Set("Proxy-Authenticate", "Basic")
	src.Set("Proxy-Authorization", "Basic xyz")
	src.Set("TE", "trailers")
	src.Set("Trailers", "X-Checksum")
	src.Set("Transfer-Encoding", "chunked")
	src.Set("Upgrade", "websocket")
	src.Set("Content-Type", "application/json")
	src.Set("Authorization", "Bearer token")
	src.Set("Accept", "*/*")

	got := FilterRequestHeaders(src)

	dropped := []string{
		"Host", "Content-Length", "Connection", "Keep-Alive",
		"Proxy-Authenticate", "Proxy-Authorization", "TE", "Trailers",
		"Transfer-Encoding", "Upgrade",
	}
	for _, name := range dropped {
		if got.Get(name) != "" {
			t.Errorf("expected %s to be dropped, got %q", name, got.Get(name))
		}
	}

	kept := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer token",
		"Accept":        "*/*",
	}
	for name, want := range kept {
		if got.Get(name) != want {
			t.Errorf("expected %s=%q to be kept, got %q", name, want, got.Get(name))
		}
	}
}

func TestFilterRequestHeaders_CaseInsensitive(t *testing.T) {
	src := http.Header{
		"connection":        {"close"},
		"transfer-encoding": {"chunked"},
		"x-request-id":      {"abc"},
	}

	got := FilterRequestHeaders(src)

	if len(got["connection"]) != 0 || len(got["Connection"]) != 0 {
		t.Error("expected lowercase connection header to be dropped")
	}
	if len(got["transfer-encoding"]) != 0 {
		t.Error("expected lowercase transfer-encoding header to be dropped")
	}
	if len(got["x-request-id"]) == 0 {
		t.Error("expected x-request-id to be kept")
	}
}

func TestFilterRequestHeaders_PreservesMultipleValues(t *testing.T) {
	src := http.Header{}
	src.Add("X-Forwarded-For", "10.0.0.1")
	src.Add("X-Forwarded-For", "10.0.0.2")

	got := FilterRequestHeaders(src)

	values := got.Values("X-Forwarded-For")
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values[0] != "10.0.0.1" || values[1] != "10.0.0.2" {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestFilterRequestHeaders_DoesNotMutateSource(t *testing.T) {
	src := http.Header{}
	src.Set("Connection", "keep-alive")

	FilterRequestHeaders(src)

	if src.Get("Connection") != "keep-alive" {
		t.Error("source header map was mutated")
	}
}

func TestFilterResponseHeaders(t *testing.T) {
	src := http.Header{}
	src.Set("Content-Encoding", "gzip")
	src.Set("Transfer-Encoding", "chunked")
	src.Set("Connection", "keep-alive")
	src.Set("Content-Type", "text/html; charset=utf-8")
	src.Set("Cache-Control", "no-store")
	src.Add("Set-Cookie", "a=1")
	src.Add("Set-Cookie", "b=2")

	dst := http.Header{}
	FilterResponseHeaders(dst, src)

	for _, name := range []string{"Content-Encoding", "Transfer-Encoding", "Connection"} {
		if dst.Get(name) != "" {
			t.Errorf("expected %s to be dropped, got %q", name, dst.Get(name))
		}
	}

	if dst.Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("expected Content-Type kept, got %q", dst.Get("Content-Type"))
	}
	if dst.Get("Cache-Control") != "no-store" {
		t.Errorf("expected Cache-Control kept, got %q", dst.Get("Cache-Control"))
	}
	if cookies := dst.Values("Set-Cookie"); len(cookies) != 2 {
		t.Errorf("expected both Set-Cookie values kept, got %v", cookies)
	}
}
