package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Frontend is an httptest-backed stand-in for the OpenWebUI upstream. The
// default handler reports the path and query it received in the
// X-Upstream-Path and X-Upstream-Query response headers and answers
// "frontend home", so proxy tests can verify prefix stripping without
// parsing bodies. Fixed payloads registered with SetAsset are served
// verbatim instead.
type Frontend struct {
	server *httptest.Server

	mu     sync.Mutex
	assets map[string]asset
}

type asset struct {
	contentType string
	body        []byte
}

// NewFrontend creates a frontend double with no registered assets.
func NewFrontend() *Frontend {
	f := &Frontend{assets: make(map[string]asset)}
	f.server = httptest.NewServer(http.HandlerFunc(f.handler))
	return f
}

// URL returns the double's base URL.
func (f *Frontend) URL() string {
	return f.server.URL
}

// Close shuts the double down.
func (f *Frontend) Close() {
	f.server.Close()
}

// SetAsset registers a fixed body served when the exact path is requested.
func (f *Frontend) SetAsset(path, contentType string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets[path] = asset{contentType: contentType, body: body}
}

func (f *Frontend) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	a, ok := f.assets[r.URL.Path]
	f.mu.Unlock()

	if ok {
		w.Header().Set("Content-Type", a.contentType)
		_, _ = w.Write(a.body)
		return
	}

	w.Header().Set("X-Upstream-Path", r.URL.Path)
	w.Header().Set("X-Upstream-Query", r.URL.RawQuery)
	io.WriteString(w, "frontend home")
}
