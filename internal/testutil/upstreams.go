// Package testutil provides httptest-backed doubles for the two upstreams
// the gateway talks to: the native provider API and the OpenWebUI frontend.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Server is a scriptable upstream double. Responses are registered per
// path; unregistered paths answer 404. Bodies are served as
// application/json unless Headers overrides the content type.
type Server struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	requests  int
}

// Response configures the reply served for one path.
type Response struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// NewServer creates an upstream double with no registered paths.
func NewServer() *Server {
	s := &Server{responses: make(map[string]Response)}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// NewOllama creates an upstream double preloaded with a healthy model
// listing (llama3.1 and phi) and a chat endpoint answering
// "Hello from the model".
func NewOllama() *Server {
	s := NewServer()
	s.Set("/api/tags", ModelListing("llama3.1", "phi"))
	s.Set("/api/chat", ChatReply("Hello from the model"))
	return s
}

// URL returns the double's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the double down. Requests sent afterwards fail at the
// transport, which is how tests simulate an unreachable provider.
func (s *Server) Close() {
	s.server.Close()
}

// Set registers the response for a path, replacing any previous one.
func (s *Server) Set(path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = resp
}

// Requests returns the number of requests received so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	resp, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	if resp.Body != "" && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
	}
}

// ModelListing builds a native model listing response. Sizes are
// synthetic; the gateway only reads the names.
func ModelListing(names ...string) Response {
	models := make([]map[string]interface{}, len(names))
	for i, name := range names {
		models[i] = map[string]interface{}{
			"name": name,
			"size": (i + 1) * 1024,
		}
	}
	return jsonResponse(http.StatusOK, map[string]interface{}{"models": models})
}

// ChatReply builds a successful native chat response carrying the given
// assistant text.
func ChatReply(content string) Response {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"message": map[string]interface{}{
			"role":    "assistant",
			"content": content,
		},
	})
}

// ChatError builds a native error response for the chat endpoint.
func ChatError(statusCode int, message string) Response {
	return jsonResponse(statusCode, map[string]interface{}{"error": message})
}

func jsonResponse(statusCode int, body interface{}) Response {
	data, _ := json.Marshal(body)
	return Response{StatusCode: statusCode, Body: string(data)}
}
