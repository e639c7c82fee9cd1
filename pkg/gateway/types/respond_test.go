package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusCreated, map[string]string{"hello": "world"})
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded["hello"] != "world" {
		t.Errorf("body = %v", decoded)
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{"ch": make(chan int)}); err == nil {
		t.Error("expected an error for an unencodable value")
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteError(w, NewInvalidRequestError("bad input", "messages", CodeMissingField))
	if err != nil {
		t.Fatalf("WriteError failed: %v", err)
	}

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	var decoded ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded.Error.Message != "bad input" {
		t.Errorf("message = %q", decoded.Error.Message)
	}
	if decoded.Error.Type != ErrorTypeInvalidRequest {
		t.Errorf("type = %q", decoded.Error.Type)
	}
}

func TestWriteError_StatusFollowsType(t *testing.T) {
	tests := []struct {
		name string
		resp *ErrorResponse
		want int
	}{
		{"invalid request", NewInvalidRequestError("x", "", ""), http.StatusBadRequest},
		{"server error", NewServerError("x"), http.StatusInternalServerError},
		{"gateway timeout", NewGatewayTimeoutError("x"), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.resp); err != nil {
				t.Fatalf("WriteError failed: %v", err)
			}
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
