package logging

import (
	"context"
	"testing"
)

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithProvider(ctx, "ollama")
	ctx = WithModel(ctx, "llama3.1")
	ctx = WithSession(ctx, "sess-9")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"request ID", GetRequestID(ctx), "req-1"},
		{"provider", GetProvider(ctx), "ollama"},
		{"model", GetModel(ctx), "llama3.1"},
		{"session", GetSession(ctx), "sess-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestContextAccessors_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, 42)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty string for non-string value, got %q", got)
	}
}

func TestExtractContextFields(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		fields := extractContextFields(context.Background())
		if len(fields) != 0 {
			t.Errorf("expected no fields, got %v", fields)
		}
	})

	t.Run("partial fields", func(t *testing.T) {
		ctx := WithModel(context.Background(), "phi")
		fields := extractContextFields(ctx)
		if len(fields) != 2 {
			t.Fatalf("expected 2 elements, got %d: %v", len(fields), fields)
		}
		if fields[0] != "model" || fields[1] != "phi" {
			t.Errorf("unexpected fields: %v", fields)
		}
	})

	t.Run("all fields in stable order", func(t *testing.T) {
		ctx := context.Background()
		ctx = WithSession(ctx, "s")
		ctx = WithRequestID(ctx, "r")
		ctx = WithModel(ctx, "m")
		ctx = WithProvider(ctx, "p")

		fields := extractContextFields(ctx)
		want := []any{"request_id", "r", "provider", "p", "model", "m", "session_id", "s"}
		if len(fields) != len(want) {
			t.Fatalf("expected %d elements, got %d: %v", len(want), len(fields), fields)
		}
		for i := range want {
			if fields[i] != want[i] {
				t.Errorf("element %d: expected %v, got %v", i, want[i], fields[i])
			}
		}
	})
}
