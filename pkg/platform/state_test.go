package platform

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState()

	if got := s.Status(); got != StatusStarting {
		t.Errorf("expected status %q, got %q", StatusStarting, got)
	}
	if got := len(s.Components()); got != 0 {
		t.Errorf("expected empty components map, got %d entries", got)
	}
	if got := s.ChatSessions(); got != 0 {
		t.Errorf("expected 0 chat sessions, got %d", got)
	}
	if s.StartTime().IsZero() {
		t.Error("expected start time to be set")
	}
}

func TestState_SetStatus(t *testing.T) {
	s := NewState()

	s.SetStatus(StatusRunning)
	if got := s.Status(); got != StatusRunning {
		t.Errorf("expected status %q, got %q", StatusRunning, got)
	}

	s.SetStatus(StatusStopping)
	if got := s.Status(); got != StatusStopping {
		t.Errorf("expected status %q, got %q", StatusStopping, got)
	}
}

func TestState_Components(t *testing.T) {
	s := NewState()

	s.SetComponent(ComponentAPI, ConditionActive)
	s.SetComponent(ComponentFrontend, ConditionAvailable)
	s.SetComponent(ComponentOllama, "connected")

	condition, ok := s.Component(ComponentOllama)
	if !ok {
		t.Fatal("expected ollama component to be registered")
	}
	if condition != "connected" {
		t.Errorf("expected condition %q, got %q", "connected", condition)
	}

	if _, ok := s.Component(ComponentMockLLM); ok {
		t.Error("expected unregistered component to report ok=false")
	}

	components := s.Components()
	if len(components) != 3 {
		t.Errorf("expected 3 components, got %d", len(components))
	}
	if components[ComponentAPI] != ConditionActive {
		t.Errorf("expected api=%q, got %q", ConditionActive, components[ComponentAPI])
	}
}

func TestState_SetComponentReplaces(t *testing.T) {
	s := NewState()

	s.SetComponent(ComponentOllama, "disconnected")
	s.SetComponent(ComponentOllama, "connected")

	condition, _ := s.Component(ComponentOllama)
	if condition != "connected" {
		t.Errorf("expected replacement value %q, got %q", "connected", condition)
	}
	if got := len(s.Components()); got != 1 {
		t.Errorf("expected 1 component after replacement, got %d", got)
	}
}

func TestState_RemoveComponent(t *testing.T) {
	s := NewState()

	s.SetComponent(ComponentMockLLM, ConditionActive)
	s.RemoveComponent(ComponentMockLLM)

	if _, ok := s.Component(ComponentMockLLM); ok {
		t.Error("expected component to be removed")
	}

	// Removing an absent component is a no-op.
	s.RemoveComponent("never_registered")
}

func TestState_ComponentsCopyIsolation(t *testing.T) {
	s := NewState()
	s.SetComponent(ComponentAPI, ConditionActive)

	copied := s.Components()
	copied[ComponentAPI] = "mutated"
	copied["injected"] = "value"

	condition, _ := s.Component(ComponentAPI)
	if condition != ConditionActive {
		t.Errorf("mutating the returned map changed the state: got %q", condition)
	}
	if _, ok := s.Component("injected"); ok {
		t.Error("mutating the returned map injected a component into the state")
	}
}

func TestState_ChatSessions(t *testing.T) {
	s := NewState()

	for i := int64(1); i <= 5; i++ {
		if got := s.IncrementChatSessions(); got != i {
			t.Errorf("expected running total %d, got %d", i, got)
		}
	}
	if got := s.ChatSessions(); got != 5 {
		t.Errorf("expected 5 chat sessions, got %d", got)
	}
}

func TestState_Uptime(t *testing.T) {
	s := NewState()

	first := s.Uptime()
	second := s.Uptime()

	if first < 0 {
		t.Errorf("expected non-negative uptime, got %v", first)
	}
	if second < first {
		t.Errorf("expected uptime to be monotonic, got %v then %v", first, second)
	}
}

func TestState_Snapshot(t *testing.T) {
	s := NewState()
	s.SetStatus(StatusRunning)
	s.SetComponent(ComponentAPI, ConditionActive)
	s.SetComponent(ComponentOllama, "no_models")
	s.IncrementChatSessions()
	s.IncrementChatSessions()

	snap := s.Snapshot()

	if snap.Status != StatusRunning {
		t.Errorf("expected snapshot status %q, got %q", StatusRunning, snap.Status)
	}
	if len(snap.Components) != 2 {
		t.Errorf("expected 2 components in snapshot, got %d", len(snap.Components))
	}
	if snap.ChatSessions != 2 {
		t.Errorf("expected 2 chat sessions in snapshot, got %d", snap.ChatSessions)
	}
	if snap.Uptime < 0 {
		t.Errorf("expected non-negative uptime, got %v", snap.Uptime)
	}
	if !snap.StartTime.Equal(s.StartTime()) {
		t.Error("expected snapshot start time to match state start time")
	}

	// Later mutations must not show up in an already-taken snapshot.
	s.SetComponent(ComponentOllama, "connected")
	if snap.Components[ComponentOllama] != "no_models" {
		t.Errorf("snapshot changed after mutation: got %q", snap.Components[ComponentOllama])
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	s := NewState()

	const goroutines = 10
	const iterations = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			name := fmt.Sprintf("component-%d", id)
			for j := 0; j < iterations; j++ {
				s.SetComponent(name, ConditionActive)
				s.IncrementChatSessions()
				_ = s.Components()
				_ = s.Status()
				_ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if got := s.ChatSessions(); got != goroutines*iterations {
		t.Errorf("expected %d chat sessions, got %d", goroutines*iterations, got)
	}
	if got := len(s.Components()); got != goroutines {
		t.Errorf("expected %d components, got %d", goroutines, got)
	}
}
