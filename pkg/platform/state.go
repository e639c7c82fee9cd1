// Package platform tracks the live operational view of the gateway:
// lifecycle status, per-component condition, and counters surfaced by the
// health and status endpoints. A single *State is created at startup and
// injected into every component that reports or reads it.
package platform

import (
	"sync"
	"sync/atomic"
	"time"
)

// Platform lifecycle status values.
const (
	StatusStarting = "starting"
	StatusRunning  = "running"
	StatusStopping = "stopping"
)

// Component names tracked in the components map.
const (
	ComponentAPI           = "api"
	ComponentConsciousness = "consciousness"
	ComponentAgents        = "agents"
	ComponentFrontend      = "frontend"
	ComponentOpenWebUI     = "openwebui_frontend"
	ComponentOllama        = "ollama"
	ComponentOpenAI        = "openai"
	ComponentMockLLM       = "mock_llm"
)

// Component condition values written at startup. The "ollama" component
// carries the connection manager's state string instead (see pkg/providers).
const (
	ConditionActive    = "active"
	ConditionAvailable = "available"
	ConditionProxied   = "proxied"
	ConditionFallback  = "fallback"
	ConditionUnknown   = "unknown"
)

// State holds the mutable platform view. All methods are safe for
// concurrent use: the components map and status are guarded by an RWMutex,
// the session counter is atomic.
type State struct {
	// startTime is fixed at construction and never changes
	startTime time.Time

	// chatSessions counts chat requests served since process start
	chatSessions atomic.Int64

	// mu protects status and components
	mu         sync.RWMutex
	status     string
	components map[string]string
}

// Snapshot is a point-in-time copy of the platform view, safe to read
// without locks.
type Snapshot struct {
	// Status is the lifecycle status (starting, running, stopping)
	Status string

	// StartTime is when the state was created
	StartTime time.Time

	// Uptime is the elapsed time since StartTime
	Uptime time.Duration

	// Components maps component name to its condition string
	Components map[string]string

	// ChatSessions is the number of chat requests served since start
	ChatSessions int64
}

// NewState creates a platform state in the "starting" status with an empty
// components map. Callers register components as they come up.
func NewState() *State {
	return &State{
		startTime:  time.Now(),
		status:     StatusStarting,
		components: make(map[string]string),
	}
}

// SetStatus updates the lifecycle status.
func (s *State) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Status returns the current lifecycle status.
func (s *State) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetComponent records the condition of a named component, replacing any
// previous value.
func (s *State) SetComponent(name, condition string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[name] = condition
}

// RemoveComponent deletes a component from the map. Used when a capability
// is withdrawn, for example a fallback provider after a successful re-probe.
func (s *State) RemoveComponent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.components, name)
}

// Component returns the condition of a named component. The second return
// value is false if the component was never registered.
func (s *State) Component(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	condition, ok := s.components[name]
	return condition, ok
}

// Components returns a copy of the components map. Mutating the returned
// map does not affect the state.
func (s *State) Components() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.components))
	for name, condition := range s.components {
		out[name] = condition
	}
	return out
}

// IncrementChatSessions bumps the chat session counter and returns the new
// total.
func (s *State) IncrementChatSessions() int64 {
	return s.chatSessions.Add(1)
}

// ChatSessions returns the number of chat requests served since start.
func (s *State) ChatSessions() int64 {
	return s.chatSessions.Load()
}

// StartTime returns when the state was created.
func (s *State) StartTime() time.Time {
	return s.startTime
}

// Uptime returns the elapsed time since the state was created.
func (s *State) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Snapshot returns a point-in-time copy of the full platform view.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	components := make(map[string]string, len(s.components))
	for name, condition := range s.components {
		components[name] = condition
	}

	return Snapshot{
		Status:       s.status,
		StartTime:    s.startTime,
		Uptime:       time.Since(s.startTime),
		Components:   components,
		ChatSessions: s.chatSessions.Load(),
	}
}
