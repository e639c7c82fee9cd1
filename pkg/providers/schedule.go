package providers

import (
	"context"

	"github.com/robfig/cron/v3"
)

// StartReprobe schedules periodic probe cycles using the configured cron
// expression. An empty expression disables periodic re-probing. The
// schedule stops when the context is cancelled or StopReprobe is called.
//
// Common expressions:
//   - "@every 5m"  - every five minutes
//   - "0 * * * *"  - on the hour
func (m *Manager) StartReprobe(ctx context.Context) error {
	spec := m.cfg.Ollama.ReprobeSchedule
	if spec == "" {
		m.logger.Info("periodic re-probe not configured", "provider", ProviderName)
		return nil
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return &ConfigError{
			Provider: ProviderName,
			Field:    "reprobe_schedule",
			Message:  err.Error(),
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		m.Probe(ctx)
	}); err != nil {
		return &ConfigError{
			Provider: ProviderName,
			Field:    "reprobe_schedule",
			Message:  err.Error(),
		}
	}
	c.Start()

	m.mu.Lock()
	m.cron = c
	m.mu.Unlock()

	m.logger.Info("periodic re-probe scheduled",
		"provider", ProviderName, "schedule", spec)

	go func() {
		<-ctx.Done()
		m.StopReprobe()
	}()

	return nil
}

// StopReprobe stops the re-probe schedule and waits for a running cycle to
// finish. It is a no-op when no schedule is active.
func (m *Manager) StopReprobe() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c == nil {
		return
	}

	stopCtx := c.Stop()
	<-stopCtx.Done()
	m.logger.Info("periodic re-probe stopped", "provider", ProviderName)
}

// ReprobeActive reports whether a re-probe schedule is currently running.
func (m *Manager) ReprobeActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cron != nil
}
