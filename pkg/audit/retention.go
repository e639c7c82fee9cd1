package audit

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// Pruner enforces the retention policy on the audit store. Pruning runs
// in two phases: age-based (records older than the retention period) and
// count-based (oldest records beyond the cap). Either phase can be
// disabled by its zero value.
type Pruner struct {
	store  Store
	cfg    config.RetentionConfig
	logger *logging.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewPruner creates a Pruner over store.
func NewPruner(store Store, cfg config.RetentionConfig, logger *logging.Logger) *Pruner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pruner{store: store, cfg: cfg, logger: logger}
}

// Prune runs both phases once and returns the total number of records
// deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.cfg.Days > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.cfg.Days)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return totalDeleted, &RetentionError{RetentionDays: p.cfg.Days, Cause: err}
		}
		totalDeleted += deleted
		if deleted > 0 {
			p.logger.Info("pruned audit records by age",
				"deleted", deleted,
				"retention_days", p.cfg.Days,
			)
		}
	}

	if p.cfg.MaxRecords > 0 {
		count, err := p.store.Count(ctx)
		if err != nil {
			return totalDeleted, &RetentionError{RetentionDays: p.cfg.Days, Cause: err}
		}
		if excess := count - p.cfg.MaxRecords; excess > 0 {
			deleted, err := p.store.DeleteOldest(ctx, excess)
			if err != nil {
				return totalDeleted, &RetentionError{RetentionDays: p.cfg.Days, Cause: err}
			}
			totalDeleted += deleted
			p.logger.Info("pruned audit records by count",
				"deleted", deleted,
				"max_records", p.cfg.MaxRecords,
			)
		}
	}

	return totalDeleted, nil
}

// Start schedules pruning on the configured cron expression. An empty
// schedule disables it. The schedule stops when ctx is cancelled.
func (p *Pruner) Start(ctx context.Context) error {
	spec := p.cfg.PruneSchedule
	if spec == "" {
		p.logger.Info("audit retention schedule disabled")
		return nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return &RetentionError{RetentionDays: p.cfg.Days, Cause: err}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := p.Prune(ctx); err != nil {
			p.logger.Error("scheduled audit pruning failed", "error", err)
		}
	}); err != nil {
		return &RetentionError{RetentionDays: p.cfg.Days, Cause: err}
	}
	c.Start()

	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()

	p.logger.Info("audit retention scheduled",
		"schedule", spec,
		"retention_days", p.cfg.Days,
		"max_records", p.cfg.MaxRecords,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop halts scheduled pruning, waiting for a run in flight. Safe to call
// when never started or more than once.
func (p *Pruner) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}

	stopCtx := c.Stop()
	<-stopCtx.Done()
	p.logger.Info("audit retention schedule stopped")
}

// Active reports whether scheduled pruning is running.
func (p *Pruner) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}
