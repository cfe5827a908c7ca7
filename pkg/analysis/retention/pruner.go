package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/config"
)

// Pruner enforces retention policies on analysis records.
type Pruner struct {
	storage   analysis.Storage
	config    *config.RetentionConfig
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner.
func NewPruner(storage analysis.Storage, cfg *config.RetentionConfig, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}

	pruner := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  logger.With("component", "analysis.retention"),
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes analysis records older than the retention period or
// exceeding the max record count.
//
// Pruning happens in two phases:
//  1. Age-based: delete records older than retention_days
//  2. Count-based: if total records > max_records, delete oldest
//
// Both can run together. Returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned records by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned records by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no records pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Info("analysis pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes records older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	return p.storage.DeleteOlderThan(ctx, cutoff)
}

// pruneByCount deletes the oldest records when the total count exceeds
// max_records.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	excess := count - int64(p.config.MaxRecords)
	if excess <= 0 {
		p.logger.Debug("record count within limit",
			"current", count,
			"max", p.config.MaxRecords,
		)
		return 0, nil
	}

	p.logger.Info("record count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", excess,
	)

	oldest, err := p.storage.List(ctx, analysis.ListOptions{
		OldestFirst: true,
		Limit:       int(excess),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list oldest records: %w", err)
	}

	var deleted int64
	for _, record := range oldest {
		if err := p.storage.Delete(ctx, record.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete record %s: %w", record.ID, err)
		}
		deleted++
	}

	return deleted, nil
}

// Start starts the automatic pruning scheduler.
// Call this when starting the application.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
// Call this during graceful shutdown.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
