package db

import (
	"context"
	"fmt"
	"time"
)

// PruneResult reports what a history prune removed.
type PruneResult struct {
	Deleted  int64
	Duration time.Duration
}

// PruneDropHistory deletes drop_history rows older than retentionDays and
// vacuums the file. A vacuum failure is returned alongside the deleted count.
func (d *Database) PruneDropHistory(ctx context.Context, retentionDays int) (PruneResult, error) {
	start := time.Now()
	var result PruneResult

	if retentionDays < 0 {
		return result, fmt.Errorf("retentionDays must be non-negative, got %d", retentionDays)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	res, err := d.exec(ctx, "DELETE FROM drop_history WHERE created_at < ?", cutoff)
	if err != nil {
		return result, fmt.Errorf("failed to delete from drop_history: %w", err)
	}
	if result.Deleted, err = res.RowsAffected(); err != nil {
		return result, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := d.exec(ctx, "VACUUM"); err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("prune succeeded but VACUUM failed: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}
