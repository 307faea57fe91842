package retention

import (
	"context"
	"time"
)

// Store is the slice of the document store the pruner needs.
type Store interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config controls retention pruning.
type Config struct {
	// RetentionDays is how long documents are kept. Zero disables pruning.
	RetentionDays int

	// PruneSchedule is the cron expression driving the scheduler
	// (e.g., "0 3 * * *"). Empty disables the scheduler.
	PruneSchedule string
}

// Pruner deletes documents older than the retention period.
type Pruner struct {
	store  Store
	config Config
}

// NewPruner creates a pruner over the given store.
func NewPruner(store Store, config Config) *Pruner {
	return &Pruner{store: store, config: config}
}

// Prune deletes documents past retention and reports how many were removed.
// With RetentionDays zero it is a no-op.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
	return p.store.PruneBefore(ctx, cutoff)
}
