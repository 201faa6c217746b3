package recon

import "context"

// RunRepository persists reconciliation run records.
type RunRepository interface {
	Create(ctx context.Context, run Run) error
	// Finish writes the terminal state of a run atomically: status,
	// totals, report location, error message and the per-venue rows.
	Finish(ctx context.Context, run Run, venues []VenueSummary) error
	GetByID(ctx context.Context, id string) (Run, error)
	List(ctx context.Context, limit int) ([]Run, error)
}
