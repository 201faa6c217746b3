package recon

import "context"

// Service runs reconciliations and exposes run history.
type Service interface {
	// Run executes a full reconciliation over the requested business
	// dates and returns the report model. It returns
	// ErrAuthenticationFailed when upstream credentials cannot be
	// obtained; individual venue failures do not fail the run.
	Run(ctx context.Context, req RunRequest) (ReportModel, error)
	// GetRun returns one persisted run record.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the most recent run records, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Publisher turns a finished report model into its external artifacts:
// a rendered report and a notification. It returns the location of the
// stored report.
type Publisher interface {
	Publish(ctx context.Context, model ReportModel) (string, error)
}
