// Package storage persists rendered reconciliation reports.
package storage

import "context"

// ReportStore writes a rendered report and returns the location it can
// be retrieved from.
type ReportStore interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}
