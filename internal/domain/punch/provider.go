package punch

import (
	"context"
	"time"
)

// Provider fetches raw punch records from one upstream system.
type Provider interface {
	// FetchPunches returns all raw punches for the site between start
	// (inclusive) and end (exclusive), both UTC.
	FetchPunches(ctx context.Context, siteID string, start, end time.Time) ([]Raw, error)
}
