package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

// RunType distinguishes how a run was started.
type RunType string

const (
	RunTypeScheduled RunType = "daily_scheduled"
	RunTypeAdhoc     RunType = "adhoc"
)

// RunStatus is the lifecycle state of a persisted run record.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// VenueSummary is the per-venue outcome of one run. All differences
// are computed as secondary minus authoritative, so a negative value
// means the secondary system is missing data.
type VenueSummary struct {
	SiteID               string
	VenueName            string
	AuthoritativePunches int
	SecondaryPunches     int
	AuthoritativeHours   decimal.Decimal
	SecondaryHours       decimal.Decimal
	PunchDiff            int
	HoursDiff            decimal.Decimal
	Incomplete           bool
	IncompleteEmployees  []string
	MissingInSecondary   []punch.Discrepancy
	Failed               bool
	FailureReason        string
	Notes                []string
}

// Totals aggregates every venue row of a report, the failed and
// unknown buckets included.
type Totals struct {
	Venues               int
	FailedVenues         int
	AuthoritativePunches int
	SecondaryPunches     int
	AuthoritativeHours   decimal.Decimal
	SecondaryHours       decimal.Decimal
	PunchDiff            int
	HoursDiff            decimal.Decimal
	MissingInSecondary   int
	IncompleteVenues     int
}

// ReportModel is the complete, renderer-agnostic result of a run.
// Venue rows are ordered by site id; the model is never mutated after
// the builder returns it.
type ReportModel struct {
	Environment string
	RunType     RunType
	FromDate    string
	ToDate      string
	WindowStart time.Time
	WindowEnd   time.Time
	GeneratedAt time.Time
	Venues      []VenueSummary
	Totals      Totals
}

// Run is the persisted record of one reconciliation run.
type Run struct {
	ID                 string
	RunType            RunType
	Environment        string
	FromDate           string
	ToDate             string
	Status             RunStatus
	PunchDiff          int
	HoursDiff          decimal.Decimal
	MissingInSecondary int
	FailedVenues       int
	ReportPath         string
	Error              string
	StartedAt          time.Time
	FinishedAt         *time.Time
}
