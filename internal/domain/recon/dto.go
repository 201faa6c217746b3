package recon

import (
	"fmt"
	"strings"
	"time"
)

// Business dates arrive either as a bare civil date or in the legacy
// descriptor form "2025-03-08-05:00", where the suffix restates the
// 05:00 business-day boundary and carries no zone information.
const (
	businessDateLayout = "2006-01-02"
	businessDateSuffix = "-05:00"
)

// RunRequest describes one reconciliation run to execute. FromDate and
// ToDate are business-date descriptors; an empty ToDate means a
// single-day run over FromDate.
type RunRequest struct {
	FromDate         string   `json:"from_date"`
	ToDate           string   `json:"to_date,omitempty"`
	RunType          RunType  `json:"run_type,omitempty"`
	TraceEmployeeIDs []string `json:"trace_employee_ids,omitempty"`
}

// ParseBusinessDate parses a business-date descriptor into a civil
// date at midnight UTC. Only the calendar day is meaningful; the
// window boundaries are derived from it per venue.
func ParseBusinessDate(s string) (time.Time, error) {
	trimmed := strings.TrimSuffix(s, businessDateSuffix)
	d, err := time.ParseInLocation(businessDateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid business date %q: %w", s, err)
	}
	return d, nil
}

// Validate checks the request and returns the parsed date range.
func (r *RunRequest) Validate() (from, to time.Time, err error) {
	if r.FromDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from_date is required", ErrValidationFailed)
	}
	from, err = ParseBusinessDate(r.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if r.ToDate == "" {
		return from, from, nil
	}
	to, err = ParseBusinessDate(r.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to, nil
}

// RunResponse is the API shape of a persisted run.
type RunResponse struct {
	ID                 string     `json:"id"`
	RunType            RunType    `json:"run_type"`
	Environment        string     `json:"environment"`
	FromDate           string     `json:"from_date"`
	ToDate             string     `json:"to_date"`
	Status             RunStatus  `json:"status"`
	PunchDiff          int        `json:"punch_diff"`
	HoursDiff          string     `json:"hours_diff"`
	MissingInSecondary int        `json:"missing_in_secondary"`
	FailedVenues       int        `json:"failed_venues"`
	ReportPath         string     `json:"report_path,omitempty"`
	Error              string     `json:"error,omitempty"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
}

// ToResponse converts a run record into its API representation.
func (r Run) ToResponse() RunResponse {
	return RunResponse{
		ID:                 r.ID,
		RunType:            r.RunType,
		Environment:        r.Environment,
		FromDate:           r.FromDate,
		ToDate:             r.ToDate,
		Status:             r.Status,
		PunchDiff:          r.PunchDiff,
		HoursDiff:          r.HoursDiff.StringFixed(2),
		MissingInSecondary: r.MissingInSecondary,
		FailedVenues:       r.FailedVenues,
		ReportPath:         r.ReportPath,
		Error:              r.Error,
		StartedAt:          r.StartedAt,
		FinishedAt:         r.FinishedAt,
	}
}
