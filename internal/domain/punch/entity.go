package punch

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType distinguishes the two punch directions.
type EventType string

const (
	CheckIn  EventType = "Check-in"
	CheckOut EventType = "Check-out"
)

// Source identifies which upstream system a punch came from.
type Source string

const (
	// SourceAuthoritative is the point-of-sale system, treated as ground
	// truth for punches.
	SourceAuthoritative Source = "pos"
	// SourceSecondary is the HR system being checked against the
	// authoritative source.
	SourceSecondary Source = "hris"
)

// Raw is a punch record as fetched from an upstream system, before
// timestamp normalization. Timestamp is the source's own string
// representation; Offset is the source's declared UTC offset (e.g.
// "-05:00"), applied only when the timestamp itself carries no zone.
type Raw struct {
	EmployeeID   string
	EmployeeName string
	SiteID       string
	Timestamp    string
	Offset       string
	Event        EventType
	Source       Source
}

// Punch is a normalized punch event: its Time is always UTC, truncated
// to the minute. Punches are immutable once normalized and live only
// for the duration of one reconciliation run.
type Punch struct {
	EmployeeID   string
	EmployeeName string
	SiteID       string
	Time         time.Time
	Event        EventType
	Source       Source
}

// MatchKey is the comparison unit between sources. Two punches from the
// same source with an equal key are indistinguishable to the matcher;
// the minute granularity means same-minute duplicates of one employee
// and event type collapse to a single key.
type MatchKey struct {
	EmployeeID string
	UnixMinute int64
	Event      EventType
}

// Key returns the punch's match key.
func (p Punch) Key() MatchKey {
	return MatchKey{
		EmployeeID: p.EmployeeID,
		UnixMinute: p.Time.Unix() / 60,
		Event:      p.Event,
	}
}

// Discrepancy is one authoritative punch with no secondary counterpart.
type Discrepancy struct {
	EmployeeID             string
	EmployeeName           string
	SiteID                 string
	Event                  EventType
	Time                   time.Time
	ExpectedSecondaryEvent EventType
}

// Shift is a paired check-in/check-out forming one worked interval.
// Derived during a run, never persisted.
type Shift struct {
	EmployeeID string
	CheckIn    time.Time
	CheckOut   time.Time
	Hours      decimal.Decimal
}
