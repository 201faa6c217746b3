package recon

import (
	"fmt"
	"time"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

// timestampLayouts are the zoned formats seen across both upstream
// systems, tried in order.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// bare layouts carry no zone of their own; the punch's declared offset
// (or UTC when absent) supplies it.
var bareLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// TimeNormalizer converts raw source timestamps into canonical UTC
// instants truncated to the minute. Seconds are discarded rather than
// rounded so that both sources land on the same key for punches logged
// within the same minute.
type TimeNormalizer struct{}

func NewTimeNormalizer() *TimeNormalizer {
	return &TimeNormalizer{}
}

// Normalize parses the raw punch's timestamp and returns the punch in
// canonical form. A parse failure yields a *punch.NormalizationError;
// the caller drops the punch and records the failure, it never aborts
// the run.
func (n *TimeNormalizer) Normalize(raw punch.Raw) (punch.Punch, error) {
	if raw.EmployeeID == "" {
		return punch.Punch{}, &punch.NormalizationError{Raw: raw.Timestamp, Err: punch.ErrMissingEmployee}
	}
	if raw.Event != punch.CheckIn && raw.Event != punch.CheckOut {
		return punch.Punch{}, &punch.NormalizationError{
			Raw: raw.Timestamp,
			Err: fmt.Errorf("%w: %q", punch.ErrUnknownEventType, raw.Event),
		}
	}

	t, err := n.parse(raw.Timestamp, raw.Offset)
	if err != nil {
		return punch.Punch{}, &punch.NormalizationError{Raw: raw.Timestamp, Err: err}
	}

	return punch.Punch{
		EmployeeID:   raw.EmployeeID,
		EmployeeName: raw.EmployeeName,
		SiteID:       raw.SiteID,
		Time:         t.UTC().Truncate(time.Minute),
		Event:        raw.Event,
		Source:       raw.Source,
	}, nil
}

func (n *TimeNormalizer) parse(ts, offset string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}

	loc := time.UTC
	if offset != "" {
		l, err := locationFromOffset(offset)
		if err != nil {
			return time.Time{}, err
		}
		loc = l
	}
	for _, layout := range bareLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp format")
}

// locationFromOffset turns a declared offset like "-05:00" or "+0530"
// into a fixed-zone location.
func locationFromOffset(offset string) (*time.Location, error) {
	var sign int
	switch offset[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid utc offset %q", offset)
	}

	var hours, minutes int
	rest := offset[1:]
	var err error
	if len(rest) == 5 && rest[2] == ':' {
		_, err = fmt.Sscanf(rest, "%02d:%02d", &hours, &minutes)
	} else if len(rest) == 4 {
		_, err = fmt.Sscanf(rest, "%02d%02d", &hours, &minutes)
	} else {
		return nil, fmt.Errorf("invalid utc offset %q", offset)
	}
	if err != nil || hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid utc offset %q", offset)
	}

	return time.FixedZone(offset, sign*(hours*3600+minutes*60)), nil
}
