package recon

import (
	"time"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

// businessDayStartHour is the local wall-clock hour at which one
// business day ends and the next begins. Venues close well after
// midnight, so a shift that starts at 22:00 and ends at 02:00 belongs
// to a single business day.
const businessDayStartHour = 5

// BusinessDayWindow is the half-open UTC interval [Start, End) covering
// one or more business days of a single venue. Boundaries are computed
// in the venue's own timezone, so days spanning a DST transition come
// out 23 or 25 wall-clock hours long.
type BusinessDayWindow struct {
	start time.Time
	end   time.Time
}

// NewBusinessDayWindow bounds the business days from `from` through
// `to` inclusive, both civil dates, in the given location.
func NewBusinessDayWindow(from, to time.Time, loc *time.Location) BusinessDayWindow {
	start := time.Date(from.Year(), from.Month(), from.Day(), businessDayStartHour, 0, 0, 0, loc)
	next := to.AddDate(0, 0, 1)
	end := time.Date(next.Year(), next.Month(), next.Day(), businessDayStartHour, 0, 0, 0, loc)
	return BusinessDayWindow{start: start.UTC(), end: end.UTC()}
}

// Start returns the inclusive UTC lower bound.
func (w BusinessDayWindow) Start() time.Time { return w.start }

// End returns the exclusive UTC upper bound.
func (w BusinessDayWindow) End() time.Time { return w.end }

// Contains reports whether the instant falls inside the window. The
// lower bound is inclusive and the upper bound exclusive, so a punch
// exactly on the 05:00 boundary belongs to the later day.
func (w BusinessDayWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Filter returns the punches that fall inside the window, preserving
// input order.
func (w BusinessDayWindow) Filter(punches []punch.Punch) []punch.Punch {
	out := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		if w.Contains(p.Time) {
			out = append(out, p)
		}
	}
	return out
}
