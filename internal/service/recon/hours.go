package recon

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

var minutesPerHour = decimal.New(60, 0)

// HourTotals is the worked-hours outcome for one source at one venue.
type HourTotals struct {
	Hours               decimal.Decimal
	Shifts              []punch.Shift
	Incomplete          bool
	IncompleteEmployees []string
}

// HourCalculator pairs check-ins with check-outs per employee and sums
// the resulting shift durations. Unpairable punches contribute zero
// hours and mark the result incomplete instead of failing it.
type HourCalculator struct{}

func NewHourCalculator() *HourCalculator {
	return &HourCalculator{}
}

// Calculate walks each employee's punches in chronological order. A
// check-out closes the open check-in; a check-out with no open
// check-in, a check-in while another is still open, and a trailing
// open check-in all flag the employee as incomplete.
func (c *HourCalculator) Calculate(punches []punch.Punch) HourTotals {
	byEmployee := make(map[string][]punch.Punch)
	for _, p := range punches {
		byEmployee[p.EmployeeID] = append(byEmployee[p.EmployeeID], p)
	}

	totals := HourTotals{Hours: decimal.Zero}
	for employeeID, eps := range byEmployee {
		sort.SliceStable(eps, func(i, j int) bool {
			if !eps[i].Time.Equal(eps[j].Time) {
				return eps[i].Time.Before(eps[j].Time)
			}
			// A same-minute in/out pair is a zero-length shift, not an
			// ordering anomaly.
			return eps[i].Event == punch.CheckIn && eps[j].Event == punch.CheckOut
		})

		hours, shifts, incomplete := c.pair(eps)
		totals.Hours = totals.Hours.Add(hours)
		totals.Shifts = append(totals.Shifts, shifts...)
		if incomplete {
			totals.Incomplete = true
			totals.IncompleteEmployees = append(totals.IncompleteEmployees, employeeID)
		}
	}

	sort.Strings(totals.IncompleteEmployees)
	sort.Slice(totals.Shifts, func(i, j int) bool {
		if !totals.Shifts[i].CheckIn.Equal(totals.Shifts[j].CheckIn) {
			return totals.Shifts[i].CheckIn.Before(totals.Shifts[j].CheckIn)
		}
		return totals.Shifts[i].EmployeeID < totals.Shifts[j].EmployeeID
	})
	return totals
}

func (c *HourCalculator) pair(eps []punch.Punch) (decimal.Decimal, []punch.Shift, bool) {
	hours := decimal.Zero
	var shifts []punch.Shift
	var open *punch.Punch
	incomplete := false

	for i := range eps {
		p := eps[i]
		switch p.Event {
		case punch.CheckIn:
			if open != nil {
				// Two check-ins in a row: the earlier one stays
				// unpaired, the later one opens the next shift.
				incomplete = true
			}
			open = &eps[i]
		case punch.CheckOut:
			if open == nil {
				incomplete = true
				continue
			}
			minutes := int64(p.Time.Sub(open.Time) / time.Minute)
			shift := punch.Shift{
				EmployeeID: p.EmployeeID,
				CheckIn:    open.Time,
				CheckOut:   p.Time,
				Hours:      decimal.New(minutes, 0).Div(minutesPerHour),
			}
			shifts = append(shifts, shift)
			hours = hours.Add(shift.Hours)
			open = nil
		}
	}
	if open != nil {
		incomplete = true
	}
	return hours, shifts, incomplete
}
