package recon

import (
	"github.com/venueops/timecard-recon-go/internal/domain/punch"
	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

// VenueAggregator folds one venue's matched and computed results into
// a summary row. Every punch that survived normalization and window
// filtering is counted exactly once here; the Venue_Unknown bucket
// goes through the same path, which is what keeps the punch totals
// conserved across the whole report.
type VenueAggregator struct{}

func NewVenueAggregator() *VenueAggregator {
	return &VenueAggregator{}
}

// Summarize builds the venue row. All differences are secondary minus
// authoritative.
func (a *VenueAggregator) Summarize(
	v venue.Venue,
	authoritative, secondary []punch.Punch,
	missing []punch.Discrepancy,
	authHours, secHours HourTotals,
	notes []string,
) recon.VenueSummary {
	incompleteEmployees := mergeSorted(authHours.IncompleteEmployees, secHours.IncompleteEmployees)

	return recon.VenueSummary{
		SiteID:               v.SiteID,
		VenueName:            v.Name,
		AuthoritativePunches: len(authoritative),
		SecondaryPunches:     len(secondary),
		AuthoritativeHours:   authHours.Hours,
		SecondaryHours:       secHours.Hours,
		PunchDiff:            len(secondary) - len(authoritative),
		HoursDiff:            secHours.Hours.Sub(authHours.Hours),
		Incomplete:           authHours.Incomplete || secHours.Incomplete,
		IncompleteEmployees:  incompleteEmployees,
		MissingInSecondary:   missing,
		Notes:                notes,
	}
}

// FailedSummary builds the row for a venue whose fetch failed. The
// counts stay zero so the failure is visible rather than read as a
// clean match.
func (a *VenueAggregator) FailedSummary(v venue.Venue, reason string) recon.VenueSummary {
	return recon.VenueSummary{
		SiteID:        v.SiteID,
		VenueName:     v.Name,
		Failed:        true,
		FailureReason: reason,
	}
}

// mergeSorted merges two sorted string slices, dropping duplicates.
func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next string
		switch {
		case i == len(a):
			next = b[j]
			j++
		case j == len(b):
			next = a[i]
			i++
		case a[i] <= b[j]:
			next = a[i]
			i++
		default:
			next = b[j]
			j++
		}
		if len(out) == 0 || out[len(out)-1] != next {
			out = append(out, next)
		}
	}
	return out
}
