package recon

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

// ReportModelBuilder assembles the final report model from venue rows.
// Building cannot fail: it only orders and sums what the pipeline
// already produced.
type ReportModelBuilder struct {
	now func() time.Time
}

func NewReportModelBuilder() *ReportModelBuilder {
	return &ReportModelBuilder{now: time.Now}
}

// Build orders the rows by site id, with the Venue_Unknown bucket
// last, and computes global totals over every row including failed
// ones.
func (b *ReportModelBuilder) Build(
	environment string,
	runType recon.RunType,
	fromDate, toDate string,
	windowStart, windowEnd time.Time,
	venues []recon.VenueSummary,
) recon.ReportModel {
	rows := make([]recon.VenueSummary, len(venues))
	copy(rows, venues)
	sort.SliceStable(rows, func(i, j int) bool {
		if (rows[i].SiteID == venue.UnknownSiteID) != (rows[j].SiteID == venue.UnknownSiteID) {
			return rows[j].SiteID == venue.UnknownSiteID
		}
		return rows[i].SiteID < rows[j].SiteID
	})

	totals := recon.Totals{
		Venues:             len(rows),
		AuthoritativeHours: decimal.Zero,
		SecondaryHours:     decimal.Zero,
		HoursDiff:          decimal.Zero,
	}
	for _, row := range rows {
		totals.AuthoritativePunches += row.AuthoritativePunches
		totals.SecondaryPunches += row.SecondaryPunches
		totals.AuthoritativeHours = totals.AuthoritativeHours.Add(row.AuthoritativeHours)
		totals.SecondaryHours = totals.SecondaryHours.Add(row.SecondaryHours)
		totals.PunchDiff += row.PunchDiff
		totals.HoursDiff = totals.HoursDiff.Add(row.HoursDiff)
		totals.MissingInSecondary += len(row.MissingInSecondary)
		if row.Failed {
			totals.FailedVenues++
		}
		if row.Incomplete {
			totals.IncompleteVenues++
		}
	}

	return recon.ReportModel{
		Environment: environment,
		RunType:     runType,
		FromDate:    fromDate,
		ToDate:      toDate,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		GeneratedAt: b.now().UTC(),
		Venues:      rows,
		Totals:      totals,
	}
}
