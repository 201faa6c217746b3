package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

func TestVenueAggregatorSummarize(t *testing.T) {
	t.Parallel()

	v := venue.Venue{SiteID: "0380", Name: "Downtown", Timezone: "America/Chicago"}
	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	auth := []punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", at.Add(8*time.Hour), punch.CheckOut),
	}
	sec := []punch.Punch{secPunch("100", at, punch.CheckIn)}
	missing := []punch.Discrepancy{{EmployeeID: "100", Event: punch.CheckOut, Time: at.Add(8 * time.Hour)}}

	authHours := HourTotals{Hours: decimal.NewFromInt(8)}
	secHours := HourTotals{Hours: decimal.Zero, Incomplete: true, IncompleteEmployees: []string{"100"}}

	row := NewVenueAggregator().Summarize(v, auth, sec, missing, authHours, secHours, []string{"note"})

	assert.Equal(t, "0380", row.SiteID)
	assert.Equal(t, "Downtown", row.VenueName)
	assert.Equal(t, 2, row.AuthoritativePunches)
	assert.Equal(t, 1, row.SecondaryPunches)
	assert.Equal(t, -1, row.PunchDiff, "secondary minus authoritative")
	assert.Equal(t, "-8", row.HoursDiff.String())
	assert.True(t, row.Incomplete)
	assert.Equal(t, []string{"100"}, row.IncompleteEmployees)
	require.Len(t, row.MissingInSecondary, 1)
	assert.False(t, row.Failed)
	assert.Equal(t, []string{"note"}, row.Notes)
}

func TestVenueAggregatorMergesIncompleteEmployees(t *testing.T) {
	t.Parallel()

	v := venue.Venue{SiteID: "0380", Name: "Downtown"}
	authHours := HourTotals{Hours: decimal.Zero, Incomplete: true, IncompleteEmployees: []string{"100", "300"}}
	secHours := HourTotals{Hours: decimal.Zero, Incomplete: true, IncompleteEmployees: []string{"100", "200"}}

	row := NewVenueAggregator().Summarize(v, nil, nil, nil, authHours, secHours, nil)
	assert.Equal(t, []string{"100", "200", "300"}, row.IncompleteEmployees)
}

func TestVenueAggregatorFailedSummary(t *testing.T) {
	t.Parallel()

	v := venue.Venue{SiteID: "0441", Name: "Airport"}
	row := NewVenueAggregator().FailedSummary(v, "authoritative fetch: timeout")

	assert.True(t, row.Failed)
	assert.Equal(t, "authoritative fetch: timeout", row.FailureReason)
	assert.Zero(t, row.AuthoritativePunches)
	assert.Zero(t, row.SecondaryPunches)
}
