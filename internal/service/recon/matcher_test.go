package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

func authPunch(employee string, t time.Time, event punch.EventType) punch.Punch {
	return punch.Punch{EmployeeID: employee, SiteID: "0380", Time: t, Event: event, Source: punch.SourceAuthoritative}
}

func secPunch(employee string, t time.Time, event punch.EventType) punch.Punch {
	return punch.Punch{EmployeeID: employee, SiteID: "0380", Time: t, Event: event, Source: punch.SourceSecondary}
}

func TestKeyMatcherIdenticalSets(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	auth := []punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", at.Add(8*time.Hour), punch.CheckOut),
	}
	sec := []punch.Punch{
		secPunch("100", at, punch.CheckIn),
		secPunch("100", at.Add(8*time.Hour), punch.CheckOut),
	}

	assert.Empty(t, NewKeyMatcher().MissingInSecondary(auth, sec))
}

func TestKeyMatcherReportsMissingPunch(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	out := at.Add(8 * time.Hour)
	auth := []punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", out, punch.CheckOut),
	}
	// The secondary system never recorded the check-out.
	sec := []punch.Punch{secPunch("100", at, punch.CheckIn)}

	missing := NewKeyMatcher().MissingInSecondary(auth, sec)
	require.Len(t, missing, 1)
	assert.Equal(t, "100", missing[0].EmployeeID)
	assert.Equal(t, punch.CheckOut, missing[0].Event)
	assert.Equal(t, punch.CheckOut, missing[0].ExpectedSecondaryEvent)
	assert.True(t, missing[0].Time.Equal(out))
}

func TestKeyMatcherSameMinuteDuplicatesCollapse(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	auth := []punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", at, punch.CheckIn),
	}

	// One matching secondary punch satisfies both duplicates.
	missing := NewKeyMatcher().MissingInSecondary(auth, []punch.Punch{secPunch("100", at, punch.CheckIn)})
	assert.Empty(t, missing)

	// With no counterpart the duplicates still yield a single entry.
	missing = NewKeyMatcher().MissingInSecondary(auth, nil)
	assert.Len(t, missing, 1)
}

func TestKeyMatcherExtraSecondaryPunchesIgnored(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	sec := []punch.Punch{
		secPunch("100", at, punch.CheckIn),
		secPunch("200", at, punch.CheckIn),
	}

	assert.Empty(t, NewKeyMatcher().MissingInSecondary([]punch.Punch{authPunch("100", at, punch.CheckIn)}, sec))
}

func TestKeyMatcherOrdering(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	auth := []punch.Punch{
		authPunch("300", at.Add(time.Hour), punch.CheckIn),
		authPunch("200", at, punch.CheckOut),
		authPunch("100", at, punch.CheckIn),
	}

	missing := NewKeyMatcher().MissingInSecondary(auth, nil)
	require.Len(t, missing, 3)
	assert.Equal(t, "100", missing[0].EmployeeID)
	assert.Equal(t, "200", missing[1].EmployeeID)
	assert.Equal(t, "300", missing[2].EmployeeID)
}
