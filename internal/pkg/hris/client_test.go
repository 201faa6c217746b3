package hris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/config"
	"github.com/venueops/timecard-recon-go/internal/domain/punch"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

const sampleReport = `<?xml version="1.0" encoding="UTF-8"?>
<Report_Data>
  <Report_Entry>
    <Employee_ID>1035434</Employee_ID>
    <Worker>J. Doe</Worker>
    <Clock_Event_Time>2025-06-10T09:00:14-05:00</Clock_Event_Time>
    <Event_Type>Check-in</Event_Type>
  </Report_Entry>
  <Report_Entry>
    <Employee_ID>1035434</Employee_ID>
    <Worker>J. Doe</Worker>
    <Clock_Event_Time>2025-06-10T12:00:02-05:00</Clock_Event_Time>
    <Event_Type>Meal-out</Event_Type>
  </Report_Entry>
  <Report_Entry>
    <Employee_ID>1035434</Employee_ID>
    <Worker>J. Doe</Worker>
    <Clock_Event_Time>2025-06-10T12:30:00</Clock_Event_Time>
    <Event_Type>Meal-in</Event_Type>
    <Timezone_Offset>-05:00</Timezone_Offset>
  </Report_Entry>
</Report_Data>`

type fixedCredentials struct{ creds map[string]string }

func (f fixedCredentials) Load(context.Context) (map[string]string, error) {
	return f.creds, nil
}

type fixedDirectory struct{ v venue.Venue }

func (f fixedDirectory) Resolve(context.Context, string) (venue.Venue, error) {
	return f.v, nil
}

func (f fixedDirectory) ListActive(context.Context) ([]venue.Venue, error) {
	return []venue.Venue{f.v}, nil
}

func TestFetchPunchesParsesReport(t *testing.T) {
	t.Parallel()

	var gotLocation, gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("Location")
		gotUser, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleReport))
	}))
	defer server.Close()

	client := NewClient(
		config.HRISConfig{Host: server.URL, Tenant: "venueops", TimeoutSecs: 5},
		fixedCredentials{creds: map[string]string{credUsername: "svc", credPassword: "pw"}},
		fixedDirectory{v: venue.Venue{SiteID: "0380", HRISLocationID: "LOC_0380"}},
	)

	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	raws, err := client.FetchPunches(context.Background(), "0380", start, start.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "LOC_0380", gotLocation)
	assert.Equal(t, "svc", gotUser)

	require.Len(t, raws, 3)
	assert.Equal(t, "1035434", raws[0].EmployeeID)
	assert.Equal(t, punch.CheckIn, raws[0].Event)
	assert.Equal(t, punch.SourceSecondary, raws[0].Source)
	assert.Equal(t, punch.CheckOut, raws[1].Event, "meal-out reads as a check-out")
	assert.Equal(t, punch.CheckIn, raws[2].Event, "meal-in reads as a check-in")
	assert.Equal(t, "-05:00", raws[2].Offset)
	assert.Equal(t, "0380", raws[2].SiteID)
}

func TestFetchPunchesRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(
		config.HRISConfig{Host: server.URL, Tenant: "venueops", TimeoutSecs: 5},
		fixedCredentials{creds: map[string]string{credUsername: "svc", credPassword: "pw"}},
		fixedDirectory{v: venue.Venue{SiteID: "0380", HRISLocationID: "LOC_0380"}},
	)

	_, err := client.FetchPunches(context.Background(), "0380", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestEventTypeMapping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, punch.CheckIn, eventType("Check-in"))
	assert.Equal(t, punch.CheckIn, eventType("meal-in"))
	assert.Equal(t, punch.CheckOut, eventType("Check-out"))
	assert.Equal(t, punch.CheckOut, eventType("Meal-out"))
	// Unknown types pass through for the normalizer to reject.
	assert.Equal(t, punch.EventType("Transfer"), eventType("Transfer"))
}
