package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

func TestExpandEntries(t *testing.T) {
	t.Parallel()

	entries := []timeEntry{
		{
			GUID:    "abc",
			InDate:  "2025-06-10T14:00:00.000+0000",
			OutDate: "2025-06-10T22:00:00.000+0000",
			EmployeeReference: struct {
				ExternalID string `json:"externalId"`
			}{ExternalID: "venueops:1035434"},
			Breaks: []struct {
				StartDate string `json:"startDate"`
				EndDate   string `json:"endDate"`
			}{
				{StartDate: "2025-06-10T17:00:00.000+0000", EndDate: "2025-06-10T17:30:00.000+0000"},
			},
		},
	}

	raws := expandEntries(entries, "0380")
	require.Len(t, raws, 4)

	for _, raw := range raws {
		assert.Equal(t, "1035434", raw.EmployeeID)
		assert.Equal(t, "0380", raw.SiteID)
		assert.Equal(t, punch.SourceAuthoritative, raw.Source)
	}
	assert.Equal(t, punch.CheckIn, raws[0].Event)
	assert.Equal(t, punch.CheckOut, raws[1].Event)
	assert.Equal(t, punch.CheckOut, raws[2].Event, "break start reads as a check-out")
	assert.Equal(t, punch.CheckIn, raws[3].Event, "break end reads as a check-in")
}

func TestExpandEntriesSkipsDeletedAndOpenShifts(t *testing.T) {
	t.Parallel()

	entries := []timeEntry{
		{
			GUID:    "deleted",
			Deleted: true,
			InDate:  "2025-06-10T14:00:00.000+0000",
			OutDate: "2025-06-10T22:00:00.000+0000",
		},
		{
			GUID:   "still-clocked-in",
			InDate: "2025-06-10T14:00:00.000+0000",
			EmployeeReference: struct {
				ExternalID string `json:"externalId"`
			}{ExternalID: "100"},
		},
	}

	raws := expandEntries(entries, "0380")
	require.Len(t, raws, 1, "deleted entries vanish, open shifts keep their check-in")
	assert.Equal(t, punch.CheckIn, raws[0].Event)
	assert.Equal(t, "100", raws[0].EmployeeID)
}

func TestEmployeeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1035434", employeeID("venueops:1035434"))
	assert.Equal(t, "1035434", employeeID("1035434"))
	assert.Equal(t, "", employeeID(""))
}
