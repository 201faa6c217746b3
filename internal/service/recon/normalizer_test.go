package recon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

func TestTimeNormalizerEquivalentInstants(t *testing.T) {
	t.Parallel()

	n := NewTimeNormalizer()

	// The same instant written three different ways must land on the
	// same match key.
	raws := []punch.Raw{
		{EmployeeID: "100", Timestamp: "2025-03-08T14:30:45.000-0500", Event: punch.CheckIn, Source: punch.SourceAuthoritative},
		{EmployeeID: "100", Timestamp: "2025-03-08T19:30:12Z", Event: punch.CheckIn, Source: punch.SourceSecondary},
		{EmployeeID: "100", Timestamp: "2025-03-08T13:30:59", Offset: "-06:00", Event: punch.CheckIn, Source: punch.SourceSecondary},
	}

	want := time.Date(2025, 3, 8, 19, 30, 0, 0, time.UTC)
	for _, raw := range raws {
		p, err := n.Normalize(raw)
		require.NoError(t, err, "timestamp %q", raw.Timestamp)
		assert.True(t, p.Time.Equal(want), "timestamp %q normalized to %v", raw.Timestamp, p.Time)
		assert.Equal(t, raws[0].EmployeeID, p.EmployeeID)
	}

	a, err := n.Normalize(raws[0])
	require.NoError(t, err)
	b, err := n.Normalize(raws[1])
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())
}

func TestTimeNormalizerTruncatesSeconds(t *testing.T) {
	t.Parallel()

	n := NewTimeNormalizer()
	p, err := n.Normalize(punch.Raw{
		EmployeeID: "200",
		Timestamp:  "2025-06-01T08:15:59Z",
		Event:      punch.CheckOut,
		Source:     punch.SourceAuthoritative,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC), p.Time)
}

func TestTimeNormalizerRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  punch.Raw
	}{
		{
			name: "garbage timestamp",
			raw:  punch.Raw{EmployeeID: "1", Timestamp: "not-a-time", Event: punch.CheckIn},
		},
		{
			name: "empty timestamp",
			raw:  punch.Raw{EmployeeID: "1", Timestamp: "", Event: punch.CheckIn},
		},
		{
			name: "bad declared offset",
			raw:  punch.Raw{EmployeeID: "1", Timestamp: "2025-06-01T08:15:00", Offset: "central", Event: punch.CheckIn},
		},
		{
			name: "unknown event type",
			raw:  punch.Raw{EmployeeID: "1", Timestamp: "2025-06-01T08:15:00Z", Event: "Lunch"},
		},
		{
			name: "missing employee id",
			raw:  punch.Raw{Timestamp: "2025-06-01T08:15:00Z", Event: punch.CheckIn},
		},
	}

	n := NewTimeNormalizer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := n.Normalize(tt.raw)
			require.Error(t, err)

			var normErr *punch.NormalizationError
			assert.True(t, errors.As(err, &normErr))
		})
	}
}
