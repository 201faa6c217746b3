package recon

import (
	"sort"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

// KeyMatcher computes the set difference between the two sources on
// (employee id, minute, event type) keys. Matching is symmetric in
// principle, but only authoritative punches absent from the secondary
// system are actionable, so that is the only direction reported.
type KeyMatcher struct{}

func NewKeyMatcher() *KeyMatcher {
	return &KeyMatcher{}
}

// MissingInSecondary returns one discrepancy per authoritative match
// key with no counterpart in the secondary set, ordered by time, then
// employee id, then event type. Punches sharing a key collapse to one
// entry; the last occurrence wins.
func (m *KeyMatcher) MissingInSecondary(authoritative, secondary []punch.Punch) []punch.Discrepancy {
	secondaryKeys := make(map[punch.MatchKey]struct{}, len(secondary))
	for _, p := range secondary {
		secondaryKeys[p.Key()] = struct{}{}
	}

	byKey := make(map[punch.MatchKey]punch.Punch, len(authoritative))
	for _, p := range authoritative {
		byKey[p.Key()] = p
	}

	out := make([]punch.Discrepancy, 0)
	for key, p := range byKey {
		if _, ok := secondaryKeys[key]; ok {
			continue
		}
		out = append(out, punch.Discrepancy{
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			SiteID:       p.SiteID,
			Event:        p.Event,
			Time:         p.Time,
			// The secondary system should have recorded the same event
			// at the same minute.
			ExpectedSecondaryEvent: p.Event,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Event < out[j].Event
	})
	return out
}
