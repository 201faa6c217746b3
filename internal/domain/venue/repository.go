package venue

import "context"

// Directory looks up venue metadata. A failed lookup for a site id
// seen on a punch is not an error condition for a run; the punch is
// routed to the Venue_Unknown bucket instead.
type Directory interface {
	// Resolve returns the venue registered under the site id, or
	// ErrVenueNotFound.
	Resolve(ctx context.Context, siteID string) (Venue, error)
	// ListActive returns all venues that take part in scheduled
	// reconciliation, ordered by site id.
	ListActive(ctx context.Context) ([]Venue, error)
}
