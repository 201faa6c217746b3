package venue

// UnknownSiteID is the synthetic bucket for punches whose site id does
// not resolve to a registered venue. It participates in matching and
// hour computation like any other venue so that no fetched punch is
// silently dropped.
const UnknownSiteID = "Venue_Unknown"

// Venue is one physical location registered in the venue directory.
type Venue struct {
	SiteID         string
	Name           string
	Timezone       string
	HRISLocationID string
	Active         bool
}

// Unknown returns the synthetic venue used for unresolvable site ids.
// Its window is computed in the given fallback timezone.
func Unknown(timezone string) Venue {
	return Venue{
		SiteID:   UnknownSiteID,
		Name:     UnknownSiteID,
		Timezone: timezone,
		Active:   true,
	}
}
