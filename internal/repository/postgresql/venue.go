package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/venueops/timecard-recon-go/internal/domain/venue"
	"github.com/venueops/timecard-recon-go/internal/pkg/database"
)

type VenueDirectoryImpl struct {
	db *database.DB
}

func NewVenueDirectory(db *database.DB) venue.Directory {
	return &VenueDirectoryImpl{db: db}
}

// Resolve implements venue.Directory.
func (r *VenueDirectoryImpl) Resolve(ctx context.Context, siteID string) (venue.Venue, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT site_id, name, timezone, hris_location_id, active
		FROM venues
		WHERE site_id = $1`

	var v venue.Venue
	err := querier.QueryRow(ctx, query, siteID).Scan(
		&v.SiteID, &v.Name, &v.Timezone, &v.HRISLocationID, &v.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return venue.Venue{}, venue.ErrVenueNotFound
		}
		return venue.Venue{}, fmt.Errorf("failed to resolve venue %s: %w", siteID, err)
	}
	return v, nil
}

// ListActive implements venue.Directory.
func (r *VenueDirectoryImpl) ListActive(ctx context.Context) ([]venue.Venue, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT site_id, name, timezone, hris_location_id, active
		FROM venues
		WHERE active
		ORDER BY site_id`

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []venue.Venue
	for rows.Next() {
		var v venue.Venue
		if err := rows.Scan(&v.SiteID, &v.Name, &v.Timezone, &v.HRISLocationID, &v.Active); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read venues: %w", err)
	}
	return venues, nil
}
