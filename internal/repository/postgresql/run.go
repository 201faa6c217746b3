package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/pkg/database"
)

type RunRepositoryImpl struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) recon.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// Create implements recon.RunRepository.
func (r *RunRepositoryImpl) Create(ctx context.Context, run recon.Run) error {
	querier := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reconciliation_runs (
			id, run_type, environment, from_date, to_date, status, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.Exec(ctx, query,
		run.ID, run.RunType, run.Environment, run.FromDate, run.ToDate,
		run.Status, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Finish implements recon.RunRepository. The run row and its venue
// rows are written in one transaction so a partially finalized run is
// never visible.
func (r *RunRepositoryImpl) Finish(ctx context.Context, run recon.Run, venues []recon.VenueSummary) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE reconciliation_runs
			SET status = $2,
			    punch_diff = $3,
			    hours_diff = $4,
			    missing_in_secondary = $5,
			    failed_venues = $6,
			    report_path = $7,
			    error = $8,
			    finished_at = $9
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query,
			run.ID, run.Status, run.PunchDiff, run.HoursDiff,
			run.MissingInSecondary, run.FailedVenues, run.ReportPath,
			run.Error, run.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to finalize run: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return recon.ErrRunNotFound
		}

		for _, v := range venues {
			insert := `
				INSERT INTO reconciliation_run_venues (
					run_id, site_id, venue_name,
					authoritative_punches, secondary_punches,
					authoritative_hours, secondary_hours,
					punch_diff, hours_diff,
					incomplete, incomplete_employees,
					missing_in_secondary, failed, failure_reason
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

			_, err := tx.Exec(ctx, insert,
				run.ID, v.SiteID, v.VenueName,
				v.AuthoritativePunches, v.SecondaryPunches,
				v.AuthoritativeHours, v.SecondaryHours,
				v.PunchDiff, v.HoursDiff,
				v.Incomplete, strings.Join(v.IncompleteEmployees, ","),
				len(v.MissingInSecondary), v.Failed, v.FailureReason,
			)
			if err != nil {
				return fmt.Errorf("failed to record venue row %s: %w", v.SiteID, err)
			}
		}
		return nil
	})
}

// GetByID implements recon.RunRepository.
func (r *RunRepositoryImpl) GetByID(ctx context.Context, id string) (recon.Run, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_type, environment, from_date, to_date, status,
		       COALESCE(punch_diff, 0), COALESCE(hours_diff, 0),
		       COALESCE(missing_in_secondary, 0), COALESCE(failed_venues, 0),
		       COALESCE(report_path, ''), COALESCE(error, ''),
		       started_at, finished_at
		FROM reconciliation_runs
		WHERE id = $1`

	run, err := scanRun(querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recon.Run{}, recon.ErrRunNotFound
		}
		return recon.Run{}, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

// List implements recon.RunRepository.
func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]recon.Run, error) {
	querier := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_type, environment, from_date, to_date, status,
		       COALESCE(punch_diff, 0), COALESCE(hours_diff, 0),
		       COALESCE(missing_in_secondary, 0), COALESCE(failed_venues, 0),
		       COALESCE(report_path, ''), COALESCE(error, ''),
		       started_at, finished_at
		FROM reconciliation_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := querier.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []recon.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (recon.Run, error) {
	var run recon.Run
	err := row.Scan(
		&run.ID, &run.RunType, &run.Environment, &run.FromDate, &run.ToDate,
		&run.Status, &run.PunchDiff, &run.HoursDiff, &run.MissingInSecondary,
		&run.FailedVenues, &run.ReportPath, &run.Error,
		&run.StartedAt, &run.FinishedAt,
	)
	return run, err
}
