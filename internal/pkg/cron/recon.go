package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
)

// reconRunHour is the local wall-clock hour at which the daily run
// fires, one hour after the 05:00 business-day rollover.
const reconRunHour = 6

type ReconJobs struct {
	service  recon.Service
	timezone string

	mu      sync.Mutex
	lastRun string
}

func NewReconJobs(service recon.Service, timezone string) *ReconJobs {
	return &ReconJobs{service: service, timezone: timezone}
}

func (j *ReconJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "daily_timecard_reconciliation",
		Interval: 15 * time.Minute,
		Fn:       j.DailyReconciliation,
	})
}

// DailyReconciliation reconciles yesterday's business day. The job
// ticks frequently but only fires inside the scheduled hour, and at
// most once per calendar day.
func (j *ReconJobs) DailyReconciliation(ctx context.Context) error {
	loc, err := time.LoadLocation(j.timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	if now.Hour() != reconRunHour {
		return nil
	}

	businessDate := now.AddDate(0, 0, -1).Format("2006-01-02")
	if !j.claim(businessDate) {
		return nil
	}

	slog.Info("Cron: Starting daily timecard reconciliation", "business_date", businessDate)

	model, err := j.service.Run(ctx, recon.RunRequest{
		FromDate: businessDate,
		RunType:  recon.RunTypeScheduled,
	})
	if err != nil {
		j.release(businessDate)
		return fmt.Errorf("daily reconciliation for %s failed: %w", businessDate, err)
	}

	slog.Info("Cron: Daily timecard reconciliation finished",
		"business_date", businessDate,
		"venues", model.Totals.Venues,
		"punch_diff", model.Totals.PunchDiff,
		"missing_in_secondary", model.Totals.MissingInSecondary,
	)
	return nil
}

// claim records the business date as handled; it returns false when a
// run for the date already happened.
func (j *ReconJobs) claim(businessDate string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastRun == businessDate {
		return false
	}
	j.lastRun = businessDate
	return true
}

// release forgets a claimed date so a failed run can retry on the next
// tick within the hour.
func (j *ReconJobs) release(businessDate string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastRun == businessDate {
		j.lastRun = ""
	}
}
