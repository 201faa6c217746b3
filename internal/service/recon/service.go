package recon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/venueops/timecard-recon-go/internal/config"
	"github.com/venueops/timecard-recon-go/internal/domain/punch"
	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

// CredentialSource provides the upstream API credentials. A load
// failure aborts the whole run: without credentials neither source can
// be fetched and a partial report would be misleading.
type CredentialSource interface {
	Load(ctx context.Context) (map[string]string, error)
}

// ReconciliationServiceImpl implements recon.Service. Venues are
// reconciled by a bounded pool of workers; each worker owns one
// venue's full pipeline and writes its result into a preallocated
// slot, so workers never share mutable state.
type ReconciliationServiceImpl struct {
	authoritative punch.Provider
	secondary     punch.Provider
	directory     venue.Directory
	runs          recon.RunRepository
	credentials   CredentialSource
	publisher     recon.Publisher
	cfg           config.ReconConfig
	environment   string
	logger        *slog.Logger

	normalizer *TimeNormalizer
	matcher    *KeyMatcher
	hours      *HourCalculator
	aggregator *VenueAggregator
	builder    *ReportModelBuilder
}

// NewReconciliationService creates a new recon.Service. publisher may
// be nil, in which case the report model is returned but not rendered
// or delivered anywhere.
func NewReconciliationService(
	authoritative punch.Provider,
	secondary punch.Provider,
	directory venue.Directory,
	runs recon.RunRepository,
	credentials CredentialSource,
	publisher recon.Publisher,
	cfg config.ReconConfig,
	environment string,
	logger *slog.Logger,
) recon.Service {
	return &ReconciliationServiceImpl{
		authoritative: authoritative,
		secondary:     secondary,
		directory:     directory,
		runs:          runs,
		credentials:   credentials,
		publisher:     publisher,
		cfg:           cfg,
		environment:   environment,
		logger:        logger,
		normalizer:    NewTimeNormalizer(),
		matcher:       NewKeyMatcher(),
		hours:         NewHourCalculator(),
		aggregator:    NewVenueAggregator(),
		builder:       NewReportModelBuilder(),
	}
}

// Run implements recon.Service.
func (s *ReconciliationServiceImpl) Run(ctx context.Context, req recon.RunRequest) (recon.ReportModel, error) {
	from, to, err := req.Validate()
	if err != nil {
		return recon.ReportModel{}, err
	}
	runType := req.RunType
	if runType == "" {
		runType = recon.RunTypeAdhoc
	}
	toDate := req.ToDate
	if toDate == "" {
		toDate = req.FromDate
	}

	run := recon.Run{
		ID:          uuid.NewString(),
		RunType:     runType,
		Environment: s.environment,
		FromDate:    req.FromDate,
		ToDate:      toDate,
		Status:      recon.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return recon.ReportModel{}, fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Info("reconciliation run started",
		slog.String("run_id", run.ID),
		slog.String("run_type", string(runType)),
		slog.String("from_date", req.FromDate),
		slog.String("to_date", toDate),
	)

	model, err := s.execute(ctx, run, from, to, runType, req)
	if err != nil {
		s.finishFailed(ctx, run, err)
		return recon.ReportModel{}, err
	}
	return model, nil
}

func (s *ReconciliationServiceImpl) execute(
	ctx context.Context,
	run recon.Run,
	from, to time.Time,
	runType recon.RunType,
	req recon.RunRequest,
) (recon.ReportModel, error) {
	// Credentials are the one dependency with no degraded mode.
	if s.credentials != nil {
		if _, err := s.credentials.Load(ctx); err != nil {
			return recon.ReportModel{}, fmt.Errorf("%w: %v", recon.ErrAuthenticationFailed, err)
		}
	}

	venues, err := s.directory.ListActive(ctx)
	if err != nil {
		return recon.ReportModel{}, fmt.Errorf("failed to list active venues: %w", err)
	}
	if len(venues) == 0 {
		return recon.ReportModel{}, recon.ErrNoActiveVenues
	}

	defaultLoc, err := time.LoadLocation(s.cfg.DefaultTimezone)
	if err != nil {
		defaultLoc = time.UTC
	}
	window := NewBusinessDayWindow(from, to, defaultLoc)

	known := make(map[string]struct{}, len(venues))
	for _, v := range venues {
		known[v.SiteID] = struct{}{}
	}
	trace := s.traceSet(req.TraceEmployeeIDs)

	summaries := make([]recon.VenueSummary, len(venues))
	orphans := make([][]punch.Punch, len(venues))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentVenues)
	for i, v := range venues {
		i, v := i, v
		g.Go(func() error {
			summaries[i], orphans[i] = s.processVenue(gctx, v, from, to, defaultLoc, known, trace)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return recon.ReportModel{}, err
	}

	if row, ok := s.unknownBucket(orphans, trace); ok {
		summaries = append(summaries, row)
	}

	model := s.builder.Build(s.environment, runType, run.FromDate, run.ToDate,
		window.Start(), window.End(), summaries)

	reportPath := ""
	if s.publisher != nil {
		path, err := s.publisher.Publish(ctx, model)
		if err != nil {
			// The reconciliation itself succeeded; a delivery failure
			// is logged and recorded on the run, not propagated.
			s.logger.Error("report publishing failed",
				slog.String("run_id", run.ID), slog.Any("error", err))
		}
		reportPath = path
	}

	s.finishCompleted(ctx, run, model, reportPath)
	return model, nil
}

// processVenue runs the full per-venue pipeline: fetch, normalize,
// window, split off unresolvable site ids, match and compute hours.
// It never returns an error; failures become the venue's summary row.
func (s *ReconciliationServiceImpl) processVenue(
	ctx context.Context,
	v venue.Venue,
	from, to time.Time,
	defaultLoc *time.Location,
	known map[string]struct{},
	trace map[string]struct{},
) (recon.VenueSummary, []punch.Punch) {
	var notes []string

	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		notes = append(notes, fmt.Sprintf("unknown timezone %q, windowing in %s", v.Timezone, defaultLoc))
		loc = defaultLoc
	}
	window := NewBusinessDayWindow(from, to, loc)

	rawAuth, err := s.authoritative.FetchPunches(ctx, v.SiteID, window.Start(), window.End())
	if err != nil {
		s.logger.Error("authoritative fetch failed",
			slog.String("site_id", v.SiteID), slog.Any("error", err))
		return s.aggregator.FailedSummary(v, fmt.Sprintf("authoritative fetch: %v", err)), nil
	}
	rawSec, err := s.secondary.FetchPunches(ctx, v.SiteID, window.Start(), window.End())
	if err != nil {
		s.logger.Error("secondary fetch failed",
			slog.String("site_id", v.SiteID), slog.Any("error", err))
		return s.aggregator.FailedSummary(v, fmt.Sprintf("secondary fetch: %v", err)), nil
	}

	authoritative, authNotes := s.normalize(rawAuth, v, window, trace)
	secondary, secNotes := s.normalize(rawSec, v, window, trace)
	notes = append(notes, authNotes...)
	notes = append(notes, secNotes...)

	var kept, orphaned []punch.Punch
	for _, p := range append(authoritative, secondary...) {
		if p.SiteID != v.SiteID {
			if _, ok := known[p.SiteID]; !ok {
				orphaned = append(orphaned, p)
				continue
			}
		}
		kept = append(kept, p)
	}

	auth := filterSource(kept, punch.SourceAuthoritative)
	sec := filterSource(kept, punch.SourceSecondary)

	missing := s.matcher.MissingInSecondary(auth, sec)
	s.tracePunches(v.SiteID, missing, trace)

	return s.aggregator.Summarize(v, auth, sec, missing,
		s.hours.Calculate(auth), s.hours.Calculate(sec), notes), orphaned
}

// normalize converts and window-filters one source's raw punches.
// Punches that cannot be normalized are dropped with a note.
func (s *ReconciliationServiceImpl) normalize(
	raws []punch.Raw,
	v venue.Venue,
	window BusinessDayWindow,
	trace map[string]struct{},
) ([]punch.Punch, []string) {
	var notes []string
	out := make([]punch.Punch, 0, len(raws))
	for _, raw := range raws {
		p, err := s.normalizer.Normalize(raw)
		if err != nil {
			notes = append(notes, fmt.Sprintf("%s: dropped punch for employee %q: %v",
				raw.Source, raw.EmployeeID, err))
			continue
		}
		if p.SiteID == "" {
			p.SiteID = v.SiteID
		}
		if !window.Contains(p.Time) {
			continue
		}
		if _, ok := trace[p.EmployeeID]; ok {
			s.logger.Info("trace punch",
				slog.String("employee_id", p.EmployeeID),
				slog.String("site_id", p.SiteID),
				slog.String("source", string(p.Source)),
				slog.String("event", string(p.Event)),
				slog.Time("time", p.Time),
			)
		}
		out = append(out, p)
	}
	return out, notes
}

// unknownBucket runs the Venue_Unknown punches through the same match
// and hour pipeline as a real venue.
func (s *ReconciliationServiceImpl) unknownBucket(orphans [][]punch.Punch, trace map[string]struct{}) (recon.VenueSummary, bool) {
	var all []punch.Punch
	for _, chunk := range orphans {
		all = append(all, chunk...)
	}
	if len(all) == 0 {
		return recon.VenueSummary{}, false
	}

	auth := filterSource(all, punch.SourceAuthoritative)
	sec := filterSource(all, punch.SourceSecondary)
	missing := s.matcher.MissingInSecondary(auth, sec)
	s.tracePunches(venue.UnknownSiteID, missing, trace)

	row := s.aggregator.Summarize(venue.Unknown(s.cfg.DefaultTimezone),
		auth, sec, missing, s.hours.Calculate(auth), s.hours.Calculate(sec), nil)
	return row, true
}

func (s *ReconciliationServiceImpl) tracePunches(siteID string, missing []punch.Discrepancy, trace map[string]struct{}) {
	for _, d := range missing {
		if _, ok := trace[d.EmployeeID]; !ok {
			continue
		}
		s.logger.Info("trace discrepancy",
			slog.String("employee_id", d.EmployeeID),
			slog.String("site_id", siteID),
			slog.String("event", string(d.Event)),
			slog.Time("time", d.Time),
		)
	}
}

// traceSet merges the configured trace list with the per-request one.
func (s *ReconciliationServiceImpl) traceSet(requested []string) map[string]struct{} {
	trace := make(map[string]struct{}, len(s.cfg.TraceEmployeeIDs)+len(requested))
	for _, id := range s.cfg.TraceEmployeeIDs {
		trace[id] = struct{}{}
	}
	for _, id := range requested {
		trace[id] = struct{}{}
	}
	return trace
}

func (s *ReconciliationServiceImpl) finishCompleted(ctx context.Context, run recon.Run, model recon.ReportModel, reportPath string) {
	now := time.Now().UTC()
	run.Status = recon.RunStatusCompleted
	run.PunchDiff = model.Totals.PunchDiff
	run.HoursDiff = model.Totals.HoursDiff
	run.MissingInSecondary = model.Totals.MissingInSecondary
	run.FailedVenues = model.Totals.FailedVenues
	run.ReportPath = reportPath
	run.FinishedAt = &now
	if err := s.runs.Finish(ctx, run, model.Venues); err != nil {
		s.logger.Error("failed to finalize run record",
			slog.String("run_id", run.ID), slog.Any("error", err))
	}
}

func (s *ReconciliationServiceImpl) finishFailed(ctx context.Context, run recon.Run, cause error) {
	now := time.Now().UTC()
	run.Status = recon.RunStatusFailed
	run.Error = cause.Error()
	run.FinishedAt = &now
	if err := s.runs.Finish(ctx, run, nil); err != nil {
		s.logger.Error("failed to finalize run record",
			slog.String("run_id", run.ID), slog.Any("error", err))
	}
}

// GetRun implements recon.Service.
func (s *ReconciliationServiceImpl) GetRun(ctx context.Context, id string) (recon.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// ListRuns implements recon.Service.
func (s *ReconciliationServiceImpl) ListRuns(ctx context.Context, limit int) ([]recon.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.runs.List(ctx, limit)
}

func filterSource(punches []punch.Punch, source punch.Source) []punch.Punch {
	out := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		if p.Source == source {
			out = append(out, p)
		}
	}
	return out
}
