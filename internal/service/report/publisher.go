// Package report delivers finished reconciliation reports: it renders
// the model, stores the HTML artifact and posts the run summary.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/pkg/report"
	"github.com/venueops/timecard-recon-go/internal/pkg/storage"
)

// Notifier posts a short text message about a finished run.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// PublisherImpl implements recon.Publisher.
type PublisherImpl struct {
	renderer *report.Renderer
	store    storage.ReportStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewPublisher(renderer *report.Renderer, store storage.ReportStore, notifier Notifier, logger *slog.Logger) recon.Publisher {
	return &PublisherImpl{
		renderer: renderer,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish implements recon.Publisher. A notification failure does not
// lose the stored report; it is logged and the report path is still
// returned.
func (p *PublisherImpl) Publish(ctx context.Context, model recon.ReportModel) (string, error) {
	html, err := p.renderer.Render(model)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("timecard_reconciliation_%s_%s.html",
		model.FromDate, p.now().UTC().Format("20060102T150405Z"))
	path, err := p.store.Save(ctx, filename, html)
	if err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	text := report.Summary(model) + "\nReport: " + path
	if err := p.notifier.Notify(ctx, text); err != nil {
		p.logger.Error("run notification failed", slog.Any("error", err))
	}
	return path, nil
}
