// Package report renders the reconciliation report model to HTML and
// to the short text summary used in notifications.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
)

//go:embed templates/report.html
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"hours": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"utc":   func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the HTML report for the model.
func (r *Renderer) Render(model recon.ReportModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary produces the one-message text digest of a run.
func Summary(model recon.ReportModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timecard reconciliation %s (%s, %s)\n",
		model.FromDate, model.Environment, model.RunType)
	fmt.Fprintf(&b, "Venues: %d (%d failed) | Punch diff: %d | Hours diff: %s | Missing in secondary: %d",
		model.Totals.Venues,
		model.Totals.FailedVenues,
		model.Totals.PunchDiff,
		model.Totals.HoursDiff.StringFixed(2),
		model.Totals.MissingInSecondary,
	)
	if model.Totals.IncompleteVenues > 0 {
		fmt.Fprintf(&b, "\nVenues with incomplete punch pairs: %d", model.Totals.IncompleteVenues)
	}
	return b.String()
}
