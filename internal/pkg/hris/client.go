// Package hris fetches punches from the HR system's time-clock custom
// report, the secondary source being reconciled against the POS.
package hris

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/venueops/timecard-recon-go/internal/config"
	"github.com/venueops/timecard-recon-go/internal/domain/punch"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
)

const (
	credUsername = "hris_username"
	credPassword = "hris_password"
)

// CredentialSource is the subset of the vault client the HRIS client
// needs.
type CredentialSource interface {
	Load(ctx context.Context) (map[string]string, error)
}

// Client implements punch.Provider against the HRIS custom report
// endpoint. The report speaks XML and is scoped by the HRIS's own
// location id, so the client resolves the site through the venue
// directory first.
type Client struct {
	host        string
	tenant      string
	credentials CredentialSource
	directory   venue.Directory
	http        *http.Client
}

func NewClient(cfg config.HRISConfig, credentials CredentialSource, directory venue.Directory) *Client {
	return &Client{
		host:        cfg.Host,
		tenant:      cfg.Tenant,
		credentials: credentials,
		directory:   directory,
		http:        &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
}

// reportData mirrors the XML shape of the time-clock report.
type reportData struct {
	XMLName xml.Name      `xml:"Report_Data"`
	Entries []reportEntry `xml:"Report_Entry"`
}

type reportEntry struct {
	EmployeeID     string `xml:"Employee_ID"`
	EmployeeName   string `xml:"Worker"`
	ClockEventTime string `xml:"Clock_Event_Time"`
	EventType      string `xml:"Event_Type"`
	TimezoneOffset string `xml:"Timezone_Offset"`
}

// FetchPunches implements punch.Provider.
func (c *Client) FetchPunches(ctx context.Context, siteID string, start, end time.Time) ([]punch.Raw, error) {
	creds, err := c.credentials.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hris credentials: %w", err)
	}
	username, password := creds[credUsername], creds[credPassword]
	if username == "" || password == "" {
		return nil, fmt.Errorf("hris credentials missing %s or %s", credUsername, credPassword)
	}

	v, err := c.directory.Resolve(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("cannot map site %s to an hris location: %w", siteID, err)
	}

	query := url.Values{}
	query.Set("Location", v.HRISLocationID)
	query.Set("From_Moment", start.Format(time.RFC3339))
	query.Set("To_Moment", end.Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/ccx/service/customreport2/%s/time_clock_events?%s",
		baseURL(c.host), c.tenant, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hris request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("hris returned status %d: %s", resp.StatusCode, string(body))
	}

	var report reportData
	if err := xml.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode hris report: %w", err)
	}

	return convertEntries(report.Entries, siteID), nil
}

// convertEntries maps report rows to raw punches. Meal events pair up
// the same way breaks do on the POS side: meal-out closes the worked
// interval, meal-in reopens it. Rows with an unrecognized event type
// are carried through for the normalizer to reject and record.
func convertEntries(entries []reportEntry, siteID string) []punch.Raw {
	raws := make([]punch.Raw, 0, len(entries))
	for _, entry := range entries {
		raws = append(raws, punch.Raw{
			EmployeeID:   entry.EmployeeID,
			EmployeeName: entry.EmployeeName,
			SiteID:       siteID,
			Timestamp:    entry.ClockEventTime,
			Offset:       entry.TimezoneOffset,
			Event:        eventType(entry.EventType),
			Source:       punch.SourceSecondary,
		})
	}
	return raws
}

// baseURL defaults to https when the configured host carries no
// scheme.
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

func eventType(reported string) punch.EventType {
	switch strings.ToLower(reported) {
	case "check-in", "checkin", "meal-in":
		return punch.CheckIn
	case "check-out", "checkout", "meal-out":
		return punch.CheckOut
	default:
		return punch.EventType(reported)
	}
}
