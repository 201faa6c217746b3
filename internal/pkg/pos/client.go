// Package pos fetches punches from the point-of-sale labor API, the
// authoritative source for timecards.
package pos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/venueops/timecard-recon-go/internal/config"
	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

const (
	credClientID     = "pos_client_id"
	credClientSecret = "pos_client_secret"

	siteHeader = "Restaurant-External-ID"
)

// CredentialSource is the subset of the vault client the POS client
// needs.
type CredentialSource interface {
	Load(ctx context.Context) (map[string]string, error)
}

// Client implements punch.Provider against the POS labor API, using
// OAuth2 client credentials loaded from Vault on first use.
type Client struct {
	host        string
	authURL     string
	credentials CredentialSource
	timeout     time.Duration

	mu   sync.Mutex
	http *http.Client
}

func NewClient(cfg config.POSConfig, credentials CredentialSource) *Client {
	return &Client{
		host:        cfg.Host,
		authURL:     cfg.AuthURL,
		credentials: credentials,
		timeout:     time.Duration(cfg.TimeoutSecs) * time.Second,
	}
}

// timeEntry is one shift record in the labor API. A single entry
// expands into several punches: clock in, clock out and one punch pair
// per break.
type timeEntry struct {
	GUID              string `json:"guid"`
	Deleted           bool   `json:"deleted"`
	InDate            string `json:"inDate"`
	OutDate           string `json:"outDate"`
	EmployeeReference struct {
		ExternalID string `json:"externalId"`
	} `json:"employeeReference"`
	Breaks []struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"breaks"`
}

// FetchPunches implements punch.Provider.
func (c *Client) FetchPunches(ctx context.Context, siteID string, start, end time.Time) ([]punch.Raw, error) {
	httpClient, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("startDate", start.Format(time.RFC3339))
	query.Set("endDate", end.Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/labor/v1/timeEntries?%s", baseURL(c.host), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(siteHeader, siteID)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pos request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pos returned status %d: %s", resp.StatusCode, string(body))
	}

	var entries []timeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode pos response: %w", err)
	}

	return expandEntries(entries, siteID), nil
}

// expandEntries flattens time entries into individual punches. Breaks
// count as a check-out at the start and a check-in at the end, which
// is how the secondary system records them as well.
func expandEntries(entries []timeEntry, siteID string) []punch.Raw {
	var raws []punch.Raw
	add := func(employeeID, ts string, event punch.EventType) {
		if ts == "" {
			return
		}
		raws = append(raws, punch.Raw{
			EmployeeID: employeeID,
			SiteID:     siteID,
			Timestamp:  ts,
			Event:      event,
			Source:     punch.SourceAuthoritative,
		})
	}

	for _, entry := range entries {
		if entry.Deleted {
			continue
		}
		id := employeeID(entry.EmployeeReference.ExternalID)
		add(id, entry.InDate, punch.CheckIn)
		add(id, entry.OutDate, punch.CheckOut)
		for _, b := range entry.Breaks {
			add(id, b.StartDate, punch.CheckOut)
			add(id, b.EndDate, punch.CheckIn)
		}
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

// employeeID strips the tenant prefix from an external employee
// reference like "venueops:1035434".
func employeeID(externalID string) string {
	if idx := strings.LastIndexByte(externalID, ':'); idx >= 0 {
		return externalID[idx+1:]
	}
	return externalID
}

// client lazily builds the OAuth2-wrapped HTTP client once the Vault
// credentials are available.
func (c *Client) client(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http != nil {
		return c.http, nil
	}

	creds, err := c.credentials.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pos credentials: %w", err)
	}
	clientID, clientSecret := creds[credClientID], creds[credClientSecret]
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("pos credentials missing %s or %s", credClientID, credClientSecret)
	}

	oauthCfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     c.authURL,
	}
	base := &http.Client{Timeout: c.timeout}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	c.http = oauthCfg.Client(tokenCtx)
	c.http.Timeout = c.timeout
	return c.http, nil
}
