package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Document is one raw occurrence record as the index returns it.
// The same occurrenceId may appear twice, once per language variant.
type Document struct {
	OccurrenceID      string   `json:"occurrenceId"`
	Language          string   `json:"Language"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	StartDateTime     string   `json:"startDateTime"`
	EndDateTime       string   `json:"endDateTime"`
	CreatedDate       string   `json:"ocCreatedDate"`
	Expires           string   `json:"opportunityExpires"`
	MaximumAttendance int      `json:"maximumAttendance"`
	VolunteersNeeded  int      `json:"volunteersNeeded"`
	OrganizationID    string   `json:"sponsoringOrganizationID"`
	LocationAddress   string   `json:"locationAddress"`
	DetailURL         string   `json:"detailUrl"`
	ThumbnailURL      string   `json:"thumbnailUrl"`
	CategoryTags      []string `json:"categoryTags"`
	PopulationsServed []string `json:"populationsServed"`
	Latitude          float64  `json:"Nlatitude"`
	Longitude         float64  `json:"Nlongitude"`
	ScheduleType      string   `json:"scheduleType"`
}

const (
	// LanguageEnglish marks the English variant of a document.
	LanguageEnglish = "English"
	// LanguageChinese marks the Chinese variant of a document.
	LanguageChinese = "Chinese"
)

// Client queries the source occurrence index over HTTP with basic auth.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a new index client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// ValidOccurrenceIDs returns the ids of all occurrences the index currently
// considers live: active occurrence, organization and opportunity, the
// date-and-time-specific schedule type, optionally a minimum of open
// volunteer spots, and an end time between now and now plus the configured
// window. The caller supplies now so that the window is computed, not
// observed.
func (c *Client) ValidOccurrenceIDs(ctx context.Context, now time.Time) ([]string, error) {
	criteria := []string{
		"IsOccurrenceActive:true",
		"IsOrganizationServedActive:true",
		"IsOpportunityActive:true",
		`scheduleType:"Date & Time Specific"`,
	}
	if c.cfg.MinVolunteersNeeded > 0 {
		criteria = append(criteria, fmt.Sprintf("volunteersNeeded:[%d TO *]", c.cfg.MinVolunteersNeeded))
	}
	months := c.cfg.WindowMonths
	if months <= 0 {
		months = 2
	}
	criteria = append(criteria, fmt.Sprintf("endDateTime:[NOW TO NOW+%dMONTHS]", months))

	params := url.Values{}
	params.Set("q", strings.Join(criteria, " AND "))
	params.Set("rows", "10000")
	params.Set("fl", "occurrenceId")
	params.Set("group", "true")
	params.Set("group.field", "occurrenceId")
	params.Set("group.format", "simple")
	params.Set("group.main", "true")
	params.Set("group.limit", "1")
	params.Set("group.ngroups", "true")
	params.Set("wt", "csv")
	params.Set("NOW", fmt.Sprintf("%d", now.UnixMilli()))

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	// The CSV response always carries the header row, even when empty.
	ids := make([]string, 0, 64)
	for _, line := range strings.Fields(string(body)) {
		if line == "occurrenceId" || line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}

// FetchOccurrences returns the full documents for the given ids, one per
// language variant. Callers should keep batches at or below 100 ids; the
// index misbehaves on longer id lists.
func (c *Client) FetchOccurrences(ctx context.Context, ids []string) ([]Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "occurrenceId:("+strings.Join(ids, " OR ")+")")
	params.Set("rows", fmt.Sprintf("%d", len(ids)*2+10))
	params.Set("wt", "json")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Response struct {
			NumFound int        `json:"numFound"`
			Docs     []Document `json:"docs"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode index response: %w", err)
	}
	return payload.Response.Docs, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index query returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
