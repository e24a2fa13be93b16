package vmp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ItemError is one per-record rejection inside a batch response.
// Occurrence upserts are keyed by ID; service-hours rejections are keyed
// by the (JobID, UserID) pair.
type ItemError struct {
	ID      string `json:"id"`
	JobID   string `json:"vmpJobId"`
	UserID  string `json:"varUserId"`
	Message string `json:"message"`
}

// BatchResult is the partitioned outcome of a batch submission: the records
// the platform accepted and the ones it rejected, with reasons.
type BatchResult struct {
	Success struct {
		Total int      `json:"total"`
		IDs   []string `json:"ids"`
	} `json:"success"`
	Error struct {
		Total int         `json:"total"`
		Data  []ItemError `json:"data"`
	} `json:"error"`
}

// LinkResult is the outcome of a volunteer linkage call.
type LinkResult struct {
	IsLink  *bool  `json:"isLink"`
	Message string `json:"message"`
}

// ServiceHourRecord is one attendance record in the platform's schema.
type ServiceHourRecord struct {
	VmpJobID      string  `json:"vmpJobId"`
	VarUserID     string  `json:"varUserId"`
	StartDateTime string  `json:"startDateTime"`
	EndDateTime   string  `json:"endDateTime"`
	Hour          float64 `json:"hour"`
}

// Client talks to the destination platform API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewClient creates a new platform client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
		sleep:  time.Sleep,
	}
}

// WithHTTPClient overrides the underlying HTTP client. Tests use it to
// point the client at a TLS test server.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Login exchanges the configured account email for a bearer token.
func (c *Client) Login(ctx context.Context) (string, error) {
	body, err := c.post(ctx, c.cfg.LoginPath, "", map[string]string{"email": c.cfg.Email})
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	return payload.AccessToken, nil
}

// UpsertOccurrences submits one batch of canonical records and returns the
// partitioned per-record outcome.
func (c *Client) UpsertOccurrences(ctx context.Context, token string, batch []json.RawMessage) (*BatchResult, error) {
	return c.postBatch(ctx, c.cfg.UpsertPath, token, batch)
}

// Unlist flips one occurrence to unlisted visibility on the platform.
func (c *Client) Unlist(ctx context.Context, token, occurrenceID string) (*BatchResult, error) {
	body := []map[string]string{{
		"vmpJobId":   occurrenceID,
		"visibility": "unlisted",
	}}
	return c.postBatch(ctx, c.cfg.UnlistPath, token, body)
}

// SendServiceHours submits one batch of attendance records.
func (c *Client) SendServiceHours(ctx context.Context, token string, batch []ServiceHourRecord) (*BatchResult, error) {
	return c.postBatch(ctx, c.cfg.HoursPath, token, batch)
}

// LinkVolunteer links (or unlinks) a platform account to a source-side
// volunteer. A 404 means the platform has never seen the user; found is
// false and no error is returned in that case.
func (c *Client) LinkVolunteer(ctx context.Context, token, userID string, link bool) (result *LinkResult, found bool, err error) {
	payload := map[string]any{"varUserId": userID, "isLink": link}
	body, err := c.postWithNotFound(ctx, c.cfg.LinkPath, token, payload)
	if err != nil {
		return nil, false, err
	}
	if body == nil {
		return nil, false, nil
	}

	var res LinkResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, true, fmt.Errorf("failed to decode link response: %w", err)
	}
	return &res, true, nil
}

// IsVolunteerLinked reports whether the platform knows the user and has an
// active link for them. Unknown (404) users report found=false.
func (c *Client) IsVolunteerLinked(ctx context.Context, token, userID string) (linked, found bool, err error) {
	res, found, err := c.LinkVolunteer(ctx, token, userID, true)
	if err != nil || !found {
		return false, found, err
	}
	return res.IsLink != nil && *res.IsLink, true, nil
}

func (c *Client) postBatch(ctx context.Context, path, token string, payload any) (*BatchResult, error) {
	body, err := c.post(ctx, path, token, payload)
	if err != nil {
		return nil, err
	}

	var result BatchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	return &result, nil
}

// post retries on any non-200 response with linearly increasing backoff.
func (c *Client) post(ctx context.Context, path, token string, payload any) ([]byte, error) {
	body, _, err := c.doPost(ctx, path, token, payload, false)
	return body, err
}

// postWithNotFound is post with a carve-out: a 404 is terminal and returns
// a nil body instead of being retried.
func (c *Client) postWithNotFound(ctx context.Context, path, token string, payload any) ([]byte, error) {
	body, notFound, err := c.doPost(ctx, path, token, payload, true)
	if notFound {
		return nil, nil
	}
	return body, err
}

func (c *Client) doPost(ctx context.Context, path, token string, payload any, allowNotFound bool) (body []byte, notFound bool, err error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode request: %w", err)
	}

	attempts := c.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := time.Duration(c.cfg.BackoffSeconds) * time.Second

	var lastStatus int
	for attempt := 1; attempt <= attempts; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost,
			"https://"+c.cfg.Host+"/"+path, bytes.NewReader(data))
		if reqErr != nil {
			return nil, false, reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, doErr := c.http.Do(req)
		if doErr == nil {
			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				return respBody, false, readErr
			case resp.StatusCode == http.StatusNotFound && allowNotFound:
				return nil, true, nil
			default:
				lastStatus = resp.StatusCode
				c.logger.Warn("platform call failed",
					zap.String("path", path),
					zap.Int("status", resp.StatusCode),
					zap.Int("attempt", attempt))
			}
		} else {
			c.logger.Warn("platform call failed",
				zap.String("path", path),
				zap.Error(doErr),
				zap.Int("attempt", attempt))
		}

		if attempt < attempts {
			c.sleep(time.Duration(attempt) * backoff)
		}
	}

	if lastStatus != 0 {
		return nil, false, fmt.Errorf("platform returned status %d after %d attempts", lastStatus, attempts)
	}
	return nil, false, fmt.Errorf("platform unreachable after %d attempts", attempts)
}
