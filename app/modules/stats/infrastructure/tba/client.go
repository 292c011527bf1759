// Package tba is a minimal client for The Blue Alliance read API v3.
package tba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

const (
	maxAttempts   = 3
	retryBackoff  = 500 * time.Millisecond
	requestTimeout = 10 * time.Second
)

var (
	// ErrNotFound is returned for unknown event keys.
	ErrNotFound = errors.New("tba: event not found")

	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = errors.New("tba: unauthorized")
)

// ColumnInfo describes one column of an event's ranking table.
type ColumnInfo struct {
	Name      string `json:"name"`
	Precision int    `json:"precision"`
}

// WinLossRecord is a team's qualification record.
type WinLossRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// RankingRow is one team's row in the event rankings.
type RankingRow struct {
	TeamKey       string         `json:"team_key"`
	Rank          int            `json:"rank"`
	MatchesPlayed int            `json:"matches_played"`
	Record        *WinLossRecord `json:"record"`
	SortOrders    []float64      `json:"sort_orders"`
	ExtraStats    []float64      `json:"extra_stats"`
}

// RankingsResponse is the /event/{key}/rankings payload.
type RankingsResponse struct {
	Rankings       []RankingRow `json:"rankings"`
	SortOrderInfo  []ColumnInfo `json:"sort_order_info"`
	ExtraStatsInfo []ColumnInfo `json:"extra_stats_info"`
}

// OPRsResponse is the /event/{key}/oprs payload.
type OPRsResponse struct {
	OPRs  map[string]float64 `json:"oprs"`
	DPRs  map[string]float64 `json:"dprs"`
	CCWMs map[string]float64 `json:"ccwms"`
}

// EventTeam is one entry of /event/{key}/teams/simple.
type EventTeam struct {
	Key        string `json:"key"`
	TeamNumber int    `json:"team_number"`
	Nickname   string `json:"nickname"`
}

// Client talks to The Blue Alliance with auth, pacing, and bounded retry.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a TBA client. The limiter keeps request bursts well under
// the API's documented ceiling.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		logger:     logger,
	}
}

// Rankings fetches the ranking table for an event.
func (c *Client) Rankings(ctx context.Context, eventKey string) (*RankingsResponse, error) {
	var resp RankingsResponse
	if err := c.get(ctx, fmt.Sprintf("/event/%s/rankings", eventKey), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OPRs fetches the calculated contribution stats for an event.
func (c *Client) OPRs(ctx context.Context, eventKey string) (*OPRsResponse, error) {
	var resp OPRsResponse
	if err := c.get(ctx, fmt.Sprintf("/event/%s/oprs", eventKey), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Teams fetches the team list for an event.
func (c *Client) Teams(ctx context.Context, eventKey string) ([]EventTeam, error) {
	var resp []EventTeam
	if err := c.get(ctx, fmt.Sprintf("/event/%s/teams/simple", eventKey), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// get performs one paced, authenticated GET with up to three attempts.
// Server errors and transport failures are retried with linear backoff;
// client errors are terminal.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		lastErr = c.doOnce(ctx, path, out)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrNotFound) || errors.Is(lastErr, ErrUnauthorized) {
			return lastErr
		}

		c.logger.WarnContext(ctx, "TBA request failed, retrying",
			attr.String("path", path),
			attr.Int("attempt", attempt),
			attr.Error(lastErr),
		)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}
	return fmt.Errorf("tba: giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-TBA-Auth-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("tba: unexpected status %d for %s", resp.StatusCode, path)
	}
}
