// Package calendar provides a Google Calendar events client.
//
// Clients are built per request with the caller's current access token and
// must not be cached: tokens expire and are refreshed by the settings layer.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/andreav/meeting-pulse/internal/config"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// Client fetches calendar events over the Google Calendar REST API.
type Client struct {
	baseURL     string
	calendarID  string
	accessToken string
	httpClient  *http.Client
	log         *logger.Logger
}

// NewClient creates a client bound to one user's access token.
func NewClient(cfg *config.GoogleConfig, accessToken string, log *logger.Logger) *Client {
	return &Client{
		baseURL:     cfg.CalendarURL,
		calendarID:  cfg.CalendarID,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// Event is a calendar event as returned by the events API.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Attendees   []struct {
		Email string `json:"email"`
	} `json:"attendees"`
}

// EventTime holds the start or end instant of an event.
type EventTime struct {
	DateTime string `json:"dateTime"`
}

// Parse returns the instant, or the zero time for all-day entries that carry
// no dateTime.
func (t EventTime) Parse() (time.Time, error) {
	if t.DateTime == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, t.DateTime)
}

type eventsResponse struct {
	Items []Event `json:"items"`
}

// ListEvents fetches events in [timeMin, timeMax), expanded to single events
// and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	params := url.Values{}
	params.Set("timeMin", timeMin.Format(time.RFC3339))
	params.Set("timeMax", timeMax.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("calendar API returned %d: %s", resp.StatusCode, string(body))
	}

	var events eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}

	c.log.Debug().
		Int("events", len(events.Items)).
		Msg("Fetched calendar events")

	return events.Items, nil
}
