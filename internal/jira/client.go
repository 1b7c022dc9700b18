// Package jira provides a JIRA issue search client.
//
// Clients are built per request from the caller's credentials and must not
// be cached between invocations.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andreav/meeting-pulse/pkg/logger"
)

// Credentials identify one user against a JIRA instance.
type Credentials struct {
	Host     string
	Email    string
	APIToken string
}

// Client searches issues over the JIRA REST API v3.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for one set of credentials.
func NewClient(creds Credentials, log *logger.Logger) *Client {
	return &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// Issue is a JIRA issue as returned by the search endpoint.
type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields holds the issue fields requested by Search.
type Fields struct {
	Summary  string `json:"summary"`
	Status   *Named `json:"status"`
	Priority *Named `json:"priority"`
	Assignee *struct {
		DisplayName string `json:"displayName"`
	} `json:"assignee"`
	Project *struct {
		Key string `json:"key"`
	} `json:"project"`
	TimeEstimate *int     `json:"timeestimate"` // seconds
	DueDate      string   `json:"duedate"`      // YYYY-MM-DD
	Labels       []string `json:"labels"`
}

// Named is the {name: ...} shape JIRA uses for enumerated fields.
type Named struct {
	Name string `json:"name"`
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
	Values []Issue `json:"values"` // some deployments return "values" instead
}

// Search runs a JQL query and returns the matching issues.
func (c *Client) Search(ctx context.Context, jql string, maxResults int) ([]Issue, error) {
	payload, err := json.Marshal(searchRequest{
		JQL:        jql,
		MaxResults: maxResults,
		Fields:     []string{"summary", "status", "priority", "assignee", "project", "timeestimate", "duedate", "labels"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	endpoint := c.creds.Host + "/rest/api/3/search/jql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.SetBasicAuth(c.creds.Email, c.creds.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jira API returned %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode jira response: %w", err)
	}

	issues := result.Issues
	if len(issues) == 0 {
		issues = result.Values
	}

	c.log.Debug().
		Int("issues", len(issues)).
		Msg("JIRA search complete")

	return issues, nil
}
