// Package docs provides a Google Docs document client.
//
// Clients are built per request with the caller's current access token and
// must not be cached: tokens expire and are refreshed by the settings layer.
package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andreav/meeting-pulse/internal/config"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

// Client fetches documents over the Google Docs REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *logger.Logger
}

// NewClient creates a client bound to one user's access token.
func NewClient(cfg *config.GoogleConfig, accessToken string, log *logger.Logger) *Client {
	return &Client{
		baseURL:     cfg.DocsURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// Document is a Google Docs document as returned by documents.get.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Body       struct {
		Content []structuralElement `json:"content"`
	} `json:"body"`
}

type structuralElement struct {
	Paragraph *paragraph `json:"paragraph"`
}

type paragraph struct {
	Elements []paragraphElement `json:"elements"`
}

type paragraphElement struct {
	TextRun *textRun `json:"textRun"`
}

type textRun struct {
	Content string `json:"content"`
}

// Text flattens the document body to plain text, paragraph text runs only.
// Tables, images and other structural elements carry no scoreable text and
// are skipped.
func (d *Document) Text() string {
	var b strings.Builder
	for i := range d.Body.Content {
		p := d.Body.Content[i].Paragraph
		if p == nil {
			continue
		}
		for j := range p.Elements {
			if run := p.Elements[j].TextRun; run != nil {
				b.WriteString(run.Content)
			}
		}
	}
	return b.String()
}

// GetDocumentText fetches a document and returns its plain-text content.
func (c *Client) GetDocumentText(ctx context.Context, documentID string) (string, error) {
	endpoint := fmt.Sprintf("%s/documents/%s", c.baseURL, url.PathEscape(documentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create docs request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("docs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("docs API returned %d: %s", resp.StatusCode, string(body))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode docs response: %w", err)
	}

	text := doc.Text()

	c.log.Debug().
		Str("document_id", documentID).
		Int("chars", len(text)).
		Msg("Fetched document text")

	return text, nil
}
