package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// ErrNotFound is returned when the record source reports that a record or
// table does not exist.
var ErrNotFound = errors.New("airtable: record not found")

type Settings struct {
	BaseURL string // optional, defaults to the hosted API
	BaseID  string
	APIKey  string
	Client  *http.Client // optional
}

// Client talks to an Airtable-compatible record store. It is stateless
// aside from credentials and safe to share across calls.
type Client struct {
	http    *http.Client
	baseURL string
	baseID  string
	apiKey  string
}

func NewClient(settings Settings) (*Client, error) {
	if settings.BaseID == "" {
		return nil, fmt.Errorf("airtable: base id is required")
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("airtable: api key is required")
	}

	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := settings.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		baseID:  settings.BaseID,
		apiKey:  settings.APIKey,
	}, nil
}

type listResponse struct {
	Records []recordPayload `json:"records"`
	Offset  string          `json:"offset"`
}

type recordPayload struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// List fetches every record in a table matching the filter formula,
// following pagination offsets. An empty formula lists the whole table.
func (c *Client) List(ctx context.Context, table string, formula string) ([]store.Record, error) {
	var records []store.Record
	offset := ""

	for {
		query := url.Values{}
		if formula != "" {
			query.Set("filterByFormula", formula)
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		var page listResponse
		err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+query.Encode(), nil, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list records from %q: %w", table, err)
		}

		for _, r := range page.Records {
			records = append(records, store.Record{ID: r.ID, Fields: r.Fields})
		}

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *Client) Get(ctx context.Context, table string, id string) (store.Record, error) {
	var payload recordPayload
	err := c.do(ctx, http.MethodGet, c.recordURL(table, id), nil, &payload)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to get record %q from %q: %w", id, table, err)
	}
	return store.Record{ID: payload.ID, Fields: payload.Fields}, nil
}

func (c *Client) Insert(ctx context.Context, table string, fields map[string]any) (store.Record, error) {
	body := map[string]any{"fields": fields}
	var payload recordPayload
	err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &payload)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to insert record into %q: %w", table, err)
	}
	return store.Record{ID: payload.ID, Fields: payload.Fields}, nil
}

func (c *Client) Update(ctx context.Context, table string, id string, fields map[string]any) (store.Record, error) {
	body := map[string]any{"fields": fields}
	var payload recordPayload
	err := c.do(ctx, http.MethodPatch, c.recordURL(table, id), body, &payload)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to update record %q in %q: %w", id, table, err)
	}
	return store.Record{ID: payload.ID, Fields: payload.Fields}, nil
}

func (c *Client) Delete(ctx context.Context, table string, id string) (store.Record, error) {
	var payload recordPayload
	err := c.do(ctx, http.MethodDelete, c.recordURL(table, id), nil, &payload)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to delete record %q from %q: %w", id, table, err)
	}
	return store.Record{ID: payload.ID, Fields: payload.Fields}, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

func (c *Client) recordURL(table string, id string) string {
	return fmt.Sprintf("%s/%s", c.tableURL(table), url.PathEscape(id))
}

func (c *Client) do(ctx context.Context, method string, rawURL string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
