// Package jservice talks to the remote quiz API and samples board content
// from it.
package jservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DataSourceError is returned for every failure to obtain usable data from
// the remote API: transport errors, unexpected statuses and malformed bodies.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return "data source: " + e.Op + ": " + e.Err.Error()
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// CategorySummary is an entry of the category list endpoint.
type CategorySummary struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	CluesCount int    `json:"clues_count"`
}

// CategoryDetail is the full category record including all clues.
type CategoryDetail struct {
	ID         int          `json:"id"`
	Title      string       `json:"title"`
	CluesCount int          `json:"clues_count"`
	Clues      []ClueRecord `json:"clues"`
}

// ClueRecord is a clue as the API returns it. Value is nil for clues the
// API has no point value for.
type ClueRecord struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Value    *int   `json:"value"`
}

type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client for the API rooted at baseURL
// (e.g. "https://rithm-jeopardy.herokuapp.com/api/").
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}
	if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
		u.Path += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: u, http: httpClient}, nil
}

// Categories fetches up to count categories with their clue counts.
func (c *Client) Categories(ctx context.Context, count int) ([]CategorySummary, error) {
	var out []CategorySummary
	q := url.Values{"count": {strconv.Itoa(count)}}
	if err := c.get(ctx, "categories", q, &out); err != nil {
		return nil, &DataSourceError{Op: "list categories", Err: err}
	}
	return out, nil
}

// Category fetches the full record of one category.
func (c *Client) Category(ctx context.Context, id int) (CategoryDetail, error) {
	var out CategoryDetail
	q := url.Values{"id": {strconv.Itoa(id)}}
	if err := c.get(ctx, "category", q, &out); err != nil {
		return CategoryDetail{}, &DataSourceError{Op: fmt.Sprintf("get category %d", id), Err: err}
	}
	return out, nil
}

// Check reports whether the API answers a minimal category list request.
func (c *Client) Check(ctx context.Context) error {
	_, err := c.Categories(ctx, 1)
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	u := c.base.ResolveReference(&url.URL{Path: path, RawQuery: q.Encode()})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u.Path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", u.Path, err)
	}
	return nil
}
