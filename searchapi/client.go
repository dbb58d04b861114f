// Package searchapi talks to a plain movie search endpoint that answers
// GET <endpoint>?query=<q> with a JSON array of movies.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movieparadise/errs"
	"movieparadise/movie"
)

type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("searchapi: endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("searchapi: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("searchapi: unsupported endpoint scheme %q", u.Scheme)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{endpoint: u, httpClient: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]movie.Movie, error) {
	u := *c.endpoint
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("searchapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searchapi: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("searchapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var movies []movie.Movie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return nil, fmt.Errorf("searchapi: decode response: %w", err)
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

// Recommend is not offered by plain search endpoints.
func (c *Client) Recommend(ctx context.Context, id int, limit int) ([]movie.Movie, error) {
	return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "recommendations are not supported by the search api backend")
}

// Trending is not offered by plain search endpoints.
func (c *Client) Trending(ctx context.Context, limit int) ([]movie.Movie, error) {
	return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "trending movies are not supported by the search api backend")
}
