// Package tmdb searches, recommends and lists trending movies through The
// Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieparadise/errs"
	"movieparadise/movie"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

type Options struct {
	APIKey   string
	Language string
	BaseURL  string
	Timeout  time.Duration
}

// Client implements movie.Repository.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("tmdb: api key is required")
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		apiKey:     opts.APIKey,
		language:   opts.Language,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

type pageResponse struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// Search returns the first page of TMDB results for query, truncated to limit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]movie.Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return c.fetchPage(ctx, "search", "/search/movie", params, limit)
}

// Recommend returns TMDB's recommendations for the movie with the given id.
func (c *Client) Recommend(ctx context.Context, id int, limit int) ([]movie.Movie, error) {
	path := "/movie/" + strconv.Itoa(id) + "/recommendations"
	return c.fetchPage(ctx, "recommendations", path, url.Values{}, limit)
}

// Trending returns the movies trending this week.
func (c *Client) Trending(ctx context.Context, limit int) ([]movie.Movie, error) {
	return c.fetchPage(ctx, "trending", "/trending/movie/week", url.Values{}, limit)
}

func (c *Client) fetchPage(ctx context.Context, op, path string, params url.Values, limit int) ([]movie.Movie, error) {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("page", "1")

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: build request: %w", redactAPIKey(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", op, redactAPIKey(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.Errorf(errs.ENOTFOUND, "movie not found")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tmdb: api error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("tmdb: decode %s response: %w", op, err)
	}

	results := page.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	movies := make([]movie.Movie, len(results))
	for i, r := range results {
		movies[i] = movie.Movie{
			ID:           r.ID,
			Title:        r.Title,
			Overview:     r.Overview,
			VoteAverage:  r.VoteAverage,
			PosterPath:   r.PosterPath,
			BackdropPath: r.BackdropPath,
			ReleaseDate:  r.ReleaseDate,
		}
	}
	return movies, nil
}

// redactAPIKey masks the api_key query parameter in the URL carried by
// transport errors, which would otherwise end up in logs and Sentry.
func redactAPIKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		uerr.URL = "[unparseable url]"
		return err
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	uerr.URL = u.String()
	return err
}
