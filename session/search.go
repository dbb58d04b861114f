package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"movieparadise/errs"
	"movieparadise/movie"
	"movieparadise/pkg/logger"
	"movieparadise/pkg/sentry"

	"go.uber.org/zap"
)

// MinQueryLength is the shortest query that reaches the search backend.
const MinQueryLength = 2

// SearchClient holds the latest search results of one session.
//
// Superseded requests are not cancelled: when two searches overlap, the
// response that arrives last wins, even if it answers the older query.
type SearchClient struct {
	searcher movie.Service
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	query   string
	pending int
	results []movie.Movie
}

func NewSearchClient(searcher movie.Service, l *zap.SugaredLogger) *SearchClient {
	if l == nil {
		l = logger.NOOPLogger
	}
	return &SearchClient{searcher: searcher, logger: l}
}

// Search runs query against the backend and replaces the held results.
// Queries shorter than MinQueryLength once trimmed clear the results
// without any I/O. Backend failures are logged and leave the results empty.
func (c *SearchClient) Search(ctx context.Context, query string) {
	c.mu.Lock()
	c.query = query
	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		c.results = nil
		c.mu.Unlock()
		return
	}
	c.pending++
	c.mu.Unlock()

	results, err := c.searcher.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--
	if err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			c.logger.Warnw("rejected search query", "query", query, "error", err)
		} else {
			c.logger.Errorw("error searching movies", "query", query, "error", err)
			sentry.WithExtras(map[string]interface{}{"query": query}).Error(err)
		}
		c.results = nil
		return
	}
	c.results = results
}

func (c *SearchClient) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *SearchClient) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Results returns a copy of the held results.
func (c *SearchClient) Results() []movie.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.results)
}

// Find looks up a movie by id among the held results.
func (c *SearchClient) Find(id int) (movie.Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.results {
		if m.ID == id {
			return m, true
		}
	}
	return movie.Movie{}, false
}
