package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"movieparadise/errs"
	"movieparadise/movie"

	"go.uber.org/zap"
)

const DefaultHeroTitle = "Discover Your Next Favorite"

// Session is the server side state of one visitor's page: the search
// widget, the selection list, the sort filters and the latest
// recommendations.
type Session struct {
	ID     string
	Search *SearchClient

	movies movie.Service

	mu              sync.Mutex
	selection       Selection
	filters         movie.Filters
	recommendations *Recommendations
	lastSeen        time.Time
}

func New(id string, svc movie.Service, logger *zap.SugaredLogger) *Session {
	return &Session{
		ID:       id,
		Search:   NewSearchClient(svc, logger),
		movies:   svc,
		filters:  movie.DefaultFilters(),
		lastSeen: time.Now(),
	}
}

// Recommendations are the titles suggested for one picked movie.
type Recommendations struct {
	For    movie.Movie   `json:"for"`
	Movies []movie.Movie `json:"movies"`
}

// Hero is the banner shown above the search widget.
type Hero struct {
	Title       string `json:"title"`
	Overview    string `json:"overview,omitempty"`
	BackdropURL string `json:"backdropUrl,omitempty"`
}

// View is a consistent snapshot of a session for rendering.
type View struct {
	Query     string        `json:"query"`
	Loading   bool          `json:"loading"`
	Results   []movie.Movie `json:"results"`
	Filters   movie.Filters `json:"filters"`
	Selection []movie.Movie `json:"selection"`
	Hero      Hero          `json:"hero"`

	Recommendations *Recommendations `json:"recommendations,omitempty"`
}

func (s *Session) RunSearch(ctx context.Context, query string) {
	s.Search.Search(ctx, query)
}

// Select adds the search result with the given id to the selection and
// returns the selection in display order.
func (s *Session) Select(id int) ([]movie.Movie, error) {
	m, ok := s.Search.Find(id)
	if !ok {
		return nil, errs.Errorf(errs.ENOTFOUND, "movie %d is not in the search results", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Add(m, s.filters), nil
}

// Recommend fetches recommendations for a movie the visitor can see: a
// search result, a selected movie or a previous recommendation. A failed
// fetch clears the held recommendations.
func (s *Session) Recommend(ctx context.Context, id int) (Recommendations, error) {
	picked, ok := s.lookup(id)
	if !ok {
		return Recommendations{}, errs.Errorf(errs.ENOTFOUND, "movie %d is not on the page", id)
	}

	movies, err := s.movies.Recommend(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.recommendations = nil
		return Recommendations{}, err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	s.recommendations = &Recommendations{For: picked, Movies: movies}
	return *s.recommendations, nil
}

func (s *Session) lookup(id int) (movie.Movie, bool) {
	if m, ok := s.Search.Find(id); ok {
		return m, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.selection.Find(id); ok {
		return m, true
	}
	if s.recommendations != nil {
		for _, m := range s.recommendations.Movies {
			if m.ID == id {
				return m, true
			}
		}
	}
	return movie.Movie{}, false
}

func (s *Session) Filters() movie.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// ToggleSort applies a pick from the filter menu.
func (s *Session) ToggleSort(by movie.SortBy) movie.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Toggle(by)
	return s.filters
}

func (s *Session) SetFilters(f movie.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}

func (s *Session) View() View {
	results := s.Search.Results()
	if results == nil {
		results = []movie.Movie{}
	}
	v := View{
		Query:   s.Search.Query(),
		Loading: s.Search.Loading(),
		Results: results,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v.Filters = s.filters
	v.Selection = s.selection.Sorted(s.filters)
	if s.recommendations != nil {
		recs := Recommendations{For: s.recommendations.For, Movies: slices.Clone(s.recommendations.Movies)}
		v.Recommendations = &recs
	}
	v.Hero = Hero{Title: DefaultHeroTitle}
	if latest, ok := s.selection.Latest(); ok {
		v.Hero = Hero{
			Title:       latest.Title,
			Overview:    latest.Overview,
			BackdropURL: latest.BackdropURL(),
		}
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
