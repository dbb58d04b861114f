package session

import (
	"slices"

	"movieparadise/movie"
)

// Selection is the list of movies picked by the user, most recent first.
// The same movie may appear more than once. It is not safe for concurrent
// use; Session serialises access to it.
type Selection struct {
	items []movie.Movie
}

// Add prepends m and returns the selection sorted under f.
func (s *Selection) Add(m movie.Movie, f movie.Filters) []movie.Movie {
	s.items = append([]movie.Movie{m}, s.items...)
	return s.Sorted(f)
}

func (s *Selection) Sorted(f movie.Filters) []movie.Movie {
	return movie.Sort(s.items, f)
}

// Items returns the selection in insertion order.
func (s *Selection) Items() []movie.Movie {
	return slices.Clone(s.items)
}

// Latest returns the most recently added movie.
func (s *Selection) Latest() (movie.Movie, bool) {
	if len(s.items) == 0 {
		return movie.Movie{}, false
	}
	return s.items[0], true
}

// Find returns the selected movie with the given id.
func (s *Selection) Find(id int) (movie.Movie, bool) {
	for _, m := range s.items {
		if m.ID == id {
			return m, true
		}
	}
	return movie.Movie{}, false
}

func (s *Selection) Len() int {
	return len(s.items)
}
