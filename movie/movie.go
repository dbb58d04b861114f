package movie

import (
	"math"
	"time"

	"movieparadise/errs"
)

const (
	ImageBaseURL      = "https://image.tmdb.org/t/p"
	PosterSize        = "w500"
	BackdropSize      = "original"
	PlaceholderPoster = "/static/placeholder.svg"

	releaseDateLayout = "2006-01-02"
)

var ErrInvalidQuery = errs.Errorf(errs.EINVALID, "invalid search query")

// Movie is a film as returned by the search backend. Values are passed by
// copy and never modified after they are fetched.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date"`
}

// Released parses ReleaseDate. It reports false for empty or malformed dates.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the release year, or an empty string when the date is unknown.
func (m Movie) Year() string {
	if t, ok := m.Released(); ok {
		return t.Format("2006")
	}
	return ""
}

func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return PlaceholderPoster
	}
	return ImageBaseURL + "/" + PosterSize + m.PosterPath
}

func (m Movie) BackdropURL() string {
	if m.BackdropPath == "" {
		return ""
	}
	return ImageBaseURL + "/" + BackdropSize + m.BackdropPath
}

// Stars converts the 0-10 vote average to a five star scale rounded to the
// nearest half star.
func (m Movie) Stars() float64 {
	stars := math.Round(m.VoteAverage) / 2
	return math.Max(0, math.Min(5, stars))
}
