package httpserver

import (
	"net/http"
	"time"

	"movieparadise/errs"
	"movieparadise/movie"
	"movieparadise/pkg/sentry"
	"movieparadise/session"

	"github.com/labstack/echo/v4"
)

type sortOption struct {
	Value movie.SortBy
	Label string
}

var sortOptions = []sortOption{
	{Value: movie.SortByDate, Label: "Release Date"},
	{Value: movie.SortByRating, Label: "Rating"},
}

type pageData struct {
	session.View
	Trending    []movie.Movie
	SortOptions []sortOption
	MinQuery    int
	Year        int
}

func (s *Server) RegisterPageRoutes() {
	s.Router.GET("/", s.handleIndex, s.withSession)
	s.Router.POST("/search", s.handlePageSearch, s.withSession)
	s.Router.POST("/selection", s.handlePageSelect, s.withSession)
	s.Router.POST("/filters", s.handlePageFilters, s.withSession)
	s.Router.POST("/recommendations", s.handlePageRecommend, s.withSession)
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", pageData{
		View:        currentSession(c).View(),
		Trending:    s.trendingMovies(c),
		SortOptions: sortOptions,
		MinQuery:    session.MinQueryLength,
		Year:        time.Now().Year(),
	})
}

// trendingMovies never fails the page; without trending movies the section
// is hidden.
func (s *Server) trendingMovies(c echo.Context) []movie.Movie {
	if s.MovieService == nil {
		return nil
	}
	movies, err := s.MovieService.Trending(c.Request().Context())
	if err != nil {
		if errs.ErrorCode(err) != errs.ENOTIMPLEMENTED {
			s.Logger.Warnw("cannot load trending movies", "request_id", s.requestID(c), "error", err)
			sentry.WithContext(c).
				WithExtras(map[string]interface{}{"error": err.Error()}).
				Warning("cannot load trending movies")
		}
		return nil
	}
	return movies
}

func (s *Server) handlePageSearch(c echo.Context) error {
	if err := s.runSessionSearch(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handlePageSelect(c echo.Context) error {
	if err := s.selectMovie(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handlePageFilters(c echo.Context) error {
	if err := s.applyFilters(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handlePageRecommend(c echo.Context) error {
	if err := s.recommendMovies(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
