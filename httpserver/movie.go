package httpserver

import (
	"net/http"

	"movieparadise/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/search", s.handleSearchMovies)
	g.GET("/movies/:id/recommendations", s.handleRecommendMovies)
	g.GET("/trending", s.handleTrendingMovies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Search movies through the configured backend
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} APIResponse{result=MovieList}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchMoviesRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid search request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	results, err := s.MovieService.Search(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, results)
}

// handleRecommendMovies godoc
// @Summary Recommend Movies
// @Description Up to six movies similar to the given one
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} APIResponse{result=MovieList}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/movies/{id}/recommendations [get]
func (s *Server) handleRecommendMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid movie id")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	movies, err := s.MovieService.Recommend(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}

// handleTrendingMovies godoc
// @Summary Trending Movies
// @Description Movies trending this week
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse{result=MovieList}
// @Failure 501 {object} APIResponse
// @Router /api/trending [get]
func (s *Server) handleTrendingMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	movies, err := s.MovieService.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return writeList(c, http.StatusOK, movies)
}
