package httpserver

import (
	"net/http"

	"movieparadise/errs"
	"movieparadise/session"

	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "paradise_sid"
	sessionContextKey = "session"
)

// withSession attaches the visitor's session to the request, starting a
// new one when the cookie is missing or refers to a pruned session.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Sessions == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
		}

		var sess *session.Session
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			sess, _ = s.Sessions.Get(cookie.Value)
		}
		if sess == nil {
			sess = s.Sessions.Create()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

func currentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

func (s *Server) RegisterSessionRoutes(g *echo.Group) {
	g.GET("", s.handleGetSession, s.withSession)
	g.POST("/search", s.handleSessionSearch, s.withSession)
	g.POST("/selection", s.handleSessionSelect, s.withSession)
	g.PUT("/filters", s.handleSessionFilters, s.withSession)
	g.POST("/recommendations", s.handleSessionRecommend, s.withSession)
}

// handleGetSession godoc
// @Summary Get Session
// @Description Current search results, filters, sorted selection and hero banner
// @Tags session
// @Produce json
// @Success 200 {object} APIResponse{result=session.View}
// @Router /api/session [get]
func (s *Server) handleGetSession(c echo.Context) error {
	return writeSuccess(c, http.StatusOK, currentSession(c).View())
}

// handleSessionSearch godoc
// @Summary Search
// @Description Run a search for the session; queries shorter than two characters clear the results
// @Tags session
// @Accept json
// @Produce json
// @Param request body SessionSearchRequest true "Search query"
// @Success 200 {object} APIResponse{result=session.View}
// @Failure 400 {object} APIResponse
// @Router /api/session/search [post]
func (s *Server) handleSessionSearch(c echo.Context) error {
	if err := s.runSessionSearch(c); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, currentSession(c).View())
}

// handleSessionSelect godoc
// @Summary Select Movie
// @Description Add a movie from the current search results to the selection
// @Tags session
// @Accept json
// @Produce json
// @Param request body SelectMovieRequest true "Movie id"
// @Success 200 {object} APIResponse{result=session.View}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/session/selection [post]
func (s *Server) handleSessionSelect(c echo.Context) error {
	if err := s.selectMovie(c); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, currentSession(c).View())
}

// handleSessionFilters godoc
// @Summary Set Filters
// @Description Set the sort key and direction of the selection
// @Tags session
// @Accept json
// @Produce json
// @Param request body FiltersRequest true "Filters"
// @Success 200 {object} APIResponse{result=session.View}
// @Failure 400 {object} APIResponse
// @Router /api/session/filters [put]
func (s *Server) handleSessionFilters(c echo.Context) error {
	if err := s.applyFilters(c); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, currentSession(c).View())
}

// handleSessionRecommend godoc
// @Summary Get Recommendations
// @Description Fetch recommendations for a movie shown on the page
// @Tags session
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Movie id"
// @Success 200 {object} APIResponse{result=session.View}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/session/recommendations [post]
func (s *Server) handleSessionRecommend(c echo.Context) error {
	if err := s.recommendMovies(c); err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, currentSession(c).View())
}

func (s *Server) runSessionSearch(c echo.Context) error {
	var req SessionSearchRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid search request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	currentSession(c).RunSearch(c.Request().Context(), req.Query)
	return nil
}

func (s *Server) selectMovie(c echo.Context) error {
	var req SelectMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid selection request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := currentSession(c).Select(req.ID)
	return err
}

func (s *Server) recommendMovies(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid recommendation request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := currentSession(c).Recommend(c.Request().Context(), req.ID)
	return err
}

func (s *Server) applyFilters(c echo.Context) error {
	var req FiltersRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid filters request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess := currentSession(c)
	f, err := req.Apply(sess.Filters())
	if err != nil {
		return err
	}
	sess.SetFilters(f)
	return nil
}
