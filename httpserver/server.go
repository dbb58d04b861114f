package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"movieparadise/errs"
	"movieparadise/movie"
	"movieparadise/pkg/config"
	"movieparadise/pkg/logger"
	"movieparadise/pkg/sentry"
	"movieparadise/session"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	MovieService movie.Service
	Sessions     *session.Store
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router: echo.New(),
		Addr:   ":8080",
		Config: config.Empty,
		Logger: logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	if s.Sessions == nil && s.MovieService != nil {
		s.Sessions = session.NewStore(s.MovieService, s.Logger)
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}
	s.Router.Renderer = renderer
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleHTTPError
	s.Router.HideBanner = true

	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterStaticRoutes()
	s.RegisterPageRoutes()
	s.RegisterMovieRoutes(s.Router.Group("/api"))
	s.RegisterSessionRoutes(s.Router.Group("/api/session"))

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// handleHTTPError maps application errors to appropriate HTTP status codes
func (s *Server) handleHTTPError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		requestID := s.requestID(c)
		s.Logger.Errorw(err.Error(), "request_id", requestID, "path", c.Path())
		if code != http.StatusNotImplemented {
			sentry.WithContext(c).
				WithContextValues(map[string]sentrygo.Context{
					"request": {"id": requestID, "path": c.Path()},
				}).
				Error(err)
		}
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if err := writeError(c, code, message, "", err); err != nil {
		s.Logger.Errorw("cannot write error response", "error", err)
	}
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
