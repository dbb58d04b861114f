package httpserver

import (
	"errors"
	"fmt"
	"strings"

	"movieparadise/movie"
	"movieparadise/pkg/config"
	"movieparadise/session"

	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: config is nil")
		}
		s.Config = cfg
		if cfg.Port > 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		s.AllowOrigins = nil
		for _, origin := range strings.Split(cfg.AllowOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				s.AllowOrigins = append(s.AllowOrigins, origin)
			}
		}
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l != nil {
			s.Logger = l
		}
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

func WithSessionStore(store *session.Store) Options {
	return func(s *Server) error {
		s.Sessions = store
		return nil
	}
}
