package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"movieparadise/httpserver"
	"movieparadise/movie"
	"movieparadise/pkg/config"
	"movieparadise/pkg/logger"
	"movieparadise/pkg/sentry"
	"movieparadise/postgres"
	"movieparadise/searchapi"
	"movieparadise/session"
	"movieparadise/tmdb"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		slog.Error("Cannot init logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	repo, err := newMovieRepository(cfg)
	if err != nil {
		slog.Error("Cannot create search backend", "backend", cfg.Search.Backend, "error", err)
		sentry.WithTags(map[string]string{"backend": cfg.Search.Backend}).Fatal(err)
		os.Exit(1)
	}

	movieService := movie.NewUsecase(repo, cfg.Search.Limit)
	sessions := session.NewStore(movieService, log)

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movieService),
		httpserver.WithSessionStore(sessions),
	)
	if err != nil {
		slog.Error("Cannot create server", "error", err)
		sentry.WithTags(map[string]string{"backend": cfg.Search.Backend}).Fatal(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessions.RunJanitor(ctx, cfg.Session.IdleTTL)
		return nil
	})
	g.Go(func() error {
		slog.Info("server started!", "addr", server.Addr, "backend", cfg.Search.Backend)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped with error", "error", err)
		sentry.WithTags(map[string]string{"backend": cfg.Search.Backend}).Fatal(err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newMovieRepository(cfg *config.Config) (movie.Repository, error) {
	switch cfg.Search.Backend {
	case "tmdb":
		return tmdb.NewClient(tmdb.Options{
			APIKey:   cfg.TMDB.APIKey,
			Language: cfg.TMDB.Language,
			BaseURL:  cfg.TMDB.BaseURL,
			Timeout:  cfg.Search.Timeout,
		})
	case "http":
		return searchapi.NewClient(cfg.Search.Endpoint, cfg.Search.Timeout)
	case "postgres":
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewMovieRepository(db), nil
	}
	return nil, fmt.Errorf("unknown search backend %q", cfg.Search.Backend)
}
