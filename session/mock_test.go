package session_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"movieparadise/movie"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	args := m.Called(ctx, query)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieService) Recommend(ctx context.Context, id int) ([]movie.Movie, error) {
	args := m.Called(ctx, id)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieService) Trending(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func duneResults() []movie.Movie {
	return []movie.Movie{
		{ID: 438631, Title: "Dune", VoteAverage: 7.8, ReleaseDate: "2021-09-15", BackdropPath: "/dune.jpg", Overview: "Paul Atreides..."},
		{ID: 841, Title: "Dune", VoteAverage: 6.3, ReleaseDate: "1984-12-14"},
		{ID: 693134, Title: "Dune: Part Two", VoteAverage: 8.2, ReleaseDate: "2024-02-27"},
	}
}
