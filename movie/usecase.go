package movie

import (
	"context"
	"strings"

	"movieparadise/errs"
)

const (
	DefaultLimit = 20

	// RecommendationLimit is how many similar titles are shown for a pick.
	RecommendationLimit = 6
	// TrendingLimit is the length of the "Trending Now" row.
	TrendingLimit = 7
)

var ErrInvalidMovieID = errs.Errorf(errs.EINVALID, "invalid movie id")

type Service interface {
	Search(ctx context.Context, query string) ([]Movie, error)
	Recommend(ctx context.Context, id int) ([]Movie, error)
	Trending(ctx context.Context) ([]Movie, error)
}

// Repository is a search backend: a remote API or the local catalog.
type Repository interface {
	Search(ctx context.Context, query string, limit int) ([]Movie, error)
	// Recommend returns movies similar to the one with the given id,
	// excluding that movie.
	Recommend(ctx context.Context, id int, limit int) ([]Movie, error)
	Trending(ctx context.Context, limit int) ([]Movie, error)
}

type Usecase struct {
	r     Repository
	limit int
}

func NewUsecase(r Repository, limit int) *Usecase {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Usecase{r: r, limit: limit}
}

func (uc *Usecase) Search(ctx context.Context, query string) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	movies, err := uc.r.Search(ctx, query, uc.limit)
	if err != nil {
		return nil, err
	}
	return truncate(movies, uc.limit), nil
}

func (uc *Usecase) Recommend(ctx context.Context, id int) ([]Movie, error) {
	if id <= 0 {
		return nil, ErrInvalidMovieID
	}

	movies, err := uc.r.Recommend(ctx, id, RecommendationLimit)
	if err != nil {
		return nil, err
	}
	return truncate(withoutID(movies, id), RecommendationLimit), nil
}

func (uc *Usecase) Trending(ctx context.Context) ([]Movie, error) {
	movies, err := uc.r.Trending(ctx, TrendingLimit)
	if err != nil {
		return nil, err
	}
	return truncate(movies, TrendingLimit), nil
}

func truncate(movies []Movie, limit int) []Movie {
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

func withoutID(movies []Movie, id int) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
