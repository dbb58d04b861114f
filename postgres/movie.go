package postgres

import (
	"context"
	"errors"

	"movieparadise/errs"
	"movieparadise/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	upsertBatchSize    = 500
)

// MovieModel represents the database model for movies.
// search_vector is generated in SQL migration and not mapped here.
type MovieModel struct {
	ID           uint    `gorm:"primaryKey"`
	MovieID      int     `gorm:"column:movie_id;not null;uniqueIndex"`
	Title        string  `gorm:"not null"`
	Overview     string  `gorm:"not null;default:''"`
	VoteAverage  float64 `gorm:"column:vote_average;not null;default:0"`
	PosterPath   string  `gorm:"column:poster_path;not null;default:''"`
	BackdropPath string  `gorm:"column:backdrop_path;not null;default:''"`
	ReleaseDate  string  `gorm:"column:release_date;not null;default:''"`
}

func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ID:           m.MovieID,
		Title:        m.Title,
		Overview:     m.Overview,
		VoteAverage:  m.VoteAverage,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		ReleaseDate:  m.ReleaseDate,
	}
}

func fromMovie(m movie.Movie) MovieModel {
	return MovieModel{
		MovieID:      m.ID,
		Title:        m.Title,
		Overview:     m.Overview,
		VoteAverage:  m.VoteAverage,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		ReleaseDate:  m.ReleaseDate,
	}
}

// MovieRepository implements movie.Repository over the local catalog
// using PostgreSQL full-text search.
type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Search(ctx context.Context, query string, limit int) ([]movie.Movie, error) {
	limit = clampLimit(limit)

	const sql = `
SELECT movie_id, title, overview, vote_average, poster_path, backdrop_path, release_date
FROM movies
WHERE search_vector @@ websearch_to_tsquery('english', ?)
ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', ?)) DESC, movie_id
LIMIT ?`

	var models []MovieModel
	if err := r.db.WithContext(ctx).Raw(sql, query, query, limit).Scan(&models).Error; err != nil {
		return nil, err
	}

	return toMovies(models), nil
}

// Recommend ranks the rest of the catalog against the lexemes of the movie
// with the given id. Movies sharing no lexeme with it are not returned.
func (r *MovieRepository) Recommend(ctx context.Context, id int, limit int) ([]movie.Movie, error) {
	limit = clampLimit(limit)

	var src MovieModel
	err := r.db.WithContext(ctx).Where("movie_id = ?", id).First(&src).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "movie %d not found", id)
	} else if err != nil {
		return nil, err
	}

	const sql = `
WITH q AS (
    SELECT (
        SELECT string_agg(quote_literal(l), ' | ')
        FROM unnest(tsvector_to_array(search_vector)) AS l
    )::tsquery AS query
    FROM movies
    WHERE movie_id = ?
)
SELECT m.movie_id, m.title, m.overview, m.vote_average, m.poster_path, m.backdrop_path, m.release_date
FROM movies m, q
WHERE m.movie_id <> ? AND m.search_vector @@ q.query
ORDER BY ts_rank(m.search_vector, q.query) DESC, m.vote_average DESC, m.movie_id
LIMIT ?`

	var models []MovieModel
	if err := r.db.WithContext(ctx).Raw(sql, id, id, limit).Scan(&models).Error; err != nil {
		return nil, err
	}
	return toMovies(models), nil
}

// Trending returns the best rated movies of the catalog, newest first on ties.
func (r *MovieRepository) Trending(ctx context.Context, limit int) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order("vote_average DESC").
		Order("release_date DESC").
		Order("movie_id").
		Limit(clampLimit(limit)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toMovies(models), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func toMovies(models []MovieModel) []movie.Movie {
	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies
}

// UpsertMovies inserts movies, updating rows whose movie_id already exists.
func (r *MovieRepository) UpsertMovies(ctx context.Context, movies []movie.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	models := make([]MovieModel, len(movies))
	for i, m := range movies {
		models[i] = fromMovie(m)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "overview", "vote_average", "poster_path", "backdrop_path", "release_date",
			}),
		}).
		CreateInBatches(models, upsertBatchSize).Error
}
