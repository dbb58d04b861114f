package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"movieparadise/movie"
)

const batchSize = 500

type movieWriter interface {
	UpsertMovies(ctx context.Context, movies []movie.Movie) error
}

type columns struct {
	id, title, overview, voteAverage, posterPath, backdropPath, releaseDate int
}

func importMovies(ctx context.Context, w movieWriter, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	cols, err := parseHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	batch := make([]movie.Movie, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := w.UpsertMovies(ctx, batch); err != nil {
			return err
		}
		count += len(batch)
		batch = batch[:0]
		return nil
	}

	for limit <= 0 || count+len(batch) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
		m, ok := parseRecord(record, cols)
		if !ok {
			continue
		}

		batch = append(batch, m)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}

	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

func parseHeader(reader *csv.Reader) (columns, error) {
	header, err := reader.Read()
	if err != nil {
		return columns{}, err
	}

	cols := columns{-1, -1, -1, -1, -1, -1, -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "id":
			cols.id = i
		case "title":
			cols.title = i
		case "overview":
			cols.overview = i
		case "vote_average":
			cols.voteAverage = i
		case "poster_path":
			cols.posterPath = i
		case "backdrop_path":
			cols.backdropPath = i
		case "release_date":
			cols.releaseDate = i
		}
	}
	if cols.id == -1 || cols.title == -1 {
		return columns{}, errors.New("missing required columns in csv header: need id and title")
	}

	return cols, nil
}

func parseRecord(record []string, cols columns) (movie.Movie, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id, err := strconv.Atoi(field(cols.id))
	if err != nil || id <= 0 {
		return movie.Movie{}, false
	}
	title := field(cols.title)
	if title == "" {
		return movie.Movie{}, false
	}
	vote, _ := strconv.ParseFloat(field(cols.voteAverage), 64)

	return movie.Movie{
		ID:           id,
		Title:        title,
		Overview:     field(cols.overview),
		VoteAverage:  vote,
		PosterPath:   field(cols.posterPath),
		BackdropPath: field(cols.backdropPath),
		ReleaseDate:  field(cols.releaseDate),
	}, true
}
