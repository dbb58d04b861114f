package movie

import (
	"slices"
	"strings"
	"time"

	"movieparadise/errs"
)

type SortBy string

const (
	SortByDate   SortBy = "date"
	SortByRating SortBy = "rating"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

var (
	ErrInvalidSortBy    = errs.Errorf(errs.EINVALID, "sort key must be date or rating")
	ErrInvalidSortOrder = errs.Errorf(errs.EINVALID, "sort order must be asc or desc")
)

// Filters is the sort state applied to the selection list.
type Filters struct {
	SortBy    SortBy    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

func DefaultFilters() Filters {
	return Filters{SortBy: SortByRating, SortOrder: SortDesc}
}

func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDate:
		return SortByDate, nil
	case SortByRating:
		return SortByRating, nil
	}
	return "", ErrInvalidSortBy
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", ErrInvalidSortOrder
}

// Toggle picks a sort key from the filter menu. Every pick flips the
// direction, whether or not the key changed.
func (f Filters) Toggle(by SortBy) Filters {
	order := SortAsc
	if f.SortOrder == SortAsc {
		order = SortDesc
	}
	return Filters{SortBy: by, SortOrder: order}
}

// Sort returns a reordered copy of movies. The input slice is left untouched
// and movies with equal keys keep their relative order.
func Sort(movies []Movie, f Filters) []Movie {
	sorted := slices.Clone(movies)
	if sorted == nil {
		sorted = []Movie{}
	}

	cmp := compareRating
	if f.SortBy == SortByDate {
		cmp = compareRelease
	}

	slices.SortStableFunc(sorted, func(a, b Movie) int {
		if f.SortOrder == SortDesc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return sorted
}

func compareRating(a, b Movie) int {
	switch {
	case a.VoteAverage < b.VoteAverage:
		return -1
	case a.VoteAverage > b.VoteAverage:
		return 1
	}
	return 0
}

// Unknown release dates sort as the zero time.
func compareRelease(a, b Movie) int {
	return releaseTime(a).Compare(releaseTime(b))
}

func releaseTime(m Movie) time.Time {
	t, _ := m.Released()
	return t
}
