package httpserver

import "movieparadise/movie"

type SearchMoviesRequest struct {
	Query string `query:"query" validate:"required,notblank,max=200"`
}

// SessionSearchRequest allows short and empty queries; they clear the results.
type SessionSearchRequest struct {
	Query string `json:"query" form:"query" validate:"max=200"`
}

type SelectMovieRequest struct {
	ID int `json:"id" form:"id" validate:"required,gt=0"`
}

type RecommendRequest struct {
	ID int `json:"id" form:"id" param:"id" validate:"required,gt=0"`
}

type FiltersRequest struct {
	SortBy    string `json:"sortBy" form:"sort_by" validate:"required,sortby"`
	SortOrder string `json:"sortOrder" form:"sort_order" validate:"omitempty,sortorder"`
}

// Apply returns the filters requested. Without an explicit order the
// request behaves like a pick from the filter menu and flips the current
// direction.
func (r FiltersRequest) Apply(current movie.Filters) (movie.Filters, error) {
	by, err := movie.ParseSortBy(r.SortBy)
	if err != nil {
		return current, err
	}
	if r.SortOrder == "" {
		return current.Toggle(by), nil
	}
	order, err := movie.ParseSortOrder(r.SortOrder)
	if err != nil {
		return current, err
	}
	return movie.Filters{SortBy: by, SortOrder: order}, nil
}
