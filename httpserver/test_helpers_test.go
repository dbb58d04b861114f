//nolint:unused
package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movieparadise/httpserver"
	"movieparadise/movie"
	"movieparadise/pkg/config"
	"movieparadise/session"
)

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

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

// pageService stubs the trending list every rendered page asks for.
func pageService(trending ...movie.Movie) *MockMovieService {
	svc := new(MockMovieService)
	svc.On("Trending", mock.Anything).Return(trending, nil)
	return svc
}

func testConfig() *config.Config {
	return &config.Config{AppEnv: "test", Port: 8080, AllowOrigins: "*"}
}

func newTestServer(t testing.TB, svc movie.Service) *httpserver.Server {
	t.Helper()
	server, err := httpserver.New(
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(svc),
	)
	require.NoError(t, err)
	return server
}

func duneResults() []movie.Movie {
	return []movie.Movie{
		{ID: 438631, Title: "Dune", VoteAverage: 7.8, ReleaseDate: "2021-09-15", BackdropPath: "/dune.jpg", PosterPath: "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"},
		{ID: 841, Title: "Dune", VoteAverage: 6.3, ReleaseDate: "1984-12-14"},
		{ID: 693134, Title: "Dune: Part Two", VoteAverage: 8.2, ReleaseDate: "2024-02-27"},
	}
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeAPIResult(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NotEmpty(t, resp.Result, "response has no result")
	require.NoError(t, json.Unmarshal(resp.Result, out))
}

// visitor replays the session cookie between requests like a browser.
type visitor struct {
	server  *httpserver.Server
	cookies []*http.Cookie
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	v.server.Router.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		v.cookies = cookies
	}
	return rec
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (v *visitor) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func (v *visitor) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return v.do(req)
}

func (v *visitor) view(t testing.TB) session.View {
	t.Helper()
	rec := v.get("/api/session")
	require.Equal(t, http.StatusOK, rec.Code)
	var view session.View
	decodeAPIResult(t, rec, &view)
	return view
}
