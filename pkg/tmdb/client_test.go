package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTMDB creates a test server that simulates the TMDB API.
func mockTMDB(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

// writeJSON is a test helper that writes JSON response and panics on error.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

func TestNew(t *testing.T) {
	client := New(Credentials{APIKey: "test-key"})
	assert.NotNil(t, client)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.True(t, client.Configured())
}

func TestNew_WithOptions(t *testing.T) {
	customHTTP := &http.Client{Timeout: 5 * time.Second}
	client := New(Credentials{BearerToken: "tok"},
		WithBaseURL("http://localhost:1234"),
		WithHTTPClient(customHTTP),
	)
	assert.Equal(t, "http://localhost:1234", client.baseURL)
	assert.Same(t, customHTTP, client.httpClient)
}

func TestCredentials_Configured(t *testing.T) {
	assert.False(t, Credentials{}.Configured())
	assert.True(t, Credentials{APIKey: "k"}.Configured())
	assert.True(t, Credentials{BearerToken: "t"}.Configured())
}

func TestSearchMovies(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/search/movie": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "heat", q.Get("query"))
			assert.Equal(t, "1995", q.Get("year"))
			assert.Equal(t, "test-key", q.Get("api_key"))
			assert.Equal(t, "en-US", q.Get("language"))
			writeJSON(w, movieSearchResponse{Results: []MovieResult{
				{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", PosterPath: "/p.jpg"},
			}})
		},
	})
	defer server.Close()

	client := New(Credentials{APIKey: "test-key"}, WithBaseURL(server.URL))
	results, err := client.SearchMovies(context.Background(), "heat", 1995)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(949), results[0].ID)
}

func TestSearchMovies_YearlessOmitsParam(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/search/movie": func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("year"))
			writeJSON(w, movieSearchResponse{})
		},
	})
	defer server.Close()

	client := New(Credentials{APIKey: "k"}, WithBaseURL(server.URL))
	results, err := client.SearchMovies(context.Background(), "free solo", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchTV_BearerAuth(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/search/tv": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Empty(t, r.URL.Query().Get("api_key"))
			writeJSON(w, tvSearchResponse{Results: []TVResult{
				{ID: 2190, Name: "South Park", FirstAirDate: "1997-08-13"},
			}})
		},
	})
	defer server.Close()

	client := New(Credentials{BearerToken: "tok"}, WithBaseURL(server.URL))
	results, err := client.SearchTV(context.Background(), "south park")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "South Park", results[0].Name)
}

func TestMovieDetails(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/movie/949": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "credits,release_dates", r.URL.Query().Get("append_to_response"))
			writeJSON(w, map[string]any{
				"id": 949, "title": "Heat", "release_date": "1995-12-15",
				"runtime": 170, "vote_average": 7.9,
				"genres": []map[string]any{{"id": 80, "name": "Crime"}},
				"credits": map[string]any{"cast": []map[string]any{
					{"name": "Al Pacino", "order": 0},
					{"name": "Robert De Niro", "order": 1},
				}},
				"release_dates": map[string]any{"results": []map[string]any{
					{"iso_3166_1": "DE", "release_dates": []map[string]any{{"certification": "16"}}},
					{"iso_3166_1": "US", "release_dates": []map[string]any{{"certification": ""}, {"certification": "R"}}},
				}},
			})
		},
	})
	defer server.Close()

	client := New(Credentials{APIKey: "k"}, WithBaseURL(server.URL))
	movie, err := client.MovieDetails(context.Background(), 949)
	require.NoError(t, err)
	assert.Equal(t, "Heat", movie.Title)
	assert.Equal(t, 170, movie.Runtime)
	assert.Equal(t, "R", movie.USCertification())
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro"}, movie.Cast(5))
	assert.Equal(t, []string{"Al Pacino"}, movie.Cast(1))
}

func TestEpisodeDetails(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/tv/2190/season/27/episode/3": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, Episode{ID: 1, Name: "Got a Nut", AirDate: "2025-08-20"})
		},
	})
	defer server.Close()

	client := New(Credentials{APIKey: "k"}, WithBaseURL(server.URL))
	ep, err := client.EpisodeDetails(context.Background(), 2190, 27, 3)
	require.NoError(t, err)
	assert.Equal(t, "Got a Nut", ep.Name)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockTMDB(t, map[string]http.HandlerFunc{
				"/3/search/movie": func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				},
			})
			defer server.Close()

			client := New(Credentials{APIKey: "k"}, WithBaseURL(server.URL))
			_, err := client.SearchMovies(context.Background(), "x", 0)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnexpectedStatus(t *testing.T) {
	server := mockTMDB(t, map[string]http.HandlerFunc{
		"/3/search/tv": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	defer server.Close()

	client := New(Credentials{APIKey: "k"}, WithBaseURL(server.URL))
	_, err := client.SearchTV(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
