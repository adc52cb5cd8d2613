// Package tmdb provides a client for the TMDB v3 API covering search and
// detail lookups for movies, series and episodes.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"

// Sentinel errors for TMDB API responses.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or missing credentials")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// Credentials holds TMDB authentication. Exactly one of the two fields is
// required; the bearer token wins when both are set.
type Credentials struct {
	APIKey      string
	BearerToken string
}

// Configured reports whether any credential is present.
func (c Credentials) Configured() bool {
	return c.APIKey != "" || c.BearerToken != ""
}

// Client is a TMDB v3 API client.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// New creates a new TMDB client.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has usable credentials.
func (c *Client) Configured() bool {
	return c.creds.Configured()
}

// SearchMovies searches for movies by title. A year of 0 performs a yearless
// query.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]MovieResult, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if year > 0 {
		params.Set("year", fmt.Sprintf("%d", year))
	}

	var resp movieSearchResponse
	if err := c.getJSON(ctx, "/3/search/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("search movies %q: %w", query, err)
	}

	if c.log != nil {
		c.log.Debug("movie search completed", "query", query, "year", year,
			"results", len(resp.Results), "duration_ms", time.Since(start).Milliseconds())
	}
	return resp.Results, nil
}

// SearchTV searches for series by title.
func (c *Client) SearchTV(ctx context.Context, query string) ([]TVResult, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")

	var resp tvSearchResponse
	if err := c.getJSON(ctx, "/3/search/tv", params, &resp); err != nil {
		return nil, fmt.Errorf("search tv %q: %w", query, err)
	}

	if c.log != nil {
		c.log.Debug("tv search completed", "query", query,
			"results", len(resp.Results), "duration_ms", time.Since(start).Milliseconds())
	}
	return resp.Results, nil
}

// MovieDetails fetches movie metadata with credits and release dates.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*Movie, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,release_dates")

	var movie Movie
	if err := c.getJSON(ctx, fmt.Sprintf("/3/movie/%d", id), params, &movie); err != nil {
		return nil, fmt.Errorf("movie details %d: %w", id, err)
	}
	return &movie, nil
}

// TVDetails fetches series metadata with credits.
func (c *Client) TVDetails(ctx context.Context, id int64) (*TV, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var tv TV
	if err := c.getJSON(ctx, fmt.Sprintf("/3/tv/%d", id), params, &tv); err != nil {
		return nil, fmt.Errorf("tv details %d: %w", id, err)
	}
	return &tv, nil
}

// EpisodeDetails fetches metadata for a single episode of a series.
func (c *Client) EpisodeDetails(ctx context.Context, id int64, season, episode int) (*Episode, error) {
	var ep Episode
	endpoint := fmt.Sprintf("/3/tv/%d/season/%d/episode/%d", id, season, episode)
	if err := c.getJSON(ctx, endpoint, nil, &ep); err != nil {
		return nil, fmt.Errorf("episode details %d S%02dE%02d: %w", id, season, episode, err)
	}
	return &ep, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if params.Get("language") == "" {
		params.Set("language", "en-US")
	}
	if c.creds.BearerToken == "" && c.creds.APIKey != "" {
		params.Set("api_key", c.creds.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.creds.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.BearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkResponse maps HTTP status codes to sentinel errors.
func checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}
}
