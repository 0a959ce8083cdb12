// Package tmdb is the catalog API client. Every call goes to the network;
// nothing is cached and nothing is retried.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "ko-KR"

	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Options configures a Client
type Options struct {
	BaseURL           string
	Language          string
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables client-side limiting
}

// Client implements domain.CatalogRepository and domain.KeyValidator for TMDB
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		language: opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// categoryPaths maps list categories to endpoints
var categoryPaths = map[domain.Category]string{
	domain.CategoryNowPlaying: "/movie/now_playing",
	domain.CategoryPopular:    "/movie/popular",
	domain.CategoryTopRated:   "/movie/top_rated",
	domain.CategoryUpcoming:   "/movie/upcoming",
}

// doRequest performs a GET with the credential and language applied
func (c *Client) doRequest(ctx context.Context, path, credential string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", credential)
	query.Set("language", c.language)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRequestFailed, err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrRequestFailed, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %w", domain.ErrRequestFailed, domain.ErrInvalidAPIKey)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", apiErr.StatusMessage)
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrRequestFailed, path, resp.StatusCode)
	}

	return body, nil
}

func (c *Client) fetchList(ctx context.Context, path, credential string, query url.Values) (domain.PagedResult, error) {
	body, err := c.doRequest(ctx, path, credential, query)
	if err != nil {
		return domain.PagedResult{}, err
	}

	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return domain.PagedResult{}, fmt.Errorf("%w: failed to parse response: %w", domain.ErrRequestFailed, err)
	}

	return MapList(resp), nil
}

// FetchPage returns one page of a list category
func (c *Client) FetchPage(ctx context.Context, category domain.Category, credential string, page int) (domain.PagedResult, error) {
	path, ok := categoryPaths[category]
	if !ok {
		return domain.PagedResult{}, fmt.Errorf("unknown category: %q", category)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(max(1, page)))
	return c.fetchList(ctx, path, credential, query)
}

// Search returns one page of movie search results
func (c *Client) Search(ctx context.Context, credential, text string, page int) (domain.PagedResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.PagedResult{Page: 1, TotalPages: 0}, nil
	}

	query := url.Values{}
	query.Set("query", text)
	query.Set("page", strconv.Itoa(max(1, page)))
	query.Set("include_adult", "false")
	return c.fetchList(ctx, "/search/movie", credential, query)
}

// Genres returns the movie genre list
func (c *Client) Genres(ctx context.Context, credential string) ([]domain.Genre, error) {
	body, err := c.doRequest(ctx, "/genre/movie/list", credential, nil)
	if err != nil {
		return nil, err
	}

	var resp GenreListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse genres: %w", domain.ErrRequestFailed, err)
	}
	return MapGenres(resp), nil
}

// Movie returns one title by id
func (c *Client) Movie(ctx context.Context, credential string, id int) (domain.CatalogItem, error) {
	path := "/movie/" + strconv.Itoa(id)
	body, err := c.doRequest(ctx, path, credential, nil)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	var resp MovieDetail
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return domain.CatalogItem{}, fmt.Errorf("%w: failed to parse response: %w", domain.ErrRequestFailed, err)
	}
	return MapDetail(resp), nil
}

// ValidateKey checks a key with a single lightweight list request.
// A rejected key reports domain.ErrInvalidAPIKey.
func (c *Client) ValidateKey(ctx context.Context, key string) error {
	_, err := c.FetchPage(ctx, domain.CategoryNowPlaying, key, 1)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidAPIKey) {
		return domain.ErrInvalidAPIKey
	}
	return err
}
