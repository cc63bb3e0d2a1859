// Package guardian provides the HTTP client for the Guardian Open Platform
// content API. It issues a single bounded search request, maps provider
// results to domain Articles, and classifies upstream failures into typed
// errors for the invocation adapters.
package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"guardian-stream/internal/domain/entity"
)

// Client queries the content API for articles matching a search term.
// It is safe for reuse across invocations: it holds no per-call state
// beyond the shared rate limiter.
type Client struct {
	apiKey      string
	config      Config
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a content API client with the given API key.
//
// Returns an error if the API key is empty or whitespace-only; a client
// without a credential can never issue a valid request, so this is caught
// at construction rather than on first search.
func NewClient(apiKey string, config Config) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &entity.ValidationError{Field: "api_key", Message: "API key is required"}
	}

	config = config.withDefaults()

	return &Client{
		apiKey: apiKey,
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(config.RequestsPerSecond, config.Burst),
	}, nil
}

// searchResponse mirrors the content API success body.
type searchResponse struct {
	Response struct {
		Results []searchResult `json:"results"`
	} `json:"response"`
}

// searchResult is one raw provider result item.
type searchResult struct {
	WebPublicationDate string `json:"webPublicationDate"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
}

// Search issues one bounded request to the content API and returns up to
// PageSize articles sorted by publication date descending.
//
// The query must be non-empty after trimming; this is validated before any
// network I/O. dateFrom, when non-nil, constrains results to items published
// on or after that calendar day.
//
// Error types:
//   - *entity.ValidationError: empty query (no request attempted)
//   - *RateLimitError: upstream returned 429
//   - *APIError: upstream returned any other status >= 400
//   - wrapped transport error: request could not be completed
//
// Retries are the caller's concern; Search makes exactly one attempt.
func (c *Client) Search(ctx context.Context, query string, dateFrom *entity.Date) ([]entity.Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &entity.ValidationError{Field: "query", Message: "search term is required"}
	}

	if err := c.rateLimiter.Allow(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("q", query)
	params.Set("page-size", strconv.Itoa(c.config.PageSize))
	params.Set("order-by", "newest")
	if dateFrom != nil {
		params.Set("from-date", dateFrom.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	articles := make([]entity.Article, 0, len(body.Response.Results))
	for _, item := range body.Response.Results {
		article, err := entity.NewArticle(item.WebPublicationDate, item.WebTitle, item.WebURL)
		if err != nil {
			// One malformed item aborts the whole call: partial results
			// would hide provider contract breakage from the caller.
			return nil, fmt.Errorf("map search result: %w", err)
		}
		articles = append(articles, article)
	}

	// Re-sort newest first rather than trusting provider ordering.
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].WebPublicationDate.After(articles[j].WebPublicationDate)
	})

	if len(articles) > c.config.PageSize {
		articles = articles[:c.config.PageSize]
	}

	slog.Debug("content API search completed",
		slog.String("query", query),
		slog.Int("results", len(articles)),
		slog.Duration("duration", time.Since(start)))

	return articles, nil
}
