package guardian

import "fmt"

// APIError represents a non-2xx response from the content API.
// It carries the upstream status code so invocation adapters can pass
// it through when building their own response.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content API error: status %d", e.StatusCode)
}

// RateLimitError represents a 429 throttling response from the content API.
// It is surfaced as a distinct type so callers can apply backoff instead of
// treating it as a generic upstream fault.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "content API rate limit exceeded"
}
