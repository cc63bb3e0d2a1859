package guardian

import "time"

// DefaultEndpoint is the production content API search endpoint.
const DefaultEndpoint = "https://content.guardianapis.com/search"

// Config contains configuration for the content API client.
type Config struct {
	// Endpoint is the search endpoint URL. Overridable for tests.
	Endpoint string

	// PageSize is the fixed number of results requested per search.
	PageSize int

	// Timeout is the HTTP request timeout for content API calls.
	Timeout time.Duration

	// RequestsPerSecond is the sustained outbound request rate.
	RequestsPerSecond float64

	// Burst is the token bucket burst capacity.
	Burst int
}

// DefaultConfig returns the configuration used in production.
func DefaultConfig() Config {
	return Config{
		Endpoint:          DefaultEndpoint,
		PageSize:          10,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5.0,
		Burst:             5,
	}
}

// withDefaults fills zero-valued fields so a partially specified Config
// still produces a working client.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	return c
}
