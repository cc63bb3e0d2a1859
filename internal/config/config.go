// Package config loads and validates the application configuration from
// environment variables. Required values are rejected when empty or
// whitespace-only; optional values fall back to documented defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "guardian-stream/pkg/config"
)

// Environment variable names.
const (
	EnvAPIKeySecretName = "GUARDIAN_API_KEY_SECRET_NAME"
	EnvStreamName       = "STREAM_NAME"
	EnvRedisAddr        = "REDIS_ADDR"
	EnvStreamShards     = "STREAM_SHARDS"
	EnvSecretBackend    = "SECRET_BACKEND"
	EnvSecretDir        = "SECRET_DIR"
	EnvAPIEndpoint      = "GUARDIAN_API_ENDPOINT"
	EnvHTTPTimeout      = "GUARDIAN_HTTP_TIMEOUT"
)

// Secret backend names accepted in SECRET_BACKEND.
const (
	SecretBackendEnv  = "env"
	SecretBackendFile = "file"
)

// Config holds the application configuration.
type Config struct {
	// APIKeySecretName is the name under which the content API key is
	// stored in the secret backend. Required.
	APIKeySecretName string

	// StreamName is the base name of the sink stream. Required.
	StreamName string

	// RedisAddr is the host:port of the Redis instance backing the sink. Required.
	RedisAddr string

	// ShardCount is the number of shard streams records are spread over.
	ShardCount int

	// SecretBackend selects where secrets are read from: "env" or "file".
	SecretBackend string

	// SecretDir is the mount directory for the file secret backend.
	SecretDir string

	// APIEndpoint overrides the content API search endpoint. Empty means
	// the production endpoint.
	APIEndpoint string

	// HTTPTimeout is the content API request timeout.
	HTTPTimeout time.Duration
}

// Load reads the configuration from the environment. It performs no
// validation; call Validate before use.
func Load() Config {
	return Config{
		APIKeySecretName: pkgconfig.GetEnvString(EnvAPIKeySecretName, ""),
		StreamName:       pkgconfig.GetEnvString(EnvStreamName, ""),
		RedisAddr:        pkgconfig.GetEnvString(EnvRedisAddr, ""),
		ShardCount:       pkgconfig.GetEnvInt(EnvStreamShards, 1),
		SecretBackend:    pkgconfig.GetEnvString(EnvSecretBackend, SecretBackendEnv),
		SecretDir:        pkgconfig.GetEnvString(EnvSecretDir, "/run/secrets"),
		APIEndpoint:      pkgconfig.GetEnvString(EnvAPIEndpoint, ""),
		HTTPTimeout:      pkgconfig.GetEnvDuration(EnvHTTPTimeout, 10*time.Second),
	}
}

// Validate checks that all required settings are present and well-formed.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{EnvAPIKeySecretName, c.APIKeySecretName},
		{EnvStreamName, c.StreamName},
		{EnvRedisAddr, c.RedisAddr},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s must not be empty or whitespace", r.name)
		}
	}

	if c.SecretBackend != SecretBackendEnv && c.SecretBackend != SecretBackendFile {
		return fmt.Errorf("%s must be %q or %q, got %q",
			EnvSecretBackend, SecretBackendEnv, SecretBackendFile, c.SecretBackend)
	}

	if c.ShardCount < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", EnvStreamShards, c.ShardCount)
	}

	return nil
}
