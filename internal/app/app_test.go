package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-stream/internal/config"
)

func validConfig(t *testing.T) config.Config {
	t.Helper()
	server := miniredis.RunT(t)

	t.Setenv("GUARDIAN_API_KEY", "test-key")
	return config.Config{
		APIKeySecretName: "GUARDIAN_API_KEY",
		StreamName:       "articles",
		RedisAddr:        server.Addr(),
		ShardCount:       1,
		SecretBackend:    config.SecretBackendEnv,
	}
}

func TestNew_Succeeds(t *testing.T) {
	cfg := validConfig(t)

	application, err := New(context.Background(), cfg)

	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	assert.NotNil(t, application.Pipeline.Searcher)
	assert.NotNil(t, application.Pipeline.Publisher)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.StreamName = "  "

	_, err := New(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestNew_MissingSecret(t *testing.T) {
	cfg := validConfig(t)
	cfg.APIKeySecretName = "NOT_SET_ANYWHERE"

	_, err := New(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieve content API key")
}

func TestNew_FileBackend(t *testing.T) {
	cfg := validConfig(t)
	cfg.SecretBackend = config.SecretBackendFile
	cfg.SecretDir = t.TempDir()

	// No secret file mounted: initialization must fail, not fall back.
	_, err := New(context.Background(), cfg)

	assert.Error(t, err)
}
