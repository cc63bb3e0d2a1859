// Package app builds the long-lived collaborator handles once per process
// and hands them to the invocation adapters. Construction failure is
// captured by the adapters so every subsequent invocation short-circuits
// to a fixed generic failure instead of re-attempting initialization.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"guardian-stream/internal/config"
	"guardian-stream/internal/domain/entity"
	"guardian-stream/internal/infra/guardian"
	"guardian-stream/internal/infra/secret"
	"guardian-stream/internal/infra/stream"
	"guardian-stream/internal/usecase/pipeline"
)

// App holds the initialized collaborators for one process lifetime.
// The pipeline service and its collaborators carry no per-call mutable
// state, so one App is safely reused across invocations.
type App struct {
	Config    config.Config
	Pipeline  pipeline.Service
	publisher *stream.Publisher
}

// New validates the configuration, retrieves the content API credential,
// and constructs the search client and stream publisher.
//
// Any failure here is a configuration failure in the sense of the error
// taxonomy: the caller must treat it as fatal for the whole process.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	secrets := newSecretStore(cfg)

	apiKey, err := secrets.Get(ctx, cfg.APIKeySecretName)
	if err != nil {
		return nil, fmt.Errorf("retrieve content API key: %w", err)
	}

	client, err := guardian.NewClient(apiKey, guardian.Config{
		Endpoint: cfg.APIEndpoint,
		Timeout:  cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create content API client: %w", err)
	}

	publisher, err := stream.NewPublisher(cfg.RedisAddr, cfg.StreamName, cfg.ShardCount)
	if err != nil {
		return nil, fmt.Errorf("create stream publisher: %w", err)
	}

	slog.Info("application initialized",
		slog.String("stream", cfg.StreamName),
		slog.Int("shards", cfg.ShardCount),
		slog.String("secret_backend", cfg.SecretBackend))

	return &App{
		Config:    cfg,
		Pipeline:  pipeline.NewService(client, publisher),
		publisher: publisher,
	}, nil
}

// Run executes one search-then-publish pass with the initialized handles.
func (a *App) Run(ctx context.Context, searchTerm string, dateFrom *entity.Date) (pipeline.Result, error) {
	return a.Pipeline.Run(ctx, searchTerm, dateFrom)
}

// Close releases the sink connection.
func (a *App) Close() error {
	return a.publisher.Close()
}

// newSecretStore selects the secret backend named in the configuration.
func newSecretStore(cfg config.Config) secret.Store {
	if cfg.SecretBackend == config.SecretBackendFile {
		return secret.NewFileStore(cfg.SecretDir)
	}
	return secret.NewEnvStore()
}
