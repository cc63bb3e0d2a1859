// Package pipeline provides the use case that orchestrates the search step
// and the publish step. It sequences the two collaborators, counts inputs
// and outputs, and propagates their errors unchanged: classification and
// mapping to transport status codes happen only in the invocation adapters.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"guardian-stream/internal/domain/entity"
)

// Searcher is the capability interface over the content search provider.
// Production and test implementations both satisfy it.
type Searcher interface {
	// Search returns articles matching the query, newest first, optionally
	// constrained to items published on or after dateFrom.
	Search(ctx context.Context, query string, dateFrom *entity.Date) ([]entity.Article, error)
}

// Publisher is the capability interface over the stream sink.
type Publisher interface {
	// Publish appends one record per article and returns the number of
	// records appended. Treated as all-or-nothing per invocation.
	Publish(ctx context.Context, articles []entity.Article) (int, error)
}

// Result holds the per-invocation counts returned to the caller.
type Result struct {
	ArticlesFound     int `json:"articles_found"`
	ArticlesPublished int `json:"articles_published"`
}

// Service wires a Searcher and a Publisher into the two-step pipeline.
// Instances carry no per-call state and are reused across invocations.
type Service struct {
	Searcher  Searcher
	Publisher Publisher
}

// NewService creates a pipeline Service with the provided collaborators.
func NewService(searcher Searcher, publisher Publisher) Service {
	return Service{
		Searcher:  searcher,
		Publisher: publisher,
	}
}

// Run executes one search-then-publish pass.
//
// Steps:
//  1. Search. Any error propagates unchanged; the publisher is never
//     invoked on this path.
//  2. Publish, only if search produced at least one article. Zero results
//     skip straight to result assembly with a published count of 0.
//  3. Assemble {articles_found, articles_published}.
//
// This is a single-attempt, fail-fast pass: the invoking environment is
// expected to retry the whole invocation, so Run introduces no internal
// retry, backoff, or partial-commit bookkeeping.
func (s Service) Run(ctx context.Context, searchTerm string, dateFrom *entity.Date) (Result, error) {
	logger := slog.Default()
	start := time.Now()

	articles, err := s.Searcher.Search(ctx, searchTerm, dateFrom)
	if err != nil {
		searchesTotal.WithLabelValues(statusFailure).Inc()
		return Result{}, err
	}
	searchesTotal.WithLabelValues(statusSuccess).Inc()

	published := 0
	if len(articles) > 0 {
		published, err = s.Publisher.Publish(ctx, articles)
		if err != nil {
			publishErrorsTotal.Inc()
			return Result{}, err
		}
		articlesPublishedTotal.Add(float64(published))
	}

	runDuration.Observe(time.Since(start).Seconds())

	logger.Info("pipeline run completed",
		slog.String("search_term", searchTerm),
		slog.Int("articles_found", len(articles)),
		slog.Int("articles_published", published),
		slog.Duration("duration", time.Since(start)))

	return Result{
		ArticlesFound:     len(articles),
		ArticlesPublished: published,
	}, nil
}
