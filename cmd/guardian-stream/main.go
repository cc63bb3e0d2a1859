// Package main provides the CLI adapter for the search-and-publish pipeline.
// Usage: guardian-stream [--date-from YYYY-MM-DD] "search term"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"guardian-stream/internal/app"
	"guardian-stream/internal/config"
	"guardian-stream/internal/domain/entity"
	"guardian-stream/internal/handler/http/respond"
	"guardian-stream/internal/infra/guardian"
	"guardian-stream/internal/infra/stream"
	"guardian-stream/internal/observability/logging"
)

const runTimeout = 60 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	var dateFromStr string
	flag.StringVar(&dateFromStr, "date-from", "", "Filter articles from this date (YYYY-MM-DD)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one search term is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: guardian-stream [--date-from YYYY-MM-DD] \"search term\"")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  guardian-stream \"machine learning\"")
		fmt.Fprintln(os.Stderr, "  guardian-stream --date-from 2026-01-01 \"climate change\"")
		return 2
	}
	searchTerm := args[0]

	var dateFrom *entity.Date
	if dateFromStr != "" {
		parsed, err := entity.ParseDate(dateFromStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --date-from %q, use YYYY-MM-DD\n", dateFromStr)
			return 2
		}
		dateFrom = &parsed
	}

	// Log to stderr so result output on stdout stays clean.
	logger := logging.NewLoggerTo(os.Stderr)
	slog.SetDefault(logger)

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := config.Load()
	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("initialization failed", slog.String("error", respond.SanitizeError(err)))
		fmt.Fprintln(os.Stderr, "Configuration error")
		return 1
	}
	defer func() {
		if closeErr := application.Close(); closeErr != nil {
			logger.Error("failed to close application", slog.Any("error", closeErr))
		}
	}()

	result, err := application.Run(ctx, searchTerm, dateFrom)
	if err != nil {
		return reportError(logger, err)
	}

	fmt.Printf("Found %d articles for %q\n", result.ArticlesFound, searchTerm)
	fmt.Printf("Published %d records to %s\n", result.ArticlesPublished, cfg.StreamName)
	return 0
}

// reportError prints a class-level message for the operator and logs the
// sanitized cause. Outward text stays generic per the error-handling policy.
func reportError(logger *slog.Logger, err error) int {
	logger.Error("pipeline run failed", slog.String("error", respond.SanitizeError(err)))

	var rateLimitErr *guardian.RateLimitError
	if errors.As(err, &rateLimitErr) {
		fmt.Fprintln(os.Stderr, "Error: rate limited by content API")
		return 1
	}

	var apiErr *guardian.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "Error: content API error (status %d)\n", apiErr.StatusCode)
		return 1
	}

	var tooLargeErr *stream.RecordTooLargeError
	if errors.As(err, &tooLargeErr) {
		fmt.Fprintln(os.Stderr, "Error: publishing failed (record too large)")
		return 1
	}

	var publishErr *stream.PublishError
	if errors.As(err, &publishErr) {
		fmt.Fprintln(os.Stderr, "Error: publishing failed")
		return 1
	}

	fmt.Fprintln(os.Stderr, "Error: unexpected failure")
	return 1
}
