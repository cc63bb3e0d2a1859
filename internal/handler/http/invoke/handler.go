// Package invoke implements the HTTP invocation adapter. It translates a
// JSON invocation event into one pipeline run and maps the typed pipeline
// errors onto transport status codes. All outward error messages are fixed
// generic strings; underlying causes are logged with credentials masked.
package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"guardian-stream/internal/domain/entity"
	"guardian-stream/internal/handler/http/respond"
	"guardian-stream/internal/infra/guardian"
	"guardian-stream/internal/infra/stream"
	"guardian-stream/internal/usecase/pipeline"
)

// User-facing error messages. Deliberately generic: no secret values,
// hostnames, or resource identifiers regardless of the underlying cause.
const (
	msgConfigError       = "service configuration error"
	msgSearchTermMissing = "search_term is required"
	msgInvalidBody       = "invalid request body"
	msgInvalidDate       = "invalid date format, use YYYY-MM-DD"
	msgRateLimited       = "rate limit exceeded"
	msgUpstreamError     = "content API error"
	msgPublishFailed     = "publishing failed"
	msgInternalError     = "internal server error"
)

// Runner executes one pipeline pass. Satisfied by app.App and by test doubles.
type Runner interface {
	Run(ctx context.Context, searchTerm string, dateFrom *entity.Date) (pipeline.Result, error)
}

// Handler serves POST /invoke.
//
// A non-nil initErr makes every invocation short-circuit to a fixed 500
// without touching the runner; initialization is never re-attempted per
// request.
type Handler struct {
	runner  Runner
	initErr error
	logger  *slog.Logger
}

// NewHandler creates an invocation handler. initErr carries a failed
// startup; pass nil when initialization succeeded.
func NewHandler(runner Runner, initErr error, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		runner:  runner,
		initErr: initErr,
		logger:  logger,
	}
}

// invokeRequest is the invocation event body.
type invokeRequest struct {
	SearchTerm string  `json:"search_term"`
	DateFrom   *string `json:"date_from"`
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.initErr != nil {
		h.logger.Error("invocation rejected: initialization failed",
			slog.String("error", respond.SanitizeError(h.initErr)))
		respond.Error(w, http.StatusInternalServerError, msgConfigError)
		return
	}

	// Unknown event fields are ignored, matching how trigger payloads
	// commonly carry metadata alongside the arguments.
	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Also covers a wrong-typed search_term (e.g. a number).
		respond.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if strings.TrimSpace(req.SearchTerm) == "" {
		respond.Error(w, http.StatusBadRequest, msgSearchTermMissing)
		return
	}

	var dateFrom *entity.Date
	if req.DateFrom != nil {
		parsed, err := entity.ParseDate(*req.DateFrom)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, msgInvalidDate)
			return
		}
		dateFrom = &parsed
	}

	result, err := h.runner.Run(r.Context(), req.SearchTerm, dateFrom)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// respondError maps pipeline errors to transport status codes. The
// orchestrator passes errors through unchanged, so every type raised by
// the search client or the publisher surfaces here.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var rateLimitErr *guardian.RateLimitError
	if errors.As(err, &rateLimitErr) {
		respond.Error(w, http.StatusTooManyRequests, msgRateLimited)
		return
	}

	var apiErr *guardian.APIError
	if errors.As(err, &apiErr) {
		// Upstream statuses >= 400 pass through; anything implausible
		// degrades to a plain server fault.
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusInternalServerError
		}
		h.logger.Error("content API request failed",
			slog.Int("upstream_status", apiErr.StatusCode),
			slog.String("error", respond.SanitizeError(err)))
		respond.Error(w, status, msgUpstreamError)
		return
	}

	var tooLargeErr *stream.RecordTooLargeError
	if errors.As(err, &tooLargeErr) {
		h.logger.Error("record exceeds sink size limit",
			slog.Int("record_size", tooLargeErr.Size))
		respond.Error(w, http.StatusInternalServerError, msgPublishFailed)
		return
	}

	var publishErr *stream.PublishError
	if errors.As(err, &publishErr) {
		h.logger.Error("stream publish failed",
			slog.String("error", respond.SanitizeError(err)))
		respond.Error(w, http.StatusInternalServerError, msgPublishFailed)
		return
	}

	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		// Core-level validation of adapter-checked inputs should not be
		// reachable, but a malformed provider item also lands here.
		h.logger.Error("pipeline validation failure",
			slog.String("error", respond.SanitizeError(err)))
		respond.Error(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	h.logger.Error("pipeline run failed",
		slog.String("error", respond.SanitizeError(err)))
	respond.Error(w, http.StatusInternalServerError, msgInternalError)
}
