// ABOUTME: HTTP handler for the streaming article collection endpoint
// ABOUTME: Validates requests and streams NDJSON progress events over chunked responses

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"brunch-scraper-api/api/dto/requests"
	"brunch-scraper-api/api/dto/responses"
	"brunch-scraper-api/core/domain"
	coreerrors "brunch-scraper-api/core/errors"
	"brunch-scraper-api/core/interfaces"
	"brunch-scraper-api/core/scrape"
	"brunch-scraper-api/core/textproc"
	"brunch-scraper-api/pkg/validate"
)

// ScrapeRunner runs a sequential collection over an article range.
type ScrapeRunner interface {
	Run(ctx context.Context, req *domain.ArticleRequest, onProgress scrape.ProgressFunc) (*domain.RunResult, error)
}

// ScrapeHandler serves POST /scrape.
type ScrapeHandler struct {
	runner    ScrapeRunner
	assembler *textproc.Assembler
	logger    interfaces.Logger
}

// NewScrapeHandler creates a scrape handler with its collaborators.
func NewScrapeHandler(runner ScrapeRunner, assembler *textproc.Assembler, logger interfaces.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		runner:    runner,
		assembler: assembler,
		logger:    logger,
	}
}

// ServeHTTP handles the scrape request. Validation failures return a plain
// JSON error with a 4xx status; once streaming starts the status is already
// committed, so later failures are reported as terminal error events.
func (h *ScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body requests.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, responses.CodeValidationError, "request body must be valid JSON")
		return
	}

	req, err := validate.ParseRequest(body.URL, body.StartNum, body.EndNum, body.PreserveFormatting)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, responses.CodeValidationError, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, responses.CodeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	emit := func(event interface{}) {
		if err := enc.Encode(event); err != nil {
			return
		}
		flusher.Flush()
	}

	result, runErr := h.runner.Run(r.Context(), req, func(p domain.ProgressEvent) {
		emit(responses.ProgressEvent{
			Type:    responses.EventProgress,
			Current: p.Current,
			Total:   p.Total,
			URL:     p.URL,
			Title:   p.Title,
			Status:  p.Status,
		})
	})

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			// Client is gone, nothing left to write.
			return
		}
		h.logger.Error("collection run failed", map[string]interface{}{
			"url":   body.URL,
			"error": runErr.Error(),
		})
		event := responses.ErrorEvent{
			Type:    responses.EventError,
			Error:   responses.CodeScrapingError,
			Message: "article collection failed",
			Details: runErr.Error(),
		}
		if coreerrors.IsFatal(runErr) {
			event.Message = "collection could not start"
		}
		emit(event)
		return
	}

	doc := h.assembler.Assemble(result, req)
	emit(responses.CompleteEvent{
		Type: responses.EventComplete,
		Data: responses.CompleteData{
			Content:  doc.Content,
			Filename: doc.Filename,
			Metadata: doc.Metadata,
		},
	})
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(responses.ErrorEvent{
		Type:    responses.EventError,
		Error:   code,
		Message: message,
	})
}
