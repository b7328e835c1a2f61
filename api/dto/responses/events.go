// ABOUTME: Response DTOs for the streaming scrape API
// ABOUTME: Defines the newline-delimited JSON event envelopes

package responses

import "brunch-scraper-api/core/domain"

// Event type discriminators for the NDJSON stream.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// ProgressEvent is emitted once per collection step.
type ProgressEvent struct {
	Type    string `json:"type"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Status  string `json:"status,omitempty"`
}

// CompleteEvent terminates a successful stream and carries the document.
type CompleteEvent struct {
	Type string       `json:"type"`
	Data CompleteData `json:"data"`
}

// CompleteData is the assembled document payload.
type CompleteData struct {
	Content  string                  `json:"content"`
	Filename string                  `json:"filename"`
	Metadata domain.DocumentMetadata `json:"metadata"`
}

// ErrorEvent terminates a failed stream.
type ErrorEvent struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error codes used in ErrorEvent.Error and non-streaming error bodies.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeScrapingError   = "SCRAPING_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)
