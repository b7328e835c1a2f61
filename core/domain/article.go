// ABOUTME: Domain models for the article collection pipeline
// ABOUTME: Defines request, record, progress, run result and assembled document types

package domain

import "time"

// MaxRangeSize is the largest number of articles one run may collect.
const MaxRangeSize = 50

// ArticleRequest is the immutable input to one batch run.
type ArticleRequest struct {
	// BaseURL is the author-scoped URL prefix (https://brunch.co.kr/@author).
	BaseURL string

	// AuthorID is the author identifier extracted from BaseURL.
	AuthorID string

	// StartNumber and EndNumber bound the inclusive article number range.
	StartNumber int
	EndNumber   int

	// PreserveFormatting keeps original line breaks in article bodies.
	PreserveFormatting bool
}

// RangeSize returns the number of articles the request covers.
func (r ArticleRequest) RangeSize() int {
	return r.EndNumber - r.StartNumber + 1
}

// ArticleRecord is one unit of extraction output, success or failure.
// Records are immutable after creation and never retried within a run.
type ArticleRecord struct {
	URL           string `json:"url"`
	Number        int    `json:"number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Success       bool   `json:"success"`
}

// ProgressEvent is an ephemeral per-item notification emitted by the
// orchestrator. It is never persisted.
type ProgressEvent struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Status  string `json:"status,omitempty"`
}

// RunResult is the terminal outcome of a batch run. Records holds one
// entry per requested article number, in ascending number order.
type RunResult struct {
	Records     []ArticleRecord
	SkippedURLs []string
	Success     bool
	Error       string
}

// SuccessCount returns the number of successfully extracted records.
func (r *RunResult) SuccessCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Success {
			n++
		}
	}
	return n
}

// DocumentMetadata summarizes an assembled document.
type DocumentMetadata struct {
	TotalArticles int       `json:"totalArticles"`
	SuccessCount  int       `json:"successCount"`
	SkippedCount  int       `json:"skippedCount"`
	SkippedURLs   []string  `json:"skippedUrls"`
	GeneratedAt   time.Time `json:"generatedAt"`
	AuthorID      string    `json:"authorId"`
	Range         string    `json:"range"`
}

// AssembledDocument is the final merged text document for one run.
// It is created once, after all records exist, and never mutated.
type AssembledDocument struct {
	Content  string           `json:"content"`
	Filename string           `json:"filename"`
	Metadata DocumentMetadata `json:"metadata"`
}
