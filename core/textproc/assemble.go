// ABOUTME: Document assembler that merges normalized article records into one text document
// ABOUTME: Generates header/footer metadata, a failed-items section and the deterministic filename

package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"brunch-scraper-api/core/domain"
	"brunch-scraper-api/core/extract"
)

const (
	// ArticleSeparator joins consecutive articles in the assembled document.
	ArticleSeparator = "\n\n---\n\n"

	// titleContentSeparator sits between a title and its body.
	titleContentSeparator = "\n\n"

	// DefaultFileExtension is used when no extension is configured.
	DefaultFileExtension = "txt"

	toolName    = "Brunch Text Collector"
	toolVersion = "1.0.0"
	toolWebsite = "https://brunch-scraper-api.example.com"
)

var (
	filenameReserved   = regexp.MustCompile(`[<>:"/\\|?*]`)
	filenameWhitespace = regexp.MustCompile(`\s+`)
	underscoreRuns     = regexp.MustCompile(`_+`)
)

// Assembler merges article records into a single downloadable document.
// The zero value uses the default file extension and time.Now.
type Assembler struct {
	// Extension overrides the output file extension (without dot).
	Extension string

	// Now supplies the generation timestamp; defaults to time.Now. Injected
	// so document output and filename are deterministic in tests.
	Now func() time.Time
}

// Assemble builds the final document for a completed run. Every requested
// article number appears exactly once, either in the body or in the
// failed-items section.
func (a *Assembler) Assemble(result *domain.RunResult, req *domain.ArticleRequest) *domain.AssembledDocument {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	authorID := req.AuthorID
	startNumber, endNumber := req.StartNumber, req.EndNumber

	succeeded := make([]domain.ArticleRecord, 0, len(result.Records))
	failed := make([]domain.ArticleRecord, 0)
	for _, rec := range result.Records {
		if rec.Success {
			succeeded = append(succeeded, rec)
		} else {
			failed = append(failed, rec)
		}
	}

	var b strings.Builder
	b.WriteString(a.header(authorID, startNumber, endNumber, len(succeeded), len(result.Records), now))
	b.WriteString(ArticleSeparator)

	for i, rec := range succeeded {
		b.WriteString(a.formatArticle(rec, req.PreserveFormatting))
		if i < len(succeeded)-1 {
			b.WriteString(ArticleSeparator)
		}
	}

	if len(failed) > 0 {
		b.WriteString(ArticleSeparator)
		b.WriteString("\n=== Articles that could not be collected ===\n")
		for i, rec := range failed {
			fmt.Fprintf(&b, "Article number: %d\nURL: %s\nReason: %s", rec.Number, rec.URL, rec.Content)
			if i < len(failed)-1 {
				b.WriteString("\n---\n")
			}
		}
	}

	b.WriteString(ArticleSeparator)
	b.WriteString(a.footer(len(succeeded), len(result.Records)))

	return &domain.AssembledDocument{
		Content:  b.String(),
		Filename: a.Filename(authorID, startNumber, endNumber, now),
		Metadata: domain.DocumentMetadata{
			TotalArticles: len(result.Records),
			SuccessCount:  len(succeeded),
			SkippedCount:  len(failed),
			SkippedURLs:   append([]string(nil), result.SkippedURLs...),
			GeneratedAt:   now,
			AuthorID:      authorID,
			Range:         rangeString(startNumber, endNumber),
		},
	}
}

// formatArticle renders one successful record as title, optional publish
// date line and normalized body. When preserveFormatting is off, line
// breaks inside a paragraph are joined into flowing text.
func (a *Assembler) formatArticle(rec domain.ArticleRecord, preserveFormatting bool) string {
	parts := make([]string, 0, 3)

	// The extractor's placeholder title is a record-level marker, not
	// reader-facing text. Records carrying it render body only.
	if rec.Title != extract.TitleSentinel {
		if title := NormalizeTitle(rec.Title); title != "" {
			parts = append(parts, title)
		}
	}
	body := Normalize(rec.Content)
	if !preserveFormatting {
		body = flattenLineBreaks(body)
	}
	if body != "" {
		parts = append(parts, body)
	}
	if rec.PublishedDate != "" {
		parts = append(parts, fmt.Sprintf("[Published: %s]", rec.PublishedDate))
	}

	return strings.Join(parts, titleContentSeparator)
}

func (a *Assembler) header(authorID string, startNumber, endNumber, successCount, totalCount int, now time.Time) string {
	lines := []string{
		"Brunch Text Collection",
		"",
		fmt.Sprintf("Author: @%s", authorID),
		fmt.Sprintf("Collected range: articles %d to %d", startNumber, endNumber),
		fmt.Sprintf("Result: %d/%d articles collected", successCount, totalCount),
		fmt.Sprintf("Generated at: %s", now.Format("2006-01-02 15:04:05")),
		"",
		"* This document was generated by " + toolName + ".",
		"* The copyright of the collected content belongs to the original author.",
	}
	return strings.Join(lines, "\n")
}

func (a *Assembler) footer(successCount, totalCount int) string {
	lines := []string{
		"=== Collection complete ===",
		"",
		fmt.Sprintf("%d of %d articles collected", successCount, totalCount),
	}
	if skipped := totalCount - successCount; skipped > 0 {
		lines = append(lines, fmt.Sprintf("%d articles could not be collected", skipped))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Generated by: %s v%s", toolName, toolVersion),
		fmt.Sprintf("Website: %s", toolWebsite),
	)
	return strings.Join(lines, "\n")
}

// Filename derives the deterministic output filename:
// brunch_{authorId}_{range}_{YYYYMMDD}.{ext}. The range collapses to a
// single number when start and end are equal.
func (a *Assembler) Filename(authorID string, startNumber, endNumber int, date time.Time) string {
	ext := a.Extension
	if ext == "" {
		ext = DefaultFileExtension
	}
	name := fmt.Sprintf("brunch_%s_%s_%s.%s",
		authorID, rangeString(startNumber, endNumber), date.Format("20060102"), ext)
	return SanitizeFilename(name)
}

// SanitizeFilename strips reserved characters and collapses whitespace and
// underscore runs.
func SanitizeFilename(name string) string {
	result := filenameReserved.ReplaceAllString(name, "")
	result = filenameWhitespace.ReplaceAllString(result, "_")
	result = underscoreRuns.ReplaceAllString(result, "_")
	return strings.TrimSpace(result)
}

// flattenLineBreaks joins line breaks within a paragraph into spaces while
// keeping blank-line paragraph separation.
func flattenLineBreaks(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
	}
	return strings.Join(paragraphs, "\n\n")
}

func rangeString(startNumber, endNumber int) string {
	if startNumber == endNumber {
		return fmt.Sprintf("%d", startNumber)
	}
	return fmt.Sprintf("%d-%d", startNumber, endNumber)
}
