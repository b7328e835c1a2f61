// ABOUTME: Input validation for scrape requests
// ABOUTME: Checks brunch URL shape and article number ranges before a run starts

package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"brunch-scraper-api/core/domain"
	coreerrors "brunch-scraper-api/core/errors"
)

const (
	// MinArticleNumber is the smallest valid article number.
	MinArticleNumber = 1

	// MaxArticleNumber is the theoretical upper bound on article numbers.
	MaxArticleNumber = 999999
)

var (
	brunchURLPattern = regexp.MustCompile(`^https://brunch\.co\.kr/@([a-zA-Z0-9_-]+)(?:/(\d+))?$`)
	authorIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// URLInfo holds the parts extracted from a valid brunch URL.
type URLInfo struct {
	AuthorID      string
	BaseURL       string
	ArticleNumber int // 0 when the URL has no article number
}

// ParseBrunchURL validates a brunch author or article URL and extracts its parts.
func ParseBrunchURL(rawURL string) (*URLInfo, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "URL cannot be empty"}
	}

	m := brunchURLPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, &coreerrors.ValidationError{
			Field:   "url",
			Message: "not a valid brunch URL, expected https://brunch.co.kr/@author or https://brunch.co.kr/@author/123",
		}
	}

	authorID := m[1]
	if !authorIDPattern.MatchString(authorID) {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "invalid author id"}
	}

	info := &URLInfo{
		AuthorID: authorID,
		BaseURL:  "https://brunch.co.kr/@" + authorID,
	}

	if m[2] != "" {
		num, err := strconv.Atoi(m[2])
		if err != nil || num < MinArticleNumber || num > MaxArticleNumber {
			return nil, &coreerrors.ValidationError{
				Field:   "url",
				Message: fmt.Sprintf("article number must be between %d and %d", MinArticleNumber, MaxArticleNumber),
			}
		}
		info.ArticleNumber = num
	}

	return info, nil
}

// ValidateRange checks the article number range against the bounds and the
// per-run cap. Requests failing here never enter the pipeline.
func ValidateRange(startNumber, endNumber int) error {
	if startNumber < MinArticleNumber {
		return &coreerrors.ValidationError{
			Field:   "startNum",
			Message: fmt.Sprintf("start number must be at least %d", MinArticleNumber),
		}
	}
	if startNumber > MaxArticleNumber {
		return &coreerrors.ValidationError{
			Field:   "startNum",
			Message: fmt.Sprintf("start number must be at most %d", MaxArticleNumber),
		}
	}
	if endNumber < MinArticleNumber {
		return &coreerrors.ValidationError{
			Field:   "endNum",
			Message: fmt.Sprintf("end number must be at least %d", MinArticleNumber),
		}
	}
	if endNumber > MaxArticleNumber {
		return &coreerrors.ValidationError{
			Field:   "endNum",
			Message: fmt.Sprintf("end number must be at most %d", MaxArticleNumber),
		}
	}
	if endNumber < startNumber {
		return &coreerrors.ValidationError{
			Field:   "endNum",
			Message: "end number must be greater than or equal to start number",
		}
	}
	if count := endNumber - startNumber + 1; count > domain.MaxRangeSize {
		return &coreerrors.ValidationError{
			Field:   "endNum",
			Message: fmt.Sprintf("at most %d articles can be collected per request", domain.MaxRangeSize),
		}
	}
	return nil
}

// ParseRequest validates a raw scrape request and builds the immutable
// ArticleRequest handed to the orchestrator.
func ParseRequest(rawURL string, startNumber, endNumber int, preserveFormatting bool) (*domain.ArticleRequest, error) {
	info, err := ParseBrunchURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := ValidateRange(startNumber, endNumber); err != nil {
		return nil, err
	}
	return &domain.ArticleRequest{
		BaseURL:            info.BaseURL,
		AuthorID:           info.AuthorID,
		StartNumber:        startNumber,
		EndNumber:          endNumber,
		PreserveFormatting: preserveFormatting,
	}, nil
}
