// ABOUTME: Field extractor that pulls title, body and publish date from fetched pages
// ABOUTME: Each field resolves through a declarative ordered list of fallback strategies

package extract

import (
	"encoding/json"
	nurl "net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"brunch-scraper-api/core/domain"
	"brunch-scraper-api/core/interfaces"
)

// TitleSentinel marks records whose title could not be extracted.
const TitleSentinel = "(no title)"

// titleSelectors are tried in order, most site-specific first. The first
// selector yielding non-empty trimmed text wins.
var titleSelectors = []string{
	"h1.cover_title",
	".cover_title",
	"h1.title",
	"h1",
	".article-title",
	"title",
}

// contentSelectors are tried in order. All elements matched by the winning
// selector contribute, joined with blank lines.
var contentSelectors = []string{
	"div.wrap_body",
	".wrap_body",
	".article-body",
	".content",
	".post-content",
	"article .text",
}

// dateSelectors are tried in order; a machine-readable datetime or
// data-date attribute on the matched element wins over its visible text.
var dateSelectors = []string{
	"[class*=\"date\"]",
	".cover_info .date",
	"time[datetime]",
	".byline time",
	".article-meta time",
	".article_info time",
	".publish-date",
	"[data-date]",
}

// datePatterns scan raw markup when no selector or structured data yields a
// date.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"datePublished":\s*"([^"]+)"`),
	regexp.MustCompile(`"publishDate":\s*"([^"]+)"`),
	regexp.MustCompile(`data-publish-date="([^"]+)"`),
	regexp.MustCompile(`datetime="([^"]+)"`),
	regexp.MustCompile(`"date":\s*"([^"]+)"`),
}

// notFoundPhrases appear in the body of brunch's "article does not exist"
// pages. They are Korean because that is what the origin serves.
var notFoundPhrases = []string{
	"존재하지 않는",
	"페이지를 찾을 수 없습니다",
}

// Extractor turns raw page markup into ArticleRecords. Extract never
// returns an error; failures become success:false records carrying a
// diagnostic message in place of content.
type Extractor struct {
	logger interfaces.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(logger interfaces.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses the page and resolves each field through its fallback
// chain. A missing publish date never fails the record; a page with
// neither title nor body does.
func (e *Extractor) Extract(page *interfaces.RawPage, url string) domain.ArticleRecord {
	number := ArticleNumber(url)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return e.failure(url, number, "page could not be parsed: "+err.Error())
	}

	if reason, missing := pageNotFound(doc); missing {
		return e.failure(url, number, reason)
	}

	title := extractTitle(doc)
	body := extractBody(doc, page.HTML, url)

	if title == "" && body == "" {
		return e.failure(url, number, "neither title nor body could be extracted")
	}
	if body == "" {
		return e.failure(url, number, "article body could not be extracted")
	}
	if title == "" {
		title = TitleSentinel
	}

	record := domain.ArticleRecord{
		URL:           url,
		Number:        number,
		Title:         title,
		Content:       body,
		PublishedDate: extractDate(doc, page.HTML),
		Success:       true,
	}

	if e.logger != nil {
		e.logger.Debug("article extracted", map[string]interface{}{
			"url":   url,
			"title": title,
			"bytes": len(body),
		})
	}
	return record
}

func (e *Extractor) failure(url string, number int, reason string) domain.ArticleRecord {
	if e.logger != nil {
		e.logger.Warn("article extraction failed", map[string]interface{}{
			"url":    url,
			"reason": reason,
		})
	}
	return domain.ArticleRecord{
		URL:     url,
		Number:  number,
		Title:   TitleSentinel,
		Content: reason,
		Success: false,
	}
}

// pageNotFound reports whether the page is brunch's not-found rendering: a
// 404 marker in the title, an explicit error container, or a known "does
// not exist" phrase in the body.
func pageNotFound(doc *goquery.Document) (string, bool) {
	if strings.Contains(doc.Find("title").Text(), "404") {
		return "article does not exist (404 page)", true
	}
	if doc.Find(".error").Length() > 0 {
		return "article does not exist (error page)", true
	}
	bodyText := doc.Find("body").Text()
	for _, phrase := range notFoundPhrases {
		if strings.Contains(bodyText, phrase) {
			return "article does not exist", true
		}
	}
	return "", false
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractBody tries the selector chain first, then falls back to a
// readability pass over the whole document.
func extractBody(doc *goquery.Document, rawHTML, url string) string {
	for _, selector := range contentSelectors {
		var parts []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, "\n\n")
		}
	}

	pageURL, _ := nurl.Parse(url)
	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}

// extractDate applies the four-tier date fallback: selectors, JSON-LD,
// regex scan, absent. Found values are normalized to RFC 3339 when they
// parse; otherwise the raw string is kept.
func extractDate(doc *goquery.Document, rawHTML string) string {
	for _, selector := range dateSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if datetime, ok := sel.Attr("datetime"); ok && strings.TrimSpace(datetime) != "" {
			return normalizeDate(datetime)
		}
		if dataDate, ok := sel.Attr("data-date"); ok && strings.TrimSpace(dataDate) != "" {
			return normalizeDate(dataDate)
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			return normalizeDate(text)
		}
	}

	if date := dateFromStructuredData(doc); date != "" {
		return normalizeDate(date)
	}

	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(rawHTML); m != nil {
			return normalizeDate(m[1])
		}
	}
	return ""
}

// dateFromStructuredData looks for datePublished or dateCreated in JSON-LD
// script blocks. Unparseable blocks are skipped.
func dateFromStructuredData(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		for _, key := range []string{"datePublished", "dateCreated"} {
			if value, ok := data[key].(string); ok && value != "" {
				found = value
				return false
			}
		}
		return true
	})
	return found
}

// normalizeDate converts a best-effort date string to RFC 3339. Strings
// dateparse cannot handle are returned as-is; date absence or garbage is
// never a failure condition.
func normalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if t, err := dateparse.ParseAny(trimmed); err == nil {
		return t.Format(time.RFC3339)
	}
	return trimmed
}

// ArticleNumber parses the article's numeric identifier from the trailing
// path segment of its URL. Returns 0 when the segment is not a number.
func ArticleNumber(url string) int {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
