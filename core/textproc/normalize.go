// ABOUTME: Text normalization pipeline for extracted article content
// ABOUTME: Strips markup, decodes entities, normalizes unicode/punctuation and removes site boilerplate

package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxTitleLength is the rune cap applied to normalized titles.
const MaxTitleLength = 200

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	entityPattern     = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)
	questionRuns      = regexp.MustCompile(`[?]{4,}`)
	exclamationRuns   = regexp.MustCompile(`[!]{4,}`)
	dotRuns           = regexp.MustCompile(`\.{4,}`)
	commaNoSpace      = regexp.MustCompile(`(,+)(\S)`)
	sentenceNoSpace   = regexp.MustCompile(`\.([A-Z가-힣])`)
	spaceRuns         = regexp.MustCompile(` +`)
	blankLineRuns     = regexp.MustCompile(`\n[ \t]*\n[ \t]*(?:\n[ \t]*)+`)
	exoticWhitespace  = regexp.MustCompile(`[\x{00A0}\x{1680}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]`)
	controlCharacters = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
)

// entityMap holds the fixed set of HTML entities the pipeline decodes.
var entityMap = map[string]string{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&#39;":    "'",
	"&apos;":   "'",
	"&nbsp;":   " ",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&hellip;": "…",
	"&copy;":   "©",
	"&reg;":    "®",
	"&trade;":  "™",
}

// boilerplatePatterns matches brunch site chrome (share buttons, subscribe
// prompts, counters, prev/next navigation). The phrases are Korean because
// that is what the origin pages contain.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)브런치\s*작가\s*되기`),
	regexp.MustCompile(`(?i)구독하기`),
	regexp.MustCompile(`(?i)좋아요\s*\d+`),
	regexp.MustCompile(`(?i)조회수\s*\d+`),
	regexp.MustCompile(`(?i)댓글\s*\d+`),
	regexp.MustCompile(`(?i)공유하기`),
	regexp.MustCompile(`(?i)카카오톡\s*공유`),
	regexp.MustCompile(`(?i)페이스북\s*공유`),
	regexp.MustCompile(`(?i)트위터\s*공유`),
	regexp.MustCompile(`(?i)링크\s*복사`),
	regexp.MustCompile(`(?i)브런치북\s*출간`),
	regexp.MustCompile(`(?i)매거진\s*구독`),
	regexp.MustCompile(`(?i)이전\s*글`),
	regexp.MustCompile(`(?i)다음\s*글`),
	regexp.MustCompile(`(?i)목록\s*보기`),
	regexp.MustCompile(`(?i)작가의\s*글\s*더보기`),
}

// StripTags removes HTML tags from a string.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// DecodeEntities replaces the known HTML entities with their characters.
// Unknown entities pass through unchanged.
func DecodeEntities(s string) string {
	return entityPattern.ReplaceAllStringFunc(s, func(entity string) string {
		if decoded, ok := entityMap[entity]; ok {
			return decoded
		}
		return entity
	})
}

// NormalizeCharacters applies NFKC unicode normalization, strips control
// characters (keeping tab and newline), collapses exotic whitespace to plain
// spaces and replaces curly quotes with straight ones.
func NormalizeCharacters(s string) string {
	result := norm.NFKC.String(s)
	result = controlCharacters.ReplaceAllString(result, "")
	result = exoticWhitespace.ReplaceAllString(result, " ")
	result = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	).Replace(result)
	return result
}

// NormalizePunctuation caps runs of ? and ! at three characters, collapses
// long dot runs to a three-dot ellipsis and ensures a space after commas and
// sentence-ending periods.
func NormalizePunctuation(s string) string {
	result := questionRuns.ReplaceAllString(s, "???")
	result = exclamationRuns.ReplaceAllString(result, "!!!")
	result = dotRuns.ReplaceAllString(result, "...")
	result = commaNoSpace.ReplaceAllString(result, "$1 $2")
	result = sentenceNoSpace.ReplaceAllString(result, ". $1")
	return result
}

// NormalizeWhitespace unifies line endings, collapses space runs and limits
// consecutive blank lines to one.
func NormalizeWhitespace(s string) string {
	result := strings.ReplaceAll(s, "\r\n", "\n")
	result = strings.ReplaceAll(result, "\r", "\n")
	result = spaceRuns.ReplaceAllString(result, " ")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// RemoveBoilerplate strips known brunch site-chrome phrases.
func RemoveBoilerplate(s string) string {
	result := s
	for _, pattern := range boilerplatePatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	// Removal can leave doubled spaces or blank lines behind; clean them up
	// so the full pipeline stays idempotent.
	result = spaceRuns.ReplaceAllString(result, " ")
	return blankLineRuns.ReplaceAllString(result, "\n\n")
}

// maxNormalizePasses bounds the fixpoint loop in Normalize. Escaped markup
// or doubly encoded entities need one extra pass per nesting level; real
// pages never nest this deep.
const maxNormalizePasses = 10

// Normalize runs the full cleaning pipeline until the text stops changing.
// The function is pure, deterministic and idempotent:
// Normalize(Normalize(x)) == Normalize(x). A single pass is not a fixpoint
// when decoding entities uncovers markup (&lt;b&gt;) or another entity
// layer (&amp;amp;), so the pipeline repeats until stable.
func Normalize(raw string) string {
	result := raw
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizePass(result)
		if next == result {
			break
		}
		result = next
	}
	return result
}

// normalizePass applies the pipeline stages once, in fixed order.
func normalizePass(s string) string {
	result := StripTags(s)
	result = DecodeEntities(result)
	result = NormalizeCharacters(result)
	result = NormalizePunctuation(result)
	result = NormalizeWhitespace(result)
	result = RemoveBoilerplate(result)
	return strings.TrimSpace(result)
}

// NormalizeTitle runs the full pipeline and additionally caps the title
// length, appending an ellipsis when truncated.
func NormalizeTitle(raw string) string {
	title := Normalize(raw)
	return Truncate(title, MaxTitleLength, "...")
}

// Truncate shortens s to at most max runes including the suffix.
func Truncate(s string, max int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	keep := max - len([]rune(suffix))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + suffix
}
