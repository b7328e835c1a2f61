// ABOUTME: Request DTOs for the scrape API
// ABOUTME: Defines the JSON shape of incoming collection requests

package requests

// ScrapeRequest is the body of POST /scrape.
type ScrapeRequest struct {
	// URL is the brunch author URL (https://brunch.co.kr/@author).
	URL string `json:"url"`

	// StartNum and EndNum bound the inclusive article number range.
	StartNum int `json:"startNum"`
	EndNum   int `json:"endNum"`

	// PreserveFormatting keeps original line breaks in article bodies.
	PreserveFormatting bool `json:"preserveFormatting,omitempty"`
}
