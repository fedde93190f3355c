package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Simple retry check (customize as needed)
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	// Retry on transient transport errors like rate limits or server errors
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "500 internal server error") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429 {
			return true
		}
	}
	return false
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DownloadFilename derives the attachment filename for a project's HTML
// document from its title: lower-cased, whitespace collapsed to hyphens.
func DownloadFilename(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	if slug == "" {
		slug = "website"
	}
	return slug + ".html"
}
