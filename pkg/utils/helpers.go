package utils

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const baseURL = "https://www.linkedin.com"

// excerptLimit is the maximum length of a persisted post excerpt. Longer
// text is cut to 497 characters plus an ellipsis marker.
const excerptLimit = 500

// GenerateRunID generates a unique ID for correlating one run's log entries.
func GenerateRunID() string {
	return uuid.New().String()
}

// NormalizeWhitespace collapses all runs of whitespace to single spaces and
// trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// EnsureFullURL resolves relative hrefs against the LinkedIn origin.
// Absolute URLs and anything that is not a root-relative path pass through
// unchanged.
func EnsureFullURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return href
}

// ExtractProfileID derives the poster's LinkedIn ID from a profile URL.
// For namespaced paths like /in/jane-doe/ or /company/acme/ the ID is the
// second segment; otherwise it is the first. Malformed or empty URLs yield
// an empty ID rather than an error.
func ExtractProfileID(profileURL string) string {
	if profileURL == "" {
		return ""
	}
	parsed, err := url.Parse(profileURL)
	if err != nil {
		return ""
	}

	var segments []string
	for _, s := range strings.Split(parsed.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	if (segments[0] == "in" || segments[0] == "company") && len(segments) >= 2 {
		return segments[1]
	}
	return segments[0]
}

// TruncateExcerpt cuts post text down to the persisted excerpt size.
// Text at or under the limit is returned unchanged; longer text becomes
// exactly 500 characters ending in "...".
func TruncateExcerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit-3]) + "..."
}
