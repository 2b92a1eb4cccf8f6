package filter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	//profile cards that LinkedIn renders with the same markup as posts
	noiseRegex = regexp.MustCompile(`(?i)^(open to work|share that you're hiring.*|premium\s*•\s*you|visible to anyone.*|loading\.*|show more results|no posts yet.*)$`)
	//inline engagement counters left over when a card has no commentary
	engagementRegex = regexp.MustCompile(`(?i)^\d[\d,.]*\s*(likes?|comments?|reactions?|reposts?)$`)
)

// IsNoise reports whether text is UI chrome rather than an authored post.
func IsNoise(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if noiseRegex.MatchString(t) || engagementRegex.MatchString(t) {
		return true
	}
	folded := normalizeText(t)
	return strings.Contains(folded, "premium • you") || strings.HasPrefix(folded, "visible to anyone")
}

// IsPost reports whether text is long enough to be a post and not noise.
// Length is counted in runes.
func IsPost(text string, minLength int) bool {
	t := strings.TrimSpace(text)
	if utf8.RuneCountInString(t) < minLength {
		return false
	}
	return !IsNoise(t)
}

// normalizeText lowercases and strips diacritics.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}
