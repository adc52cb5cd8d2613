package scene

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separatorRegex collapses the punctuation scene names use instead of spaces.
var separatorRegex = regexp.MustCompile(`[()\[\]{}_+,;]+`)

// normalizeSeparators rewrites dots, underscores and bracket noise to single
// spaces so the tokenizer sees clean word boundaries.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = separatorRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// CleanTitle normalizes a title into its canonical cache-key form: lowercase,
// accents folded, punctuation collapsed to spaces, whitespace normalized.
// The output is deterministic for a given input; cache keys depend on it, so
// any change here invalidates previously cached entries.
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

var yearTokenRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// StripYearTokens removes standalone 4-digit year tokens from a title.
// Used for categories that search yearless (standup, documentary).
func StripYearTokens(title string) string {
	s := yearTokenRegex.ReplaceAllString(title, " ")
	return strings.Join(strings.Fields(s), " ")
}
