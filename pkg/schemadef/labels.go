package schemadef

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// labelFromKey converts a field key into a human-friendly title. It splits
// on underscores/dashes and camelCase boundaries.
func labelFromKey(key string) string {
	if key == "" {
		return ""
	}

	words := splitWordsPattern.Split(key, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	var prev rune
	for i, r := range input {
		if i > 0 && isBoundary(prev, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
