package pagesnip

import (
	"strings"
	"unicode"
)

// MaxSlugLength bounds the length of generated slugs, in runes.
const MaxSlugLength = 60

// Slugify creates a URL-safe slug from a title.
// Converts to lowercase, replaces whitespace, hyphens and underscores with a
// single hyphen, and drops other punctuation. The result is cut at a word
// boundary when it exceeds MaxSlugLength.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false
	n := 0

	for _, r := range strings.ToLower(title) {
		if n >= MaxSlugLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
			n++
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
				n++
			}
		}
	}

	return strings.Trim(sb.String(), "-")
}
