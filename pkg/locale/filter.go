package locale

import (
	"regexp"
	"strings"
	"unicode"
)

// garbagePattern matches candidate text that carries no date once filler
// words are gone: punctuation runs, a bare number, or number pairs such as
// "1.5" or "3/4".
var garbagePattern = regexp.MustCompile(`^(?:[\p{P}\p{S}\s]*|\d+|\d+[.,/]\d+)$`)

// allowedPunctuation is the punctuation a date phrase may contain.
const allowedPunctuation = ".,/-:'"

// GeneralFilter reports whether text passes the general sanity filter.
func GeneralFilter(text string, fillers []string) bool {
	for _, r := range text {
		if (unicode.IsPunct(r) || unicode.IsSymbol(r)) && !strings.ContainsRune(allowedPunctuation, r) {
			return false
		}
	}
	return !garbagePattern.MatchString(stripFillers(text, fillers))
}

// stripFillers removes whole filler words and trims the remainder.
func stripFillers(text string, fillers []string) string {
	if len(fillers) == 0 {
		return strings.TrimSpace(text)
	}
	drop := make(map[string]bool, len(fillers))
	for _, filler := range fillers {
		drop[foldWord(filler)] = true
	}
	var kept []string
	for _, word := range strings.Fields(text) {
		if !drop[foldWord(strings.Trim(word, allowedPunctuation))] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
