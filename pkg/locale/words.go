package locale

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldWord returns the caseless NFC form of a word. A fresh caser is used
// per call since casers are stateful.
func foldWord(word string) string {
	return cases.Fold().String(norm.NFC.String(word))
}

// Word is a letter or digit run with its byte offset.
type Word struct {
	Text  string
	Start int
}

// Words splits text into letter/digit runs. Text is normalized to NFC
// first so that decomposed umlauts form one word.
func Words(text string) []Word {
	text = norm.NFC.String(text)
	var words []Word
	start := -1
	for i, r := range text {
		inWord := unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
		switch {
		case inWord && start < 0:
			start = i
		case !inWord && start >= 0:
			words = append(words, Word{Text: text[start:i], Start: start})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, Word{Text: text[start:], Start: start})
	}
	return words
}

// isDigitRun reports whether word consists of ASCII digits only.
func isDigitRun(word string) bool {
	if word == "" {
		return false
	}
	return strings.IndexFunc(word, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
