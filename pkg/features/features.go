// Package features builds the character-window feature vectors scored by
// the acceptance classifier.
package features

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alphabet is the fixed character set counted by unigram and bigram
// features. Text is lower-cased before counting; characters outside the
// alphabet are ignored.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 .,/-:"

// DefaultWindow is the number of characters taken on each side of a span.
const DefaultWindow = 20

// Word shape feature names.
const (
	SmallNumber = "n_small_number"
	LargeNumber = "n_large_number"
	LowerWord   = "n_lower_word"
	CapWord     = "n_cap_word"
)

// smallNumberDigits is the longest digit run counted as a small number.
const smallNumberDigits = 2

// Options controls which features are produced.
type Options struct {
	// Window is the number of characters on each side of the span.
	Window int `yaml:"window" json:"window"`

	// Bigrams adds adjacent character pair counts.
	Bigrams bool `yaml:"bigrams" json:"bigrams"`

	// Normalize divides character counts by the window length.
	Normalize bool `yaml:"normalize" json:"normalize"`

	// WordShapes adds small/large number and lower/capitalized word counts.
	WordShapes bool `yaml:"word_shapes" json:"word_shapes"`
}

// DefaultOptions returns unigram counts over the default window.
func DefaultOptions() Options {
	return Options{Window: DefaultWindow}
}

// Vector maps feature names to values. Absent names are zero.
type Vector map[string]float64

// Row lays the vector out in the given column order.
func (v Vector) Row(columns []string) []float64 {
	row := make([]float64, len(columns))
	for i, column := range columns {
		row[i] = v[column]
	}
	return row
}

// Window returns the text around the byte span [start, end), extended by
// window runes on each side and clamped to the text.
func Window(text string, start, end, window int) string {
	start, end = clamp(text, start, end)
	from := start
	for i := 0; i < window && from > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := end
	for i := 0; i < window && to < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}
	return text[from:to]
}

// Extract builds the feature vector for the byte span [start, end) of text.
func Extract(text string, start, end int, opts Options) Vector {
	if opts.Window < 0 {
		opts.Window = 0
	}
	window := Window(text, start, end, opts.Window)
	vector := make(Vector)

	lowered := []rune(strings.ToLower(window))
	for i, r := range lowered {
		if strings.ContainsRune(Alphabet, r) {
			vector[string(r)]++
		}
		if opts.Bigrams && i+1 < len(lowered) {
			next := lowered[i+1]
			if strings.ContainsRune(Alphabet, r) && strings.ContainsRune(Alphabet, next) {
				vector[string([]rune{r, next})]++
			}
		}
	}

	if opts.Normalize && len(lowered) > 0 {
		total := float64(len(lowered))
		for key := range vector {
			vector[key] /= total
		}
	}

	if opts.WordShapes {
		addWordShapes(vector, window)
	}
	return vector
}

func addWordShapes(vector Vector, window string) {
	words := strings.FieldsFunc(window, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		first, _ := utf8.DecodeRuneInString(word)
		switch {
		case isNumber(word) && len(word) <= smallNumberDigits:
			vector[SmallNumber]++
		case isNumber(word):
			vector[LargeNumber]++
		case unicode.IsUpper(first):
			vector[CapWord]++
		case unicode.IsLower(first):
			vector[LowerWord]++
		}
	}
}

func isNumber(word string) bool {
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return word != ""
}

func clamp(text string, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	return start, end
}
