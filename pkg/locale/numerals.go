package locale

import (
	"strings"
)

// germanCardinals holds the spelled-out numbers German dates use, in
// case-folded form ("ß" folds to "ss").
var germanCardinals = map[string]int{
	"ein": 1, "eins": 1, "zwei": 2, "drei": 3, "vier": 4, "fünf": 5,
	"sechs": 6, "sieben": 7, "acht": 8, "neun": 9, "zehn": 10, "elf": 11,
	"zwölf": 12, "dreizehn": 13, "vierzehn": 14, "fünfzehn": 15,
	"sechzehn": 16, "siebzehn": 17, "achtzehn": 18, "neunzehn": 19,
	"zwanzig": 20, "dreissig": 30,
}

// germanIrregularOrdinals are ordinal stems not formed by appending "t".
var germanIrregularOrdinals = map[string]int{
	"erst": 1, "dritt": 3, "siebt": 7, "acht": 8,
}

// germanInflections are the adjective endings an ordinal can carry.
var germanInflections = []string{"en", "er", "es", "em", "e"}

// ParseGermanNumeral converts a spelled-out German cardinal or ordinal
// ("drei", "dritten", "einundzwanzigsten") to its value.
func ParseGermanNumeral(word string) (int, bool) {
	word = foldWord(word)
	if value, ok := germanCardinal(word); ok {
		return value, true
	}
	for _, ending := range germanInflections {
		if stem, ok := strings.CutSuffix(word, ending); ok && stem != "" {
			if value, ok := germanOrdinalStem(stem); ok {
				return value, true
			}
		}
	}
	return germanOrdinalStem(word)
}

func germanOrdinalStem(stem string) (int, bool) {
	if value, ok := germanIrregularOrdinals[stem]; ok {
		return value, true
	}
	if cardinal, ok := strings.CutSuffix(stem, "st"); ok {
		if value, ok := germanCardinal(cardinal); ok && value >= 20 {
			return value, true
		}
	}
	if cardinal, ok := strings.CutSuffix(stem, "t"); ok {
		if value, ok := germanCardinal(cardinal); ok && value < 20 {
			return value, true
		}
	}
	return 0, false
}

// germanCardinal also handles compounds such as "einunddreißig".
func germanCardinal(word string) (int, bool) {
	if value, ok := germanCardinals[word]; ok {
		return value, true
	}
	ones, tens, ok := strings.Cut(word, "und")
	if !ok {
		return 0, false
	}
	one, okOne := germanCardinals[ones]
	ten, okTen := germanCardinals[tens]
	if !okOne || !okTen || one > 9 || ten%10 != 0 || ten < 20 {
		return 0, false
	}
	return ten + one, true
}
