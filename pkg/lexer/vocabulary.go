package lexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/lexdate/pkg/types"
)

// Vocabulary lists the words the tokenizer recognizes for one language.
// Matching of every list except Timezones is case-insensitive.
type Vocabulary struct {
	// Months holds full month names.
	Months []string `yaml:"months" json:"months"`

	// MonthAbbreviations may be followed by a period ("Jan.").
	MonthAbbreviations []string `yaml:"month_abbreviations" json:"month_abbreviations"`

	// Days holds weekday names and their abbreviations.
	Days []string `yaml:"days" json:"days"`

	// OrdinalSuffixes attach to digits ("1st", "22nd").
	OrdinalSuffixes []string `yaml:"ordinal_suffixes" json:"ordinal_suffixes"`

	// ModifierWords are spelled-out ordinals and relative words ("fifth", "next").
	ModifierWords []string `yaml:"modifier_words" json:"modifier_words"`

	// ExtraTokens are filler words that may sit inside a date phrase.
	ExtraTokens []string `yaml:"extra_tokens" json:"extra_tokens"`

	// TimePeriods are meridiem markers.
	TimePeriods []string `yaml:"time_periods" json:"time_periods"`

	// Timezones are matched case-sensitively.
	Timezones []string `yaml:"timezones" json:"timezones"`
}

// EnglishVocabulary returns the default vocabulary.
func EnglishVocabulary() Vocabulary {
	return Vocabulary{
		Months: []string{
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
		MonthAbbreviations: []string{
			"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
		},
		Days: []string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
		},
		OrdinalSuffixes: []string{"st", "nd", "rd", "th"},
		ModifierWords: []string{
			"first", "second", "third", "fourth", "fifth", "sixth", "seventh",
			"eighth", "ninth", "nineth", "tenth", "eleventh", "twelfth", "next", "last",
		},
		ExtraTokens: []string{
			"due", "by", "on", "during", "standard", "daylight", "savings", "time",
			"date", "dated", "of", "to", "through", "between", "until", "at", "day", "and",
		},
		TimePeriods: []string{"a.m.", "p.m.", "am", "pm"},
		Timezones:   append(types.TimezoneNames(), types.TimezoneAbbreviations()...),
	}
}

// Extend returns a vocabulary holding the words of both v and other.
// Neither input is modified.
func (v Vocabulary) Extend(other Vocabulary) Vocabulary {
	return Vocabulary{
		Months:             union(v.Months, other.Months),
		MonthAbbreviations: union(v.MonthAbbreviations, other.MonthAbbreviations),
		Days:               union(v.Days, other.Days),
		OrdinalSuffixes:    union(v.OrdinalSuffixes, other.OrdinalSuffixes),
		ModifierWords:      union(v.ModifierWords, other.ModifierWords),
		ExtraTokens:        union(v.ExtraTokens, other.ExtraTokens),
		TimePeriods:        union(v.TimePeriods, other.TimePeriods),
		Timezones:          union(v.Timezones, other.Timezones),
	}
}

// IsEmpty reports whether the vocabulary recognizes no month names, which
// makes it unusable for date finding.
func (v Vocabulary) IsEmpty() bool {
	return len(v.Months) == 0 && len(v.MonthAbbreviations) == 0
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, word := range list {
			if word == "" || seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, word)
		}
	}
	return out
}

// alternation builds a regex alternation of literal words, longest first so
// that leftmost-first matching never stops at a prefix ("sep" in "sept").
// Internal spaces match any whitespace run.
func alternation(words []string, suffix string, foldCase bool) string {
	seen := make(map[string]bool, len(words))
	unique := make([]string, 0, len(words))
	for _, word := range words {
		key := strings.TrimSpace(word)
		if foldCase {
			key = strings.ToLower(key)
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}
	sort.Slice(unique, func(i, j int) bool {
		if len(unique[i]) != len(unique[j]) {
			return len(unique[i]) > len(unique[j])
		}
		return unique[i] < unique[j]
	})

	quoted := make([]string, len(unique))
	for i, word := range unique {
		parts := strings.Fields(word)
		for j, part := range parts {
			parts[j] = regexp.QuoteMeta(part)
		}
		quoted[i] = strings.Join(parts, `\s+`) + suffix
	}
	if len(quoted) == 0 {
		// Matches nothing.
		return `[^\x00-\x{10FFFF}]`
	}
	flags := ""
	if foldCase {
		flags = "i"
	}
	return "(?" + flags + ":" + strings.Join(quoted, "|") + ")"
}
