package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one span of the input text. Gap tokens have Group == GroupGap and
// empty captures.
type Token struct {
	Text     string
	Group    Group
	Captures Captures
	Start    int // byte offset (inclusive)
	End      int // byte offset (exclusive)
}

// String returns a debug representation, e.g. months("FEB")[12:15].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Group, t.Text, t.Start, t.End)
}

// alternative is one anchored token pattern, tried in priority order.
type alternative struct {
	group Group
	re    *regexp.Regexp
}

// Tokenizer classifies every span of a text into token groups. A Tokenizer
// holds only compiled, read-only patterns and is safe for concurrent use.
type Tokenizer struct {
	vocabulary   Vocabulary
	combined     *regexp.Regexp
	alternatives []alternative
}

// NewTokenizer compiles the token patterns for a vocabulary.
func NewTokenizer(vocabulary Vocabulary) (*Tokenizer, error) {
	if vocabulary.IsEmpty() {
		return nil, fmt.Errorf("vocabulary has no month names")
	}

	sources := tokenPatterns(vocabulary)
	tokenizer := &Tokenizer{vocabulary: vocabulary}

	combinedParts := make([]string, 0, len(sources))
	for _, source := range sources {
		anchored, err := regexp.Compile(`^(?:` + source.pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern: %w", source.group, err)
		}
		tokenizer.alternatives = append(tokenizer.alternatives, alternative{group: source.group, re: anchored})
		combinedParts = append(combinedParts, source.pattern)
	}

	combined, err := regexp.Compile(strings.Join(combinedParts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compiling token pattern: %w", err)
	}
	tokenizer.combined = combined
	return tokenizer, nil
}

// MustNewTokenizer is like NewTokenizer but panics on error.
func MustNewTokenizer(vocabulary Vocabulary) *Tokenizer {
	tokenizer, err := NewTokenizer(vocabulary)
	if err != nil {
		panic(err)
	}
	return tokenizer
}

var defaultTokenizer = MustNewTokenizer(EnglishVocabulary())

// DefaultTokenizer returns the shared tokenizer for the English vocabulary.
func DefaultTokenizer() *Tokenizer {
	return defaultTokenizer
}

// Vocabulary returns the vocabulary the tokenizer was built from.
func (t *Tokenizer) Vocabulary() Vocabulary {
	return t.vocabulary
}

type patternSource struct {
	group   Group
	pattern string
}

// tokenPatterns builds one pattern per token group in priority order.
// Capture names may carry a "_N" suffix so that a group can be captured in
// several branches of the same pattern.
func tokenPatterns(v Vocabulary) []patternSource {
	periods := alternation(v.TimePeriods, "", true)
	zones := alternation(v.Timezones, "", false)

	timePattern := fmt.Sprintf(
		`(?P<time>`+
			`(?P<hours>\d{1,2}):(?P<minutes>\d{1,2})(?::(?P<seconds>\d{1,2}))?(?:[.,](?P<microseconds>\d{1,6}))?`+
			`(?:\s*(?P<time_periods>%[1]s))?(?:\s*(?P<timezones>%[2]s))?`+
			`|`+
			`(?P<hours_2>\d{1,2})\s*(?P<time_periods_2>%[1]s)(?:\s*(?P<timezones_2>%[2]s))?`+
			`)`,
		periods, zones)

	modifierParts := []string{}
	if len(v.OrdinalSuffixes) > 0 {
		modifierParts = append(modifierParts, `\d+`+alternation(v.OrdinalSuffixes, "", true))
	}
	if len(v.ModifierWords) > 0 {
		modifierParts = append(modifierParts, alternation(v.ModifierWords, "", true))
	}
	modifierPattern := `(?P<digits_modifier>` + alternation(nil, "", false) + `)`
	if len(modifierParts) > 0 {
		modifierPattern = `(?P<digits_modifier>` + strings.Join(modifierParts, "|") + `)`
	}

	monthPattern := alternation(v.Months, "", true)
	if len(v.MonthAbbreviations) > 0 {
		monthPattern = monthPattern + "|" + alternation(v.MonthAbbreviations, `\.?`, true)
	}
	if len(v.Months) == 0 {
		monthPattern = alternation(v.MonthAbbreviations, `\.?`, true)
	}

	return []patternSource{
		{GroupTime, timePattern},
		{GroupDigitsModifier, modifierPattern},
		{GroupDigits, `(?P<digits>\d+)`},
		{GroupDays, `(?P<days>` + alternation(v.Days, "", true) + `)`},
		{GroupMonths, `(?P<months>` + monthPattern + `)`},
		{GroupAbbreviations, `(?P<abbreviations>[A-Z][a-z]{1,4}\.)`},
		{GroupDelimiters, `(?P<delimiters>[/:\-,\s_+@.]+)`},
		{GroupExtraTokens, `(?P<extra_tokens>` + alternation(v.ExtraTokens, "", true) + `)`},
	}
}

// Tokenize splits text into an ordered, gap-filling token sequence.
// Concatenating the Text of all returned tokens reproduces text exactly.
func (t *Tokenizer) Tokenize(text string) []Token {
	var tokens []Token
	gapStart := 0
	position := 0

	flushGap := func(end int) {
		if end > gapStart {
			tokens = append(tokens, Token{
				Text:  text[gapStart:end],
				Group: GroupGap,
				Start: gapStart,
				End:   end,
			})
		}
	}

	for position < len(text) {
		location := t.combined.FindStringIndex(text[position:])
		if location == nil {
			break
		}
		at := position + location[0]

		token, ok := t.matchAt(text, at)
		if !ok {
			position = skipWord(text, at)
			continue
		}

		flushGap(at)
		tokens = append(tokens, token)
		position = token.End
		gapStart = position
	}
	flushGap(len(text))

	return tokens
}

// matchAt returns the first alternative, in priority order, that matches at
// the given offset and respects word boundaries.
func (t *Tokenizer) matchAt(text string, at int) (Token, bool) {
	rest := text[at:]
	for _, alt := range t.alternatives {
		indices := alt.re.FindStringSubmatchIndex(rest)
		if indices == nil || indices[1] == 0 {
			continue
		}
		end := at + indices[1]
		if !wordBounded(text, at, end) {
			continue
		}

		captures := capturesFrom(alt.re, rest, indices)
		return Token{
			Text:     text[at:end],
			Group:    resolveGroup(captures),
			Captures: captures,
			Start:    at,
			End:      end,
		}, true
	}
	return Token{}, false
}

// capturesFrom collects named submatches into Captures.
func capturesFrom(re *regexp.Regexp, text string, indices []int) Captures {
	var captures Captures
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" || indices[2*i] < 0 {
			continue
		}
		if suffix := strings.LastIndexByte(name, '_'); suffix > 0 && isDigits(name[suffix+1:]) {
			name = name[:suffix]
		}
		group, ok := groupByName(name)
		if !ok {
			continue
		}
		captures.Add(group, text[indices[2*i]:indices[2*i+1]])
	}
	return captures
}

// wordBounded rejects matches that begin or end in the middle of a word:
// a match starting with a letter must not follow a letter, and a match
// ending with a letter must not be followed by one.
func wordBounded(text string, start, end int) bool {
	first, _ := utf8.DecodeRuneInString(text[start:end])
	if unicode.IsLetter(first) && start > 0 {
		previous, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(previous) {
			return false
		}
	}
	last, _ := utf8.DecodeLastRuneInString(text[start:end])
	if unicode.IsLetter(last) && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(next) {
			return false
		}
	}
	return true
}

// skipWord advances past the letter run containing offset, or past a single
// rune when offset is not on a letter.
func skipWord(text string, offset int) int {
	r, size := utf8.DecodeRuneInString(text[offset:])
	if !unicode.IsLetter(r) {
		return offset + size
	}
	for offset < len(text) {
		r, size = utf8.DecodeRuneInString(text[offset:])
		if !unicode.IsLetter(r) {
			break
		}
		offset += size
	}
	return offset
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
