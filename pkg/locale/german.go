package locale

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coolbeans/lexdate/pkg/lexer"
	"github.com/coolbeans/lexdate/pkg/types"
)

var (
	// conjunctionPattern splits "X und Y" date phrases.
	conjunctionPattern = regexp.MustCompile(`(?i)\s+und\s+`)

	numericDatePattern = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2,4}\b`)

	// leadingDayPattern matches a day number ending the text, e.g. "am 16. ".
	leadingDayPattern = regexp.MustCompile(`(?:^|[^\d.])(\d{1,2})\.\s+$`)
)

// GermanTable returns the built-in German locale table.
func GermanTable() Table {
	return Table{
		Code:      "de",
		Languages: []string{"de"},
		Search:    SearchLibrary,
		Vocabulary: lexer.Vocabulary{
			Months: []string{
				"Januar", "Jänner", "Februar", "Feber", "März", "April", "Mai", "Juni",
				"Juli", "August", "September", "Oktober", "November", "Dezember",
			},
			MonthAbbreviations: []string{
				"Jan", "Feb", "Mär", "Mrz", "Apr", "Jun", "Jul", "Aug", "Sep", "Sept", "Okt", "Nov", "Dez",
			},
			Days: []string{
				"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag",
				"Sonnabend", "Sonntag",
			},
			ModifierWords: []string{
				"ersten", "zweiten", "dritten", "vierten", "fünften", "sechsten",
				"siebten", "achten", "neunten", "zehnten", "nächsten", "letzten",
			},
			ExtraTokens: []string{"am", "den", "der", "vom", "zum", "bis", "ab", "seit", "um", "Uhr", "und"},
			TimePeriods: []string{"Uhr"},
			Timezones:   []string{"MEZ", "MESZ", "UTC", "GMT"},
		},
		Fillers: []string{
			"am", "den", "der", "des", "dem", "vom", "zum", "bis", "ab", "seit",
			"um", "Uhr", "und", "Stand", "datum", "vom", "zuletzt", "geändert",
		},
	}
}

// German searches line by line with the date library's phrase search,
// splits conjoined phrases and cross-checks numbers against the parsed date.
type German struct {
	*Base
}

// NewGerman builds the German locale.
func NewGerman() (*German, error) {
	base, err := NewBase(GermanTable())
	if err != nil {
		return nil, err
	}
	return &German{Base: base}, nil
}

// Merge returns a German locale with overrides applied.
func (g *German) Merge(overrides Table) (Locale, error) {
	base, err := g.merged(overrides)
	if err != nil {
		return nil, err
	}
	return &German{Base: base}, nil
}

// Segments returns one segment per non-blank line. A line holding several
// dates joined by "und" ("am 16. Mai 2002 und am 29. März 2017") is split
// at the conjunction when the parts on both sides carry a month.
func (g *German) Segments(text string) []lexer.Segment {
	var segments []lexer.Segment
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) != "" {
			segments = append(segments, g.splitConjunctions(trimmed, offset)...)
		}
		offset += len(line)
	}
	return segments
}

// splitConjunctions splits line at every "und" whose neighbouring parts
// are both dated.
func (g *German) splitConjunctions(line string, offset int) []lexer.Segment {
	matches := conjunctionPattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return []lexer.Segment{{Text: line, Start: offset}}
	}

	var segments []lexer.Segment
	start, pieceStart := 0, 0
	for i, m := range matches {
		pieceEnd := len(line)
		if i+1 < len(matches) {
			pieceEnd = matches[i+1][0]
		}
		if g.dated(line[pieceStart:m[0]]) && g.dated(line[m[1]:pieceEnd]) {
			segments = append(segments, lexer.Segment{Text: line[start:m[0]], Start: offset + start})
			start = m[1]
		}
		pieceStart = m[1]
	}
	return append(segments, lexer.Segment{Text: line[start:], Start: offset + start})
}

// dated reports whether text names a month or holds a numeric date.
func (g *German) dated(text string) bool {
	if numericDatePattern.MatchString(text) {
		return true
	}
	for _, word := range Words(text) {
		if g.isMonth(word.Text) {
			return true
		}
	}
	return false
}

// Extend replaces "X und Y" candidates by their separately parsed parts
// and repairs phrases cut off after a leading day number: when "Mai 2002"
// follows "16. " but parsed to another day, "16. Mai 2002" is parsed
// instead, and the phrase is dropped if that fails.
func (g *German) Extend(text string, found []Found, parse Parser) []Found {
	out := make([]Found, 0, len(found))
	cursor := 0
	for _, f := range found {
		at := locate(text, f.Text, cursor)
		if at >= 0 {
			cursor = at + len(f.Text)
		}

		parts := conjunctionPattern.Split(f.Text, -1)
		if len(parts) < 2 || parse == nil {
			if repaired, ok := g.withLeadingDay(text, at, f, parse); ok {
				out = append(out, repaired)
			}
			continue
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if parsed, ok := parse(part); ok {
				out = append(out, parsed)
			}
		}
	}
	return out
}

// withLeadingDay checks the day number directly before the phrase at
// text[at:] against the parsed day.
func (g *German) withLeadingDay(text string, at int, f Found, parse Parser) (Found, bool) {
	if at < 0 || f.Text == "" {
		return f, true
	}
	if r, _ := utf8.DecodeRuneInString(f.Text); !unicode.IsLetter(r) {
		return f, true
	}
	m := leadingDayPattern.FindStringSubmatchIndex(text[:at])
	if m == nil {
		return f, true
	}
	day, _ := strconv.Atoi(text[m[2]:m[3]])
	if day == f.Value.Day() {
		return f, true
	}
	if parse == nil {
		return Found{}, false
	}
	parsed, ok := parse(text[m[2] : at+len(f.Text)])
	if !ok || parsed.Value.Day() != day {
		return Found{}, false
	}
	return parsed, true
}

// locate returns the byte offset of phrase in text, looking at or after
// from first.
func locate(text, phrase string, from int) int {
	if phrase == "" {
		return -1
	}
	if from <= len(text) {
		if i := strings.Index(text[from:], phrase); i >= 0 {
			return from + i
		}
	}
	return strings.Index(text, phrase)
}

// Accept requires at least two recognized words, at least one month, and
// that the numbers agree with the parsed date unless hits outnumber misses.
func (g *German) Accept(found Found) bool {
	if !GeneralFilter(found.Text, g.Fillers()) {
		return false
	}

	date := types.FromTime(found.Value)
	components := date.Components()

	recognized, months := 0, 0
	numbers := make(map[int]bool)
	for _, word := range Words(found.Text) {
		if g.isMonth(word.Text) {
			recognized++
			months++
			continue
		}
		value, ok := g.number(word.Text)
		if !ok {
			continue
		}
		recognized++
		numbers[value] = true
		// A numeric month ("23.05.1975") stands in for a month name.
		if isDigitRun(word.Text) && value == date.Month && len(word.Text) <= 2 {
			months++
		}
	}
	if recognized < 2 || months < 1 {
		return false
	}

	hits, misses := 0, 0
	for value := range numbers {
		if containsInt(components, value) {
			hits++
		} else {
			misses++
		}
	}
	return misses == 0 || hits > misses
}

func (g *German) isMonth(word string) bool {
	folded := foldWord(word)
	for _, month := range g.table.Vocabulary.Months {
		name := foldWord(month)
		if folded == name {
			return true
		}
		if len([]rune(folded)) == 3 && strings.HasPrefix(name, folded) {
			return true
		}
	}
	for _, abbreviation := range g.table.Vocabulary.MonthAbbreviations {
		if folded == foldWord(abbreviation) {
			return true
		}
	}
	return false
}

func (g *German) number(word string) (int, bool) {
	if isDigitRun(word) {
		value, err := strconv.Atoi(word)
		return value, err == nil
	}
	if value, ok := g.table.Numerals[foldWord(word)]; ok {
		return value, true
	}
	return ParseGermanNumeral(word)
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
