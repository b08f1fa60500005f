package locale

import (
	"regexp"
	"time"

	"github.com/coolbeans/lexdate/pkg/lexer"
)

// yearPattern finds an explicit four-digit year.
var yearPattern = regexp.MustCompile(`\b\d{4}\b`)

// SpanishTable returns the built-in Spanish locale table.
func SpanishTable() Table {
	return Table{
		Code:      "es",
		Languages: []string{"es"},
		Search:    SearchFragments,
		Vocabulary: lexer.Vocabulary{
			Months: []string{
				"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
				"agosto", "septiembre", "setiembre", "octubre", "noviembre", "diciembre",
			},
			MonthAbbreviations: []string{
				"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "sept", "oct", "nov", "dic",
			},
			Days: []string{
				"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo",
			},
			OrdinalSuffixes: []string{"º", "ª"},
			ModifierWords:   []string{"primero", "próximo", "pasado"},
			ExtraTokens:     []string{"de", "del", "el", "a", "las", "los", "hasta", "desde"},
			TimePeriods:     []string{"a.m.", "p.m.", "am", "pm", "h"},
			Timezones:       []string{"UTC", "GMT", "CET", "CEST"},
		},
		Fillers: []string{
			"de", "del", "el", "la", "a", "las", "los", "hasta", "desde", "fecha", "y",
		},
	}
}

// Spanish gives year-less dates in a sequence the year of the next dated
// entry, as in "5 de mayo y 7 de julio de 2019".
type Spanish struct {
	*Base
}

// NewSpanish builds the Spanish locale.
func NewSpanish() (*Spanish, error) {
	base, err := NewBase(SpanishTable())
	if err != nil {
		return nil, err
	}
	return &Spanish{Base: base}, nil
}

// Merge returns a Spanish locale with overrides applied.
func (s *Spanish) Merge(overrides Table) (Locale, error) {
	base, err := s.merged(overrides)
	if err != nil {
		return nil, err
	}
	return &Spanish{Base: base}, nil
}

// Extend splices the year of the nearest following dated candidate into
// every year-less candidate before it. found must be in text order.
func (s *Spanish) Extend(text string, found []Found, parse Parser) []Found {
	out := append([]Found{}, found...)
	year, known := 0, false
	for i := len(out) - 1; i >= 0; i-- {
		if yearPattern.MatchString(out[i].Text) {
			year, known = out[i].Value.Year(), true
			continue
		}
		if !known || out[i].Value.Year() == year {
			continue
		}
		v := out[i].Value
		spliced := time.Date(year, v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), v.Location())
		if spliced.Month() == v.Month() {
			out[i].Value = spliced
		}
	}
	return out
}
