package locale

import (
	"testing"
	"time"
)

func mustGerman(t *testing.T) *German {
	t.Helper()
	german, err := NewGerman()
	if err != nil {
		t.Fatalf("NewGerman() error = %v", err)
	}
	return german
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGermanAccept(t *testing.T) {
	german := mustGerman(t)

	cases := []struct {
		name     string
		text     string
		value    time.Time
		expected bool
	}{
		{name: "numeric", text: "23.05.1975", value: date(1975, time.May, 23), expected: true},
		{name: "month_name", text: "16. Mai 2002", value: date(2002, time.May, 16), expected: true},
		{name: "umlaut_month", text: "29. März 2017", value: date(2017, time.March, 29), expected: true},
		{name: "abbreviated_month", text: "29. Mär. 2017", value: date(2017, time.March, 29), expected: true},
		{name: "spelled_day", text: "am dritten März 2017", value: date(2017, time.March, 3), expected: true},
		{name: "hits_outnumber_misses", text: "23.05.1975 um 10 Uhr", value: date(1975, time.May, 23), expected: true},
		{name: "numbers_disagree", text: "Mai 17 und 18", value: date(2002, time.May, 16), expected: false},
		{name: "single_word", text: "Mai", value: date(2002, time.May, 1), expected: false},
		{name: "no_month", text: "23 17", value: date(2002, time.May, 23), expected: false},
		{name: "disallowed_punctuation", text: "16. Mai 2002 (BGBl.", value: date(2002, time.May, 16), expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := german.Accept(Found{Text: tc.text, Value: tc.value}); got != tc.expected {
				t.Errorf("Accept(%q) = %v, want %v", tc.text, got, tc.expected)
			}
		})
	}
}

func TestParseGermanNumeral(t *testing.T) {
	cases := []struct {
		word     string
		expected int
		ok       bool
	}{
		{word: "drei", expected: 3, ok: true},
		{word: "ersten", expected: 1, ok: true},
		{word: "Zweiten", expected: 2, ok: true},
		{word: "dritte", expected: 3, ok: true},
		{word: "siebten", expected: 7, ok: true},
		{word: "achten", expected: 8, ok: true},
		{word: "sechzehnten", expected: 16, ok: true},
		{word: "zwanzigsten", expected: 20, ok: true},
		{word: "einundzwanzig", expected: 21, ok: true},
		{word: "einunddreißigsten", expected: 31, ok: true},
		{word: "Mai", ok: false},
		{word: "zwanzigt", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			got, ok := ParseGermanNumeral(tc.word)
			if ok != tc.ok || got != tc.expected {
				t.Errorf("ParseGermanNumeral(%q) = %d, %v, want %d, %v", tc.word, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestGermanSegments(t *testing.T) {
	text := "Zeile eins\n\nZeile zwei\r\nEnde"
	segments := mustGerman(t).Segments(text)

	expected := []struct {
		text  string
		start int
	}{
		{text: "Zeile eins", start: 0},
		{text: "Zeile zwei", start: 12},
		{text: "Ende", start: 24},
	}
	if len(segments) != len(expected) {
		t.Fatalf("Segments() = %+v, want %d segments", segments, len(expected))
	}
	for i, want := range expected {
		if segments[i].Text != want.text || segments[i].Start != want.start {
			t.Errorf("segments[%d] = %+v, want %+v", i, segments[i], want)
		}
		if text[segments[i].Start:segments[i].Start+len(segments[i].Text)] != segments[i].Text {
			t.Errorf("segments[%d] offset does not point at its text", i)
		}
	}
}

func TestGermanExtendSplitsConjunctions(t *testing.T) {
	parse := func(text string) (Found, bool) {
		if text == "2. März 2017" {
			return Found{Text: text, Value: date(2017, time.March, 2)}, true
		}
		return Found{}, false
	}
	found := []Found{
		{Text: "1. und 2. März 2017", Value: date(2017, time.March, 1)},
		{Text: "16. Mai 2002", Value: date(2002, time.May, 16)},
	}

	got := mustGerman(t).Extend("", found, parse)
	if len(got) != 2 {
		t.Fatalf("Extend() = %+v, want 2 candidates", got)
	}
	if got[0].Text != "2. März 2017" || got[1].Text != "16. Mai 2002" {
		t.Errorf("Extend() texts = %q, %q", got[0].Text, got[1].Text)
	}
	if found[0].Text != "1. und 2. März 2017" {
		t.Error("Extend() modified its input")
	}
}

func TestGermanSegmentsSplitDatedConjunctions(t *testing.T) {
	text := "Kopf\nVollzitat: zuletzt geändert am 16. Mai 2002 und am 29. März 2017\nStand: 1. und 2. März 2017"
	segments := mustGerman(t).Segments(text)

	expected := []string{
		"Kopf",
		"Vollzitat: zuletzt geändert am 16. Mai 2002",
		"am 29. März 2017",
		"Stand: 1. und 2. März 2017",
	}
	if len(segments) != len(expected) {
		t.Fatalf("Segments() = %+v, want %d segments", segments, len(expected))
	}
	for i, want := range expected {
		if segments[i].Text != want {
			t.Errorf("segments[%d] = %q, want %q", i, segments[i].Text, want)
		}
		if text[segments[i].Start:segments[i].Start+len(segments[i].Text)] != segments[i].Text {
			t.Errorf("segments[%d] offset does not point at its text", i)
		}
	}
}

func TestGermanSegmentsNumericConjunction(t *testing.T) {
	segments := mustGerman(t).Segments("vom 23.05.1975 und 01.02.1980")
	if len(segments) != 2 || segments[0].Text != "vom 23.05.1975" || segments[1].Text != "01.02.1980" {
		t.Errorf("Segments() = %+v, want split at und", segments)
	}
	if segments[1].Start != len("vom 23.05.1975 und ") {
		t.Errorf("second segment starts at %d", segments[1].Start)
	}
}

func TestGermanExtendLeadingDay(t *testing.T) {
	text := "zuletzt geändert am 16. Mai 2002"
	parse := func(phrase string) (Found, bool) {
		if phrase == "16. Mai 2002" {
			return Found{Text: phrase, Value: date(2002, time.May, 16)}, true
		}
		return Found{}, false
	}

	cases := []struct {
		name     string
		found    Found
		parse    Parser
		expected []string
	}{
		{
			name:     "repaired",
			found:    Found{Text: "Mai 2002", Value: date(2002, time.May, 1)},
			parse:    parse,
			expected: []string{"16. Mai 2002"},
		},
		{
			name:     "day_agrees",
			found:    Found{Text: "Mai 2002", Value: date(2002, time.May, 16)},
			parse:    parse,
			expected: []string{"Mai 2002"},
		},
		{
			name:     "unrepairable",
			found:    Found{Text: "Mai 2002", Value: date(2002, time.May, 1)},
			parse:    func(string) (Found, bool) { return Found{}, false },
			expected: nil,
		},
		{
			name:     "starts_with_day",
			found:    Found{Text: "16. Mai 2002", Value: date(2002, time.May, 16)},
			parse:    parse,
			expected: []string{"16. Mai 2002"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustGerman(t).Extend(text, []Found{tc.found}, tc.parse)
			if len(got) != len(tc.expected) {
				t.Fatalf("Extend() = %+v, want %v", got, tc.expected)
			}
			for i, want := range tc.expected {
				if got[i].Text != want {
					t.Errorf("Extend()[%d] = %q, want %q", i, got[i].Text, want)
				}
			}
		})
	}
}
