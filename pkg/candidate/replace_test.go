package candidate

import (
	"testing"
)

func TestReplaceWordsWordBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		table    map[string]string
		expected string
	}{
		{
			name:     "to_inside_october_survives",
			text:     "October 5 to 6",
			table:    map[string]string{"to": ""},
			expected: "October 5  6",
		},
		{
			name:     "case_insensitive",
			text:     "Due By March",
			table:    FillerTable([]string{"due", "by"}),
			expected: "  March",
		},
		{
			name:     "ordinal_suffix",
			text:     "March 5th, 2019",
			table:    map[string]string{"5th": "5"},
			expected: "March 5, 2019",
		},
		{
			name:     "multi_word_key",
			text:     "10:00 Eastern  Standard Time",
			table:    Replacements(FillerTable([]string{"standard", "time"}), map[string]string{"Eastern Standard Time": ""}),
			expected: "10:00 ",
		},
		{
			name:     "empty_table",
			text:     "unchanged",
			table:    nil,
			expected: "unchanged",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReplaceWords(tc.text, tc.table); got != tc.expected {
				t.Errorf("ReplaceWords() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestReplacementsDoesNotMutateInputs(t *testing.T) {
	base := FillerTable([]string{"on"})
	extra := map[string]string{"5th": "5"}

	merged := Replacements(base, extra)
	merged["extra"] = "x"

	if len(base) != 1 {
		t.Errorf("base table modified: %v", base)
	}
	if len(extra) != 1 {
		t.Errorf("extra table modified: %v", extra)
	}
	if merged["5th"] != "5" || merged["on"] != "" {
		t.Errorf("merged = %v", merged)
	}
}

func TestPickTimezoneLexicographicallyLast(t *testing.T) {
	zone, ok := pickTimezone([]string{"PST", "EST", "CET"})
	if !ok || zone != "PST" {
		t.Errorf("pickTimezone() = %q, %v, want PST", zone, ok)
	}
	if _, ok := pickTimezone(nil); ok {
		t.Error("pickTimezone(nil) should report false")
	}
}
