package locale

import (
	"testing"

	"github.com/coolbeans/lexdate/pkg/candidate"
)

func TestGeneralFilter(t *testing.T) {
	cases := []struct {
		text     string
		expected bool
	}{
		{text: "February 26, 2018 and", expected: true},
		{text: "10-11-2017", expected: true},
		{text: "March 5th", expected: true},
		{text: "23.05.1975", expected: true},
		{text: "2018", expected: false},
		{text: "1.5", expected: false},
		{text: "5/6", expected: false},
		{text: "on the", expected: false},
		{text: " - , ", expected: false},
		{text: "May 5 (draft)", expected: false},
		{text: "§ 3 May", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			if got := GeneralFilter(tc.text, candidate.DefaultFillers); got != tc.expected {
				t.Errorf("GeneralFilter(%q) = %v, want %v", tc.text, got, tc.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	words := Words("16. Mai 2002, am März")
	expected := []Word{
		{Text: "16", Start: 0},
		{Text: "Mai", Start: 4},
		{Text: "2002", Start: 8},
		{Text: "am", Start: 14},
		{Text: "März", Start: 17},
	}
	if len(words) != len(expected) {
		t.Fatalf("Words() = %v, want %v", words, expected)
	}
	for i := range expected {
		if words[i] != expected[i] {
			t.Errorf("words[%d] = %+v, want %+v", i, words[i], expected[i])
		}
	}
}
