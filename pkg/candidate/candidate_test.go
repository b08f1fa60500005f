package candidate

import (
	"testing"

	"github.com/coolbeans/lexdate/pkg/lexer"
)

func TestSanitizeKeepsOffsetsValid(t *testing.T) {
	text := "Some date like February 26, 2018 and this one 10-11-2017"
	fragments := lexer.DefaultTokenizer().FindFragments(text)
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments %v, want 2", len(fragments), fragments)
	}

	cases := []struct {
		fragment lexer.Fragment
		text     string
		start    int
	}{
		{fragment: fragments[0], text: "February 26, 2018 and", start: 15},
		{fragment: fragments[1], text: "10-11-2017", start: 46},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			candidate, ok := Sanitize(tc.fragment)
			if !ok {
				t.Fatalf("Sanitize(%s) rejected the fragment", tc.fragment)
			}
			if candidate.Text != tc.text {
				t.Errorf("Text = %q, want %q", candidate.Text, tc.text)
			}
			if candidate.Start != tc.start {
				t.Errorf("Start = %d, want %d", candidate.Start, tc.start)
			}
			if text[candidate.Start:candidate.End] != tc.text {
				t.Errorf("source span = %q, want %q", text[candidate.Start:candidate.End], tc.text)
			}
		})
	}
}

func TestSanitizeCollapsesWhitespace(t *testing.T) {
	source := "  March  1,\n 2019 ."
	candidate, ok := Sanitize(lexer.Fragment{Text: source, Start: 10, End: 10 + len(source)})
	if !ok {
		t.Fatal("Sanitize() rejected the fragment")
	}
	if candidate.Text != "March 1, 2019" {
		t.Errorf("Text = %q, want %q", candidate.Text, "March 1, 2019")
	}
	if candidate.Start != 12 {
		t.Errorf("Start = %d, want 12", candidate.Start)
	}
	if got := source[candidate.Start-10 : candidate.End-10]; got != "March  1,\n 2019" {
		t.Errorf("source span = %q", got)
	}
}

func TestSanitizeRejectsBoundaryOnly(t *testing.T) {
	if _, ok := Sanitize(lexer.Fragment{Text: " -., ", Start: 0, End: 5}); ok {
		t.Error("Sanitize() should reject a fragment of boundary characters")
	}
}

func TestStrictPolicyComplete(t *testing.T) {
	policy := DefaultStrictPolicy()

	build := func(digits, months, modifiers int) lexer.Captures {
		var captures lexer.Captures
		for i := 0; i < digits; i++ {
			captures.Add(lexer.GroupDigits, "1")
		}
		for i := 0; i < months; i++ {
			captures.Add(lexer.GroupMonths, "May")
		}
		for i := 0; i < modifiers; i++ {
			captures.Add(lexer.GroupDigitsModifier, "fifth")
		}
		return captures
	}

	cases := []struct {
		name     string
		captures lexer.Captures
		expected bool
	}{
		{name: "three_digit_groups", captures: build(3, 0, 0), expected: true},
		{name: "month_and_two_digit_groups", captures: build(2, 1, 0), expected: true},
		{name: "modifier_only", captures: build(0, 0, 1), expected: false},
		{name: "two_digit_groups", captures: build(2, 0, 0), expected: false},
		{name: "two_months", captures: build(2, 2, 0), expected: false},
		{name: "four_digit_groups", captures: build(4, 0, 0), expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Complete(tc.captures); got != tc.expected {
				t.Errorf("Complete() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestPrepareStrict(t *testing.T) {
	fragments := lexer.DefaultTokenizer().FindFragments("19 February 2013 year 09:10")
	if len(fragments) == 0 {
		t.Fatal("no fragments found")
	}
	candidate, ok := Prepare(fragments[0], true, DefaultStrictPolicy())
	if !ok {
		t.Fatalf("Prepare(strict) rejected %s", fragments[0])
	}
	if candidate.Text != "19 February 2013" {
		t.Errorf("Text = %q, want %q", candidate.Text, "19 February 2013")
	}

	var captures lexer.Captures
	captures.Add(lexer.GroupDigitsModifier, "fifth")
	captures.Add(lexer.GroupMonths, "May")
	fifth := lexer.Fragment{Text: "fifth May", End: 9, Captures: captures, Matches: 2}
	if _, ok := Prepare(fifth, true, DefaultStrictPolicy()); ok {
		t.Error("Prepare(strict) should reject a fragment without digit groups")
	}
	if _, ok := Prepare(fifth, false, DefaultStrictPolicy()); !ok {
		t.Error("Prepare(non-strict) should accept the fragment")
	}
}

func TestLanguageOf(t *testing.T) {
	cases := map[string]string{
		"de-AT": "de",
		"en_US": "en",
		"ES":    "es",
		"":      "",
	}
	for input, want := range cases {
		if got := LanguageOf(input); got != want {
			t.Errorf("LanguageOf(%q) = %q, want %q", input, got, want)
		}
	}
}
