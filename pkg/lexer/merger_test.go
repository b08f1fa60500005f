package lexer

import (
	"strings"
	"testing"
)

func TestMergeScenario(t *testing.T) {
	fragments := Merge(DefaultTokenizer().Tokenize("At 1997, 20 FEB here, in"))

	if len(fragments) != 1 {
		t.Fatalf("got %d fragments %v, want 1", len(fragments), fragments)
	}
	fragment := fragments[0]
	if fragment.Text != "At 1997, 20 FEB " {
		t.Errorf("Text = %q, want %q", fragment.Text, "At 1997, 20 FEB ")
	}
	if fragment.Start != 0 || fragment.End != 16 {
		t.Errorf("offsets = (%d,%d), want (0,16)", fragment.Start, fragment.End)
	}
	extra := fragment.Captures.Get(GroupExtraTokens)
	if len(extra) != 1 || extra[0] != "At" {
		t.Errorf("extra_tokens = %v, want [At]", extra)
	}
	if got := fragment.Captures.Get(GroupDigits); len(got) != 2 {
		t.Errorf("digits = %v, want 2 entries", got)
	}
	for _, group := range AllGroups() {
		if fragment.Captures.Get(group) == nil {
			t.Errorf("captures missing group %s", group)
		}
	}
}

func TestMergeMinimumMatches(t *testing.T) {
	cases := []struct {
		name          string
		text          string
		expectedCount int
	}{
		{name: "isolated_year", text: "The year 1997 was good", expectedCount: 0},
		{name: "delimiters_do_not_count", text: "see 2019 -- , -- here", expectedCount: 0},
		{name: "month_and_year", text: "in March 2019 we", expectedCount: 1},
		{name: "two_dates", text: "February 26, 2018 and this one 10-11-2017", expectedCount: 2},
		{name: "lone_modifier", text: "the fifth element", expectedCount: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fragments := Merge(DefaultTokenizer().Tokenize(tc.text))
			if len(fragments) != tc.expectedCount {
				t.Errorf("got %d fragments %v, want %d", len(fragments), fragments, tc.expectedCount)
			}
			for _, fragment := range fragments {
				if fragment.Matches < MinMatches {
					t.Errorf("fragment %s has %d matches", fragment, fragment.Matches)
				}
				if tc.text[fragment.Start:fragment.End] != fragment.Text {
					t.Errorf("fragment %s does not match its offsets", fragment)
				}
			}
		})
	}
}

func TestMergeFragmentsAreIndependent(t *testing.T) {
	fragments := Merge(DefaultTokenizer().Tokenize("March 1, 2019 here April 2, 2020"))
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
	fragments[0].Captures.Add(GroupDigits, "99")
	if got := fragments[1].Captures.Get(GroupDigits); len(got) != 2 {
		t.Errorf("second fragment digits = %v, want 2 entries", got)
	}
}

func TestSplitRanges(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "no_range", text: "October 5, 2019", expected: []string{"October 5, 2019"}},
		{name: "to_range", text: "March 1 to April 2", expected: []string{"March 1 ", " April 2"}},
		{name: "through_range", text: "Monday through Friday", expected: []string{"Monday ", " Friday"}},
		{name: "leading_separator", text: "to May 5", expected: []string{" May 5"}},
		{name: "inner_word", text: "Toronto, tomorrow", expected: []string{"Toronto, tomorrow"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segments := SplitRanges(tc.text)
			if len(segments) != len(tc.expected) {
				t.Fatalf("got %d segments %v, want %v", len(segments), segments, tc.expected)
			}
			for i, segment := range segments {
				if segment.Text != tc.expected[i] {
					t.Errorf("segment %d = %q, want %q", i, segment.Text, tc.expected[i])
				}
				if tc.text[segment.Start:segment.Start+len(segment.Text)] != segment.Text {
					t.Errorf("segment %d offset %d is wrong", i, segment.Start)
				}
			}
		})
	}
}

func TestFindFragmentsAcrossRange(t *testing.T) {
	text := "from March 1, 2019 to April 2, 2019"
	fragments := DefaultTokenizer().FindFragments(text)

	if len(fragments) != 2 {
		t.Fatalf("got %d fragments %v, want 2", len(fragments), fragments)
	}
	for _, fragment := range fragments {
		if text[fragment.Start:fragment.End] != fragment.Text {
			t.Errorf("fragment %s does not match source %q", fragment, text[fragment.Start:fragment.End])
		}
	}
	if fragments[0].End > fragments[1].Start {
		t.Errorf("fragments overlap: %s, %s", fragments[0], fragments[1])
	}
}

func TestSplitConjunctions(t *testing.T) {
	tokenizer := DefaultTokenizer()
	cases := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "two_dates", text: "January 1, 2019 and March 3, 2019", expected: []string{"January 1, 2019", "March 3, 2019"}},
		{name: "abbreviated", text: "Jan. 5, 2019 and Feb. 6, 2020", expected: []string{"Jan. 5, 2019", "Feb. 6, 2020"}},
		{name: "trailing_and", text: "February 26, 2018 and", expected: []string{"February 26, 2018"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := "Seen " + tc.text + " here"
			var whole Fragment
			for _, fragment := range tokenizer.FindFragments(text) {
				if strings.Contains(fragment.Text, "and") {
					whole = fragment
				}
			}
			if whole.Text == "" {
				t.Fatalf("no fragment containing the conjunction in %q", text)
			}

			parts := tokenizer.SplitConjunctions(whole)
			if len(parts) != len(tc.expected) {
				t.Fatalf("SplitConjunctions(%s) = %v, want %v", whole, parts, tc.expected)
			}
			for i, part := range parts {
				if strings.TrimSpace(part.Text) != tc.expected[i] {
					t.Errorf("part %d = %q, want %q", i, part.Text, tc.expected[i])
				}
				if text[part.Start:part.End] != part.Text {
					t.Errorf("part %s does not match source %q", part, text[part.Start:part.End])
				}
			}
		})
	}

	if parts := tokenizer.SplitConjunctions(Fragment{Text: "March 5, 2019"}); parts != nil {
		t.Errorf("SplitConjunctions without conjunction = %v, want nil", parts)
	}
}
