// Package candidate turns merged date fragments into concrete dates. It
// sanitizes fragment text while keeping offsets valid, applies the optional
// strict completeness test and runs an ordered chain of parse strategies
// against an external date-parsing library.
package candidate

import (
	"fmt"
	"strings"

	"github.com/coolbeans/lexdate/pkg/lexer"
)

// boundaryChars are trimmed from both ends of a candidate.
const boundaryChars = " \t\n:-.,_"

// minCandidateLength is the shortest text the token-replacement strategy
// will hand to the date library.
const minCandidateLength = 3

// Candidate is a sanitized fragment ready for parsing.
type Candidate struct {
	// Text is the trimmed fragment with internal whitespace collapsed.
	Text string

	// Start and End are byte offsets of the trimmed span in the source text.
	// The source substring may differ from Text in internal whitespace.
	Start int
	End   int

	Captures lexer.Captures
}

// String returns a debug representation, e.g. Candidate("20 FEB 1997")[3:14].
func (c Candidate) String() string {
	return fmt.Sprintf("Candidate(%q)[%d:%d]", c.Text, c.Start, c.End)
}

// StrictPolicy is the completeness test applied in strict mode: a fragment
// is complete when it has exactly DigitGroups digit tokens, or exactly one
// month token and MonthDigitGroups digit tokens.
type StrictPolicy struct {
	DigitGroups      int `yaml:"digit_groups" json:"digit_groups"`
	MonthDigitGroups int `yaml:"month_digit_groups" json:"month_digit_groups"`
}

// DefaultStrictPolicy returns the policy used when a locale does not set one.
func DefaultStrictPolicy() StrictPolicy {
	return StrictPolicy{DigitGroups: 3, MonthDigitGroups: 2}
}

// Complete reports whether the captures satisfy the policy.
func (p StrictPolicy) Complete(captures lexer.Captures) bool {
	digits := captures.Count(lexer.GroupDigits)
	months := captures.Count(lexer.GroupMonths)
	if digits == p.DigitGroups {
		return true
	}
	return months == 1 && digits == p.MonthDigitGroups
}

// Prepare sanitizes a fragment. It returns false when strict mode rejects
// the fragment or nothing is left after trimming.
func Prepare(fragment lexer.Fragment, strict bool, policy StrictPolicy) (Candidate, bool) {
	if strict && !policy.Complete(fragment.Captures) {
		return Candidate{}, false
	}
	return Sanitize(fragment)
}

// Sanitize trims boundary characters from the fragment and collapses its
// internal whitespace. Offsets move inward by exactly the number of bytes
// trimmed from each end.
func Sanitize(fragment lexer.Fragment) (Candidate, bool) {
	trimmed, leading := trimBoundary(fragment.Text)
	if trimmed == "" {
		return Candidate{}, false
	}
	start := fragment.Start + leading
	return Candidate{
		Text:     collapseSpaces(trimmed),
		Start:    start,
		End:      start + len(trimmed),
		Captures: fragment.Captures,
	}, true
}

// trimBoundary strips boundary characters and returns the result together
// with the number of bytes removed from the front.
func trimBoundary(text string) (string, int) {
	left := strings.TrimLeft(text, boundaryChars)
	leading := len(text) - len(left)
	return strings.TrimRight(left, boundaryChars), leading
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
