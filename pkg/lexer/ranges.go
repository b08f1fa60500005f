package lexer

import "regexp"

var (
	// rangeSeparatorPattern matches whole-word range boundaries.
	rangeSeparatorPattern = regexp.MustCompile(`(?i)\b(?:to|through)\b`)

	// conjunctionSeparatorPattern matches whole-word "and" between dates.
	conjunctionSeparatorPattern = regexp.MustCompile(`(?i)\b(?:and|und)\b`)
)

// Segment is a slice of the input text with its absolute byte offset.
type Segment struct {
	Text  string
	Start int
}

// SplitRanges splits text on whole-word "to"/"through" so that the two ends
// of a date range are tokenized independently. Separators are dropped and
// empty segments are omitted.
func SplitRanges(text string) []Segment {
	return splitAt(rangeSeparatorPattern, text)
}

func splitAt(separators *regexp.Regexp, text string) []Segment {
	var segments []Segment
	segmentStart := 0
	for _, separator := range separators.FindAllStringIndex(text, -1) {
		if separator[0] > segmentStart {
			segments = append(segments, Segment{Text: text[segmentStart:separator[0]], Start: segmentStart})
		}
		segmentStart = separator[1]
	}
	if segmentStart < len(text) {
		segments = append(segments, Segment{Text: text[segmentStart:], Start: segmentStart})
	}
	return segments
}

// FindFragments tokenizes and merges text. When the text contains a range
// boundary, every segment is processed on its own so that no fragment spans
// the boundary; fragment offsets always refer to text.
func (t *Tokenizer) FindFragments(text string) []Fragment {
	segments := SplitRanges(text)
	if len(segments) < 2 {
		return Merge(t.Tokenize(text))
	}

	var fragments []Fragment
	for _, segment := range segments {
		for _, fragment := range Merge(t.Tokenize(segment.Text)) {
			fragment.Start += segment.Start
			fragment.End += segment.Start
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// SplitConjunctions splits a fragment at whole-word "and" and merges each
// part on its own, for fragments such as "January 1, 2019 and March 3, 2019"
// that join two dates. It returns nil when the fragment has no conjunction.
// Offsets of the returned fragments refer to the same text as fragment's.
func (t *Tokenizer) SplitConjunctions(fragment Fragment) []Fragment {
	segments := splitAt(conjunctionSeparatorPattern, fragment.Text)
	if len(segments) < 2 {
		return nil
	}

	var fragments []Fragment
	for _, segment := range segments {
		for _, part := range Merge(t.Tokenize(segment.Text)) {
			part.Start += fragment.Start + segment.Start
			part.End += fragment.Start + segment.Start
			fragments = append(fragments, part)
		}
	}
	return fragments
}
