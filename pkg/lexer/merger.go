package lexer

import "fmt"

// MinMatches is the number of counted tokens a fragment needs to be emitted.
const MinMatches = 2

// Fragment is a merged run of recognized tokens forming one date candidate.
type Fragment struct {
	// Text is the concatenated text of the merged tokens.
	Text string

	// Start and End are byte offsets into the tokenized text.
	Start int
	End   int

	// Captures holds the captures of every merged token. Every known group
	// is present, possibly empty.
	Captures Captures

	// Matches counts the merged tokens that are neither delimiters nor
	// abbreviations.
	Matches int
}

// String returns a debug representation, e.g. Fragment("20 FEB 1997")[3:14].
func (f Fragment) String() string {
	return fmt.Sprintf("Fragment(%q)[%d:%d]", f.Text, f.Start, f.End)
}

// fragmentBuilder accumulates tokens until a gap closes the fragment.
type fragmentBuilder struct {
	text     []byte
	start    int
	end      int
	captures Captures
	matches  int
	started  bool
}

func (b *fragmentBuilder) add(token Token) {
	if !b.started {
		b.start = token.Start
		b.started = true
	}
	b.end = token.End
	b.text = append(b.text, token.Text...)
	b.captures.Merge(token.Captures)
	if token.Group.Counted() {
		b.matches++
	}
}

// freeze returns the finished fragment, or false when it does not qualify.
func (b *fragmentBuilder) freeze() (Fragment, bool) {
	if !b.started || b.matches < MinMatches {
		return Fragment{}, false
	}
	return Fragment{
		Text:     string(b.text),
		Start:    b.start,
		End:      b.end,
		Captures: b.captures.Clone(),
		Matches:  b.matches,
	}, true
}

// Merge coalesces runs of non-gap tokens into fragments. A gap token closes
// the running fragment, which is emitted only if it holds at least
// MinMatches counted tokens.
func Merge(tokens []Token) []Fragment {
	var fragments []Fragment
	builder := &fragmentBuilder{}

	for _, token := range tokens {
		if token.Group == GroupGap {
			if fragment, ok := builder.freeze(); ok {
				fragments = append(fragments, fragment)
			}
			builder = &fragmentBuilder{}
			continue
		}
		builder.add(token)
	}
	if fragment, ok := builder.freeze(); ok {
		fragments = append(fragments, fragment)
	}

	return fragments
}
