package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/lexdate/pkg/locale"
)

// span is one literal occurrence of a candidate in the searched text.
type span struct {
	start int
	end   int
	found locale.Found
}

// relocate finds every literal occurrence of every candidate text, taking
// candidates by descending length so that longer matches are seen first.
// Candidates of equal length keep their search order.
func relocate(text string, found []locale.Found) []span {
	ordered := append([]locale.Found{}, found...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i].Text) > utf8.RuneCountInString(ordered[j].Text)
	})

	var spans []span
	for _, f := range ordered {
		if f.Text == "" {
			continue
		}
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], f.Text)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, span{start: start, end: start + len(f.Text), found: f})
			from = start + len(f.Text)
		}
	}
	return spans
}

// overlapsAny reports whether [start, end) shares a byte with an accepted span.
func overlapsAny(accepted []span, start, end int) bool {
	for _, a := range accepted {
		if start < a.end && a.start < end {
			return true
		}
	}
	return false
}
