package extract

import (
	"log/slog"

	"github.com/coolbeans/lexdate/pkg/candidate"
	"github.com/coolbeans/lexdate/pkg/lexer"
	"github.com/coolbeans/lexdate/pkg/locale"
)

// searchRequest carries what a primary search needs for one segment.
type searchRequest struct {
	locale   locale.Locale
	resolver *candidate.Resolver
	settings candidate.Settings
	strict   bool
}

// searcher is a primary candidate search.
type searcher interface {
	Search(text string, req searchRequest) []locale.Found
}

// fragmentSearcher runs the tokenizer, merger and candidate parser.
type fragmentSearcher struct{}

// Search returns one candidate per resolvable fragment, in text order.
// A fragment that cannot be resolved as a whole is retried split at "and".
// Found texts are literal substrings of text.
func (fragmentSearcher) Search(text string, req searchRequest) []locale.Found {
	var found []locale.Found
	tokenizer := req.locale.Tokenizer()
	for _, fragment := range tokenizer.FindFragments(text) {
		if f, ok := resolveFragment(text, fragment, req); ok {
			found = append(found, f)
			continue
		}
		for _, part := range tokenizer.SplitConjunctions(fragment) {
			if f, ok := resolveFragment(text, part, req); ok {
				found = append(found, f)
			}
		}
	}
	return found
}

func resolveFragment(text string, fragment lexer.Fragment, req searchRequest) (locale.Found, bool) {
	c, ok := candidate.Prepare(fragment, req.strict, req.locale.StrictPolicy())
	if !ok {
		return locale.Found{}, false
	}
	parsed, ok := req.resolver.Resolve(c, req.settings)
	if !ok {
		return locale.Found{}, false
	}
	return locale.Found{
		Text:        text[c.Start:c.End],
		Value:       parsed.Value,
		HasTimezone: parsed.HasTimezone,
	}, true
}

// librarySearcher uses the date library's phrase search. In strict mode a
// phrase must contain a fragment that passes the locale's strict policy.
type librarySearcher struct {
	Library candidate.Library
}

// Search returns the library's phrases in the order it reports them.
func (s librarySearcher) Search(text string, req searchRequest) []locale.Found {
	results, err := s.Library.Search(text, req.settings)
	if err != nil {
		slog.Debug("extract: phrase search failed", "locale", req.locale.Code(), "err", err)
		return nil
	}

	found := make([]locale.Found, 0, len(results))
	for _, result := range results {
		if result.Text == "" {
			continue
		}
		if req.strict && !strictComplete(req.locale, result.Text) {
			continue
		}
		found = append(found, locale.Found{Text: result.Text, Value: result.Date})
	}
	return found
}

func strictComplete(l locale.Locale, text string) bool {
	policy := l.StrictPolicy()
	for _, fragment := range l.Tokenizer().FindFragments(text) {
		if policy.Complete(fragment.Captures) {
			return true
		}
	}
	return false
}

// phraseParser returns the parser handed to extension hooks.
func phraseParser(req searchRequest) locale.Parser {
	return func(text string) (locale.Found, bool) {
		var captures lexer.Captures
		for _, fragment := range req.locale.Tokenizer().FindFragments(text) {
			captures.Merge(fragment.Captures)
		}
		c, ok := candidate.Sanitize(lexer.Fragment{Text: text, End: len(text), Captures: captures})
		if !ok {
			return locale.Found{}, false
		}
		parsed, ok := req.resolver.Resolve(c, req.settings)
		if !ok {
			return locale.Found{}, false
		}
		return locale.Found{Text: text[c.Start:c.End], Value: parsed.Value, HasTimezone: parsed.HasTimezone}, true
	}
}
