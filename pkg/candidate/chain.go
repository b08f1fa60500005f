package candidate

import (
	"log/slog"
	"time"

	"github.com/coolbeans/lexdate/pkg/lexer"
	"github.com/coolbeans/lexdate/pkg/types"
)

// Resolution is the outcome of a successful strategy.
type Resolution struct {
	Value       time.Time
	HasTimezone bool
}

// Strategy is one step of the parse fallback chain. Resolve reports false
// when the strategy cannot interpret the candidate; library failures are
// never propagated.
type Strategy interface {
	Name() string
	Resolve(candidate Candidate, settings Settings) (Resolution, bool)
}

// Chain runs strategies in order and stops at the first success.
type Chain []Strategy

// Run returns the first successful resolution and the name of the strategy
// that produced it.
func (c Chain) Run(candidate Candidate, settings Settings) (Resolution, string, bool) {
	for _, strategy := range c {
		if resolution, ok := strategy.Resolve(candidate, settings); ok {
			return resolution, strategy.Name(), true
		}
	}
	return Resolution{}, "", false
}

// LocaleExact parses with the full locale. When a second opinion is
// configured and parses the same string to a different value, the second
// opinion wins.
type LocaleExact struct {
	Library Library
	Second  SecondOpinion
}

// Name returns the strategy name.
func (s LocaleExact) Name() string { return "locale_exact" }

// Resolve parses the candidate with the locale-exact settings.
func (s LocaleExact) Resolve(candidate Candidate, settings Settings) (Resolution, bool) {
	parsed, err := s.Library.Parse(candidate.Text, settings)
	if err != nil {
		slog.Debug("candidate: locale parse failed", "text", candidate.Text, "locale", settings.Locale, "err", err)
		return Resolution{}, false
	}
	if s.Second != nil {
		if second, err := s.Second.Parse(candidate.Text, settings.BaseDate); err == nil && !sameWallClock(parsed, second) {
			slog.Debug("candidate: second opinion overrides", "text", candidate.Text, "lenient", parsed, "strict", second)
			parsed = second
		}
	}
	return Resolution{Value: parsed}, true
}

// LanguageOnly retries with the bare language and no region.
type LanguageOnly struct {
	Library Library
}

// Name returns the strategy name.
func (s LanguageOnly) Name() string { return "language_only" }

// Resolve parses the candidate with the region stripped from the locale.
func (s LanguageOnly) Resolve(candidate Candidate, settings Settings) (Resolution, bool) {
	language := settings.Language()
	if language == "" {
		return Resolution{}, false
	}
	parsed, err := s.Library.Parse(candidate.Text, Settings{
		Locale:    language,
		Languages: []string{language},
		BaseDate:  settings.BaseDate,
	})
	if err != nil {
		slog.Debug("candidate: language parse failed", "text", candidate.Text, "language", language, "err", err)
		return Resolution{}, false
	}
	return Resolution{Value: parsed}, true
}

// TokenReplacement strips ordinal suffixes, timezone tokens and filler
// words before a generic parse, then re-attaches the captured timezone.
type TokenReplacement struct {
	Library Library

	// Fillers is the immutable base replacement table, usually built with
	// FillerTable.
	Fillers map[string]string
}

// Name returns the strategy name.
func (s TokenReplacement) Name() string { return "token_replacement" }

// Resolve parses the cleaned-up candidate.
func (s TokenReplacement) Resolve(candidate Candidate, settings Settings) (Resolution, bool) {
	table := Replacements(s.Fillers, candidateReplacements(candidate.Captures))
	cleaned, _ := trimBoundary(collapseSpaces(ReplaceWords(candidate.Text, table)))
	cleaned = collapseSpaces(cleaned)
	if len(cleaned) < minCandidateLength {
		return Resolution{}, false
	}

	parsed, err := s.Library.Parse(cleaned, Settings{BaseDate: settings.BaseDate})
	if err != nil {
		slog.Debug("candidate: generic parse failed", "text", cleaned, "err", err)
		return Resolution{}, false
	}

	zones := candidate.Captures.Get(lexer.GroupTimezones)
	zone, ok := pickTimezone(zones)
	if !ok {
		return Resolution{Value: parsed}, true
	}
	if len(zones) > 1 {
		slog.Debug("candidate: several timezones, using last", "zones", zones, "picked", zone)
	}
	timezone, found := types.LookupTimezone(zone)
	if !found {
		return Resolution{Value: parsed}, true
	}
	location, err := timezone.Location()
	if err != nil {
		return Resolution{Value: parsed}, true
	}
	return Resolution{
		Value: time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), location),
		HasTimezone: true,
	}, true
}

// sameWallClock compares the calendar date and clock reading of two times
// regardless of their locations.
func sameWallClock(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay() &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

// Resolver runs the three-tier fallback chain over candidates.
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	chain Chain
}

// NewResolver builds the standard chain: locale-exact (with optional
// second opinion), language-only, token replacement with the given fillers.
func NewResolver(library Library, second SecondOpinion, fillers []string) *Resolver {
	if fillers == nil {
		fillers = DefaultFillers
	}
	return &Resolver{chain: Chain{
		LocaleExact{Library: library, Second: second},
		LanguageOnly{Library: library},
		TokenReplacement{Library: library, Fillers: FillerTable(fillers)},
	}}
}

// NewResolverWithChain builds a resolver from an explicit strategy list.
func NewResolverWithChain(chain Chain) *Resolver {
	return &Resolver{chain: append(Chain{}, chain...)}
}

// Resolve parses a candidate. It returns false when no strategy succeeds;
// the candidate is then dropped by the caller.
func (r *Resolver) Resolve(candidate Candidate, settings Settings) (types.ParsedDate, bool) {
	resolution, strategy, ok := r.chain.Run(candidate, settings)
	if !ok {
		slog.Debug("candidate: unparsable, dropped", "text", candidate.Text)
		return types.ParsedDate{}, false
	}
	slog.Debug("candidate: resolved", "text", candidate.Text, "strategy", strategy, "value", resolution.Value)
	return types.ParsedDate{
		Value:       resolution.Value,
		HasTimezone: resolution.HasTimezone,
		Text:        candidate.Text,
		Start:       candidate.Start,
		End:         candidate.End,
	}, true
}
