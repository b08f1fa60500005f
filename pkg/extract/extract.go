// Package extract finds calendar dates in free text. It runs a locale's
// primary search, applies the sanity filter, re-localizes every accepted
// phrase in the text, suppresses overlapping spans longest first, and
// optionally scores each span with a classifier.
package extract

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/coolbeans/lexdate/pkg/candidate"
	"github.com/coolbeans/lexdate/pkg/features"
	"github.com/coolbeans/lexdate/pkg/locale"
	"github.com/coolbeans/lexdate/pkg/model"
	"github.com/coolbeans/lexdate/pkg/types"
)

// DefaultThreshold is the minimum classifier probability for acceptance.
const DefaultThreshold = 0.5

// Options configures one extraction call.
type Options struct {
	// Language is a language tag such as "en" or "de-AT". Required.
	Language string

	// BaseDate fills components missing from partial dates. Zero means now.
	BaseDate time.Time

	// Strict enables the fragment completeness test.
	Strict bool

	// Threshold is the minimum classifier probability. Zero selects
	// DefaultThreshold.
	Threshold float64

	// Window overrides the classifier's feature window when positive.
	Window int
}

func (o Options) threshold() float64 {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Extractor is the date-finding pipeline. It holds only immutable
// collaborators and is safe for concurrent use.
type Extractor struct {
	registry   *locale.Registry
	library    candidate.Library
	second     candidate.SecondOpinion
	classifier model.Classifier
	columns    []string
	features   features.Options
}

// New creates an extractor. A nil registry selects the built-in locales and
// a nil library selects go-dateparser. second and classifier are optional;
// a classifier without feature columns is disabled with a warning.
func New(registry *locale.Registry, library candidate.Library, second candidate.SecondOpinion, classifier model.Classifier) *Extractor {
	if registry == nil {
		registry = locale.DefaultRegistry()
	}
	if library == nil {
		library = candidate.NewDateparserLibrary()
	}
	e := &Extractor{registry: registry, library: library, second: second}
	if classifier != nil {
		columns := classifier.Columns()
		if len(columns) == 0 {
			slog.Warn("extract: classifier has no feature columns, using general filter only")
		} else {
			e.classifier = classifier
			e.columns = columns
			e.features = model.OptionsFor(classifier)
		}
	}
	return e
}

// GateEnabled reports whether the classifier gate is active.
func (e *Extractor) GateEnabled() bool {
	return e.classifier != nil
}

// Registry returns the locale registry.
func (e *Extractor) Registry() *locale.Registry {
	return e.registry
}

// Extract returns the dates found in text, in acceptance order. Only
// missing text or language and unknown languages are errors; candidates
// that cannot be parsed are dropped.
func (e *Extractor) Extract(text string, opts Options) ([]types.DateAnnotation, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedInput)
	}
	if opts.Language == "" {
		return nil, fmt.Errorf("%w: language is required", ErrMalformedInput)
	}
	loc, err := e.registry.Resolve(opts.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedLanguage, err)
	}

	base := opts.BaseDate
	if base.IsZero() {
		base = time.Now()
	}
	req := searchRequest{
		locale:   loc,
		resolver: candidate.NewResolver(e.library, e.second, loc.Fillers()),
		settings: candidate.Settings{Locale: opts.Language, Languages: loc.Languages(), BaseDate: base},
		strict:   opts.Strict,
	}

	var search searcher = fragmentSearcher{}
	if loc.Search() == locale.SearchLibrary {
		search = librarySearcher{Library: e.library}
	}

	var accepted []span
	annotations := []types.DateAnnotation{}
	for _, segment := range loc.Segments(text) {
		found := search.Search(segment.Text, req)
		found = loc.Extend(segment.Text, found, phraseParser(req))

		kept := found[:0:0]
		for _, f := range found {
			if loc.Accept(f) {
				kept = append(kept, f)
			} else {
				slog.Debug("extract: rejected by filter", "text", f.Text, "locale", loc.Code())
			}
		}

		for _, s := range relocate(segment.Text, kept) {
			start, end := segment.Start+s.start, segment.Start+s.end
			if overlapsAny(accepted, start, end) {
				continue
			}
			probability, ok := e.score(text, start, end, opts)
			if !ok {
				continue
			}
			accepted = append(accepted, span{start: start, end: end, found: s.found})
			annotations = append(annotations, types.DateAnnotation{
				Start:       utf8.RuneCountInString(text[:start]),
				End:         utf8.RuneCountInString(text[:end]),
				ByteStart:   start,
				ByteEnd:     end,
				Value:       s.found.Value,
				Source:      text[start:end],
				Probability: probability,
			})
		}
	}
	return annotations, nil
}

// score applies the classifier gate. It returns false when the span is
// rejected. Scoring failures disable the gate for the span.
func (e *Extractor) score(text string, start, end int, opts Options) (*float64, bool) {
	if e.classifier == nil {
		return nil, true
	}
	fopts := e.features
	if opts.Window > 0 {
		fopts.Window = opts.Window
	}
	row := features.Extract(text, start, end, fopts).Row(e.columns)
	p, err := e.classifier.PredictProba(row)
	if err != nil {
		slog.Warn("extract: classifier failed, accepting span", "source", text[start:end], "err", err)
		return nil, true
	}
	if p < opts.threshold() {
		slog.Debug("extract: rejected by classifier", "source", text[start:end], "probability", p)
		return nil, false
	}
	return &p, true
}
