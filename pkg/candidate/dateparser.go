package candidate

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	dps "github.com/markusmobius/go-dateparser"
)

// DateparserLibrary implements Library on top of go-dateparser.
type DateparserLibrary struct{}

// NewDateparserLibrary returns a Library backed by go-dateparser.
func NewDateparserLibrary() *DateparserLibrary {
	return &DateparserLibrary{}
}

func (l *DateparserLibrary) configuration(settings Settings) *dps.Configuration {
	cfg := &dps.Configuration{CurrentTime: settings.BaseDate}
	if len(settings.Languages) > 0 {
		cfg.Languages = append([]string{}, settings.Languages...)
	}
	if strings.ContainsAny(settings.Locale, "-_") {
		cfg.Locales = []string{strings.ReplaceAll(settings.Locale, "_", "-")}
	}
	return cfg
}

// Parse resolves one date expression.
func (l *DateparserLibrary) Parse(text string, settings Settings) (time.Time, error) {
	parsed, err := dps.Parse(l.configuration(settings), text)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateparser: %w", err)
	}
	if parsed.Time.IsZero() {
		return time.Time{}, fmt.Errorf("dateparser: no date in %q", text)
	}
	return parsed.Time, nil
}

// Search finds date phrases in text.
func (l *DateparserLibrary) Search(text string, settings Settings) ([]SearchResult, error) {
	_, found, err := dps.Search(l.configuration(settings), text)
	if err != nil {
		return nil, fmt.Errorf("dateparser search: %w", err)
	}
	results := make([]SearchResult, 0, len(found))
	for _, result := range found {
		if result.Date.Time.IsZero() {
			continue
		}
		results = append(results, SearchResult{Text: result.Text, Date: result.Date.Time})
	}
	return results, nil
}

// StrictLibrary implements SecondOpinion with araddon/dateparse in strict
// mode, which refuses ambiguous day/month orderings instead of guessing.
type StrictLibrary struct{}

// Parse resolves text, interpreting zone-less values in base's location.
func (StrictLibrary) Parse(text string, base time.Time) (time.Time, error) {
	parsed, err := dateparse.ParseStrict(text)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateparse: %w", err)
	}
	if !base.IsZero() && parsed.Location() == time.UTC && base.Location() != time.UTC {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), base.Location())
	}
	return parsed, nil
}
