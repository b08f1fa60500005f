package extract

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coolbeans/lexdate/pkg/candidate"
)

// fakeLibrary parses from a lookup table and answers phrase searches from
// a table keyed by the searched text.
type fakeLibrary struct {
	mu       sync.Mutex
	dates    map[string]time.Time
	searches map[string][]candidate.SearchResult
	parseAll *time.Time
	calls    int
}

func (f *fakeLibrary) Parse(text string, settings candidate.Settings) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if value, ok := f.dates[text]; ok {
		return value, nil
	}
	if f.parseAll != nil && strings.ContainsAny(text, "0123456789") {
		return *f.parseAll, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q", text)
}

func (f *fakeLibrary) Search(text string, settings candidate.Settings) ([]candidate.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results, ok := f.searches[text]
	if !ok {
		return nil, fmt.Errorf("no search results for %q", text)
	}
	return results, nil
}

// fakeClassifier returns a fixed probability.
type fakeClassifier struct {
	columns     []string
	probability float64
	err         error
}

func (c fakeClassifier) Columns() []string { return c.columns }

func (c fakeClassifier) PredictProba(row []float64) (float64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.probability, nil
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}
