package candidate

import (
	"fmt"
	"sync"
	"time"
)

// fakeLibrary is a Library driven by a lookup table so that tests do not
// depend on the behaviour of a real date parser.
type fakeLibrary struct {
	mu      sync.Mutex
	dates   map[string]time.Time
	locales map[string]bool // when set, only these locales parse
	calls   []Settings
	texts   []string
}

func newFakeLibrary(dates map[string]time.Time) *fakeLibrary {
	return &fakeLibrary{dates: dates}
}

func (f *fakeLibrary) Parse(text string, settings Settings) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, settings)
	f.texts = append(f.texts, text)
	if f.locales != nil && !f.locales[settings.Locale] {
		return time.Time{}, fmt.Errorf("locale %q not supported", settings.Locale)
	}
	if value, ok := f.dates[text]; ok {
		return value, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q", text)
}

func (f *fakeLibrary) Search(text string, settings Settings) ([]SearchResult, error) {
	return nil, nil
}

type fakeSecondOpinion struct {
	value time.Time
	err   error
}

func (f fakeSecondOpinion) Parse(text string, base time.Time) (time.Time, error) {
	return f.value, f.err
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}
