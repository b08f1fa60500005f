package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coolbeans/lexdate/pkg/extract"
	"github.com/coolbeans/lexdate/pkg/types"
)

// countingExtractor reports one date per line containing "date".
type countingExtractor struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *countingExtractor) Extract(text string, opts extract.Options) ([]types.DateAnnotation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	var dates []types.DateAnnotation
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "date") {
			dates = append(dates, types.DateAnnotation{Source: line})
		}
	}
	return dates, nil
}

func (e *countingExtractor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(Config{}, &countingExtractor{}); err == nil {
		t.Error("New() without directory should return error")
	}
	if _, err := New(Config{Dir: t.TempDir()}, nil); err == nil {
		t.Error("New() without extractor should return error")
	}
	if _, err := New(Config{Dir: t.TempDir(), Patterns: []string{"["}}, &countingExtractor{}); err == nil {
		t.Error("New() with a malformed pattern should return error")
	}
}

func TestMatches(t *testing.T) {
	w, err := New(Config{Dir: t.TempDir()}, &countingExtractor{})
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]bool{
		"notes.txt":         true,
		"/tmp/docs/memo.md": true,
		"image.png":         false,
		"txt":               false,
	}
	for path, want := range cases {
		if got := w.Matches(path); got != want {
			t.Errorf("Matches(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestScanSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "first date\nnothing\nsecond date")
	writeFile(t, filepath.Join(dir, "b.md"), "no dates here")
	writeFile(t, filepath.Join(dir, "c.png"), "date")

	extractor := &countingExtractor{}
	w, err := New(Config{Dir: dir}, extractor)
	if err != nil {
		t.Fatal(err)
	}

	var delivered []Result
	w.OnResult(func(r Result) { delivered = append(delivered, r) })

	results, err := w.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(results) != 2 || len(delivered) != 2 {
		t.Fatalf("Scan() = %d results, %d delivered, want 2", len(results), len(delivered))
	}
	if filepath.Base(results[0].Path) != "a.txt" || len(results[0].Dates) != 2 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[0].RunID == "" || results[0].RunID == results[1].RunID {
		t.Error("every result needs its own run id")
	}

	again, err := w.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 || extractor.count() != 2 {
		t.Errorf("second Scan() processed %d files, extractor called %d times", len(again), extractor.count())
	}
}

func TestProcessReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "some date")

	w, err := New(Config{Dir: dir}, &countingExtractor{err: extract.ErrMalformedInput})
	if err != nil {
		t.Fatal(err)
	}
	result, ok := w.Process(path)
	if !ok || !errors.Is(result.Err, extract.ErrMalformedInput) {
		t.Errorf("Process() = %+v, %v", result, ok)
	}

	missing, ok := w.Process(filepath.Join(dir, "missing.txt"))
	if !ok || missing.Err == nil {
		t.Error("Process(missing) should report a read error")
	}
}

func TestStartStop(t *testing.T) {
	w, err := New(Config{Dir: t.TempDir()}, &countingExtractor{})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Stop(); err == nil {
		t.Error("Stop() before Start() should return error")
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(context.Background()); err == nil {
		t.Error("second Start() should return error")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestWatchDetectsChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping watch test in short mode")
	}

	dir := t.TempDir()
	w, err := New(Config{Dir: dir, Debounce: 50 * time.Millisecond}, &countingExtractor{})
	if err != nil {
		t.Fatal(err)
	}

	results := make(chan Result, 4)
	w.OnResult(func(r Result) { results <- r })

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "new.txt"), "a date\nanother date")

	select {
	case r := <-results:
		if filepath.Base(r.Path) != "new.txt" || len(r.Dates) != 2 {
			t.Errorf("Result = %+v", r)
		}
	case <-time.After(3 * time.Second):
		t.Log("watcher did not report the change within timeout (may be CI environment)")
	}
}
