// Package watch re-extracts dates from the documents of a directory when
// they change.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/lexdate/pkg/extract"
	"github.com/coolbeans/lexdate/pkg/types"
)

// DefaultDebounce is the quiet period before a changed file is processed.
const DefaultDebounce = 300 * time.Millisecond

// DefaultPatterns are the file name patterns watched when none are set.
var DefaultPatterns = []string{"*.txt", "*.md"}

// Extractor finds dates in a document.
type Extractor interface {
	Extract(text string, opts extract.Options) ([]types.DateAnnotation, error)
}

// Config configures a Watcher.
type Config struct {
	// Dir is the watched directory. Subdirectories are not watched.
	Dir string `yaml:"dir"`

	// Patterns are filepath.Match patterns applied to file names.
	Patterns []string `yaml:"patterns"`

	// Debounce is the quiet period before processing a changed file.
	Debounce time.Duration `yaml:"debounce"`

	// Options are passed to every extraction.
	Options extract.Options `yaml:"-"`
}

// Result is the outcome of processing one document version.
type Result struct {
	RunID string
	Path  string
	Dates []types.DateAnnotation
	Err   error
}

// Watcher processes matching files once at start and again whenever they
// change. Unchanged content is not processed twice.
type Watcher struct {
	dir       string
	patterns  []string
	debounce  time.Duration
	opts      extract.Options
	extractor Extractor

	mu        sync.Mutex
	hashes    map[string]string
	pending   map[string]time.Time
	callbacks []func(Result)

	runningMu sync.Mutex
	running   bool
	stopChan  chan struct{}
	done      chan struct{}
}

// New creates a watcher.
func New(cfg Config, extractor Extractor) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	if extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = DefaultPatterns
	}
	for _, pattern := range cfg.Patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return &Watcher{
		dir:       cfg.Dir,
		patterns:  append([]string{}, cfg.Patterns...),
		debounce:  cfg.Debounce,
		opts:      cfg.Options,
		extractor: extractor,
		hashes:    make(map[string]string),
		pending:   make(map[string]time.Time),
	}, nil
}

// OnResult registers a callback for processed documents. Callbacks run on
// the watcher goroutine.
func (w *Watcher) OnResult(callback func(Result)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Matches reports whether a file name matches the watched patterns.
func (w *Watcher) Matches(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range w.patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Scan processes every matching file in the directory, in name order.
func (w *Watcher) Scan() ([]Result, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", w.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && w.Matches(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var results []Result
	for _, name := range names {
		if result, ok := w.Process(filepath.Join(w.dir, name)); ok {
			results = append(results, result)
		}
	}
	return results, nil
}

// Process extracts dates from one file and notifies the callbacks. It
// returns false when the content is unchanged since the last run.
func (w *Watcher) Process(path string) (Result, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return w.deliver(Result{RunID: uuid.NewString(), Path: path, Err: fmt.Errorf("reading file: %w", err)}), true
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	w.mu.Lock()
	unchanged := w.hashes[path] == hash
	w.hashes[path] = hash
	w.mu.Unlock()
	if unchanged {
		return Result{}, false
	}

	result := Result{RunID: uuid.NewString(), Path: path, Dates: []types.DateAnnotation{}}
	if len(data) > 0 {
		result.Dates, result.Err = w.extractor.Extract(string(data), w.opts)
	}
	slog.Debug("watch: processed", "run", result.RunID, "path", path, "dates", len(result.Dates), "err", result.Err)
	return w.deliver(result), true
}

func (w *Watcher) deliver(result Result) Result {
	w.mu.Lock()
	callbacks := append([]func(Result){}, w.callbacks...)
	w.mu.Unlock()
	for _, callback := range callbacks {
		callback(result)
	}
	return result
}

// Start scans the directory and begins watching it until ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()
	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}

	if _, err := w.Scan(); err != nil {
		watcher.Close()
		return err
	}

	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	go w.loop(ctx, watcher, w.stopChan, w.done)
	return nil
}

// Stop stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Stop() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()
	if !w.running {
		return fmt.Errorf("watcher is not running")
	}
	close(w.stopChan)
	<-w.done
	w.running = false
	return nil
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)
	defer watcher.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.Matches(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				w.mu.Lock()
				w.pending[event.Name] = time.Now()
				w.mu.Unlock()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.mu.Lock()
				delete(w.pending, event.Name)
				delete(w.hashes, event.Name)
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch: watcher error", "err", err)

		case now := <-ticker.C:
			for _, path := range w.due(now) {
				w.Process(path)
			}
		}
	}
}

// due removes and returns the pending paths whose quiet period has passed.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var paths []string
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}
