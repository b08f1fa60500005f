package locale

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/lexdate/pkg/candidate"
)

// ErrNotFound is returned when no locale serves a language code.
var ErrNotFound = errors.New("locale not found")

// Registry maps language codes to locales. Locale table files in a
// directory may override built-in locales or add new table-driven ones,
// and are reloaded when the directory changes.
type Registry struct {
	mu       sync.RWMutex
	builtin  map[string]Locale
	locales  map[string]Locale
	files    map[string]string // file path -> locale code
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, code string)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builtin: make(map[string]Locale),
		locales: make(map[string]Locale),
		files:   make(map[string]string),
	}
}

// DefaultRegistry returns a registry holding the English, German and
// Spanish locales.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	english, err := NewEnglish()
	if err != nil {
		panic(err)
	}
	german, err := NewGerman()
	if err != nil {
		panic(err)
	}
	spanish, err := NewSpanish()
	if err != nil {
		panic(err)
	}
	for _, l := range []Locale{english, german, spanish} {
		if err := r.Register(l); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a built-in locale. Registering a code twice is an error.
func (r *Registry) Register(l Locale) error {
	if l == nil {
		return fmt.Errorf("locale cannot be nil")
	}
	code := l.Code()
	if code == "" {
		return fmt.Errorf("locale code is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builtin[code]; ok {
		return fmt.Errorf("locale %q already registered", code)
	}
	r.builtin[code] = l
	r.locales[code] = l
	return nil
}

// Get returns the locale registered for an exact code.
func (r *Registry) Get(code string) (Locale, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.locales[strings.ToLower(code)]
	return l, ok
}

// Resolve finds the locale for a language tag, stripping the region when
// the full tag is unknown ("de-AT" resolves to "de").
func (r *Registry) Resolve(tag string) (Locale, error) {
	tag = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if l, ok := r.Get(tag); ok {
		return l, nil
	}
	if l, ok := r.Get(candidate.LanguageOf(tag)); ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, tag)
}

// List returns all locales sorted by code.
func (r *Registry) List() []Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locales := make([]Locale, 0, len(r.locales))
	for _, l := range r.locales {
		locales = append(locales, l)
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i].Code() < locales[j].Code() })
	return locales
}

// Count returns the number of locales.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locales)
}

// LoadDirectory loads every YAML locale table in dir. A missing directory
// is not an error.
func (r *Registry) LoadDirectory(dir string) error {
	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isTableFile(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading locales: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads one locale table. A table whose code names a built-in
// locale extends it; any other code creates a table-driven locale.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("invalid locale table: %w", err)
	}
	code := candidate.LanguageOf(table.Code)

	r.mu.Lock()
	defer r.mu.Unlock()

	var l Locale
	if base, ok := r.builtin[code]; ok {
		l, err = base.Merge(table)
	} else {
		l, err = NewBase(table)
	}
	if err != nil {
		return fmt.Errorf("building locale %q: %w", code, err)
	}

	r.locales[code] = l
	r.files[path] = code
	return nil
}

// Reload resets every locale to its built-in form and reloads the
// configured directory.
func (r *Registry) Reload() error {
	r.mu.Lock()
	dir := r.dir
	if dir == "" {
		r.mu.Unlock()
		return fmt.Errorf("no directory configured for reload")
	}
	r.locales = make(map[string]Locale, len(r.builtin))
	for code, l := range r.builtin {
		r.locales[code] = l
	}
	r.files = make(map[string]string)
	r.mu.Unlock()

	return r.LoadDirectory(dir)
}

// SetOnChange sets a callback invoked after a watched table changes.
func (r *Registry) SetOnChange(fn func(event string, code string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Watch starts reloading locale tables when files in the directory change.
func (r *Registry) Watch() error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()
	if dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	r.mu.Lock()
	if r.watcher != nil {
		r.mu.Unlock()
		watcher.Close()
		return fmt.Errorf("already watching %s", dir)
	}
	stop := make(chan struct{})
	r.watcher = watcher
	r.stopChan = stop
	r.mu.Unlock()

	go r.watchLoop(watcher, stop)
	return nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isTableFile(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")
			case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("locale: watcher error", "err", err)
		}
	}
}

func (r *Registry) handleFileChange(path, event string) {
	if err := r.LoadFile(path); err != nil {
		slog.Warn("locale: reload failed", "path", path, "err", err)
		return
	}
	r.notify(event, path)
}

// handleFileRemove reloads the whole directory so the removed table's
// overrides disappear.
func (r *Registry) handleFileRemove(path string) {
	r.mu.RLock()
	code := r.files[path]
	r.mu.RUnlock()

	if err := r.Reload(); err != nil {
		slog.Warn("locale: reload after removal failed", "path", path, "err", err)
	}
	r.mu.RLock()
	fn := r.onChange
	r.mu.RUnlock()
	if fn != nil {
		fn("remove", code)
	}
}

func (r *Registry) notify(event, path string) {
	r.mu.RLock()
	fn := r.onChange
	code := r.files[path]
	r.mu.RUnlock()
	if fn != nil {
		fn(event, code)
	}
}

// StopWatch stops watching the locale directory.
func (r *Registry) StopWatch() {
	r.mu.Lock()
	stop, watcher := r.stopChan, r.watcher
	r.stopChan, r.watcher = nil, nil
	r.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if watcher != nil {
		watcher.Close()
	}
}

func isTableFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
