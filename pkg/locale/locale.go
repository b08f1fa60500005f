// Package locale holds the per-language behaviour of the date finder:
// vocabulary for the tokenizer, strict policy, filler words, the primary
// search mode and the overrides of the general sanity filter.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/coolbeans/lexdate/pkg/candidate"
	"github.com/coolbeans/lexdate/pkg/lexer"
)

// SearchMode selects the primary candidate search of a locale.
type SearchMode string

const (
	// SearchFragments runs the tokenizer, merger and candidate parser.
	SearchFragments SearchMode = "fragments"

	// SearchLibrary uses the date library's phrase search.
	SearchLibrary SearchMode = "library"
)

// Found is a date candidate produced by a primary search or an extension
// hook. Text is a literal substring of the searched text.
type Found struct {
	Text        string
	Value       time.Time
	HasTimezone bool
}

// Parser resolves one date phrase. Extension hooks use it to parse the
// pieces they split off.
type Parser func(text string) (Found, bool)

// Locale is one language specialization.
// Implementations are immutable and safe for concurrent use.
type Locale interface {
	// Code is the registry key, a bare language code such as "de".
	Code() string

	// Languages are handed to the date library.
	Languages() []string

	// Table returns the data the locale was built from.
	Table() Table

	// Tokenizer is compiled once from the locale vocabulary.
	Tokenizer() *lexer.Tokenizer

	StrictPolicy() candidate.StrictPolicy
	Fillers() []string
	Search() SearchMode

	// Segments splits text into independently searched pieces. Offsets of
	// results are relative to their segment.
	Segments(text string) []lexer.Segment

	// Extend may add or rewrite candidates after the primary search.
	Extend(text string, found []Found, parse Parser) []Found

	// Accept is the sanity filter applied to every candidate.
	Accept(found Found) bool

	// Merge returns a copy of the locale with the table overrides applied.
	Merge(overrides Table) (Locale, error)
}

// Table is the declarative part of a locale, loadable from YAML.
type Table struct {
	Code       string                  `yaml:"code" json:"code"`
	Languages  []string                `yaml:"languages,omitempty" json:"languages,omitempty"`
	Vocabulary lexer.Vocabulary        `yaml:"vocabulary" json:"vocabulary"`
	Strict     *candidate.StrictPolicy `yaml:"strict,omitempty" json:"strict,omitempty"`
	Fillers    []string                `yaml:"fillers,omitempty" json:"fillers,omitempty"`
	Search     SearchMode              `yaml:"search,omitempty" json:"search,omitempty"`

	// Numerals maps spelled-out number words to their values.
	Numerals map[string]int `yaml:"numerals,omitempty" json:"numerals,omitempty"`
}

// Validate checks the table can build a locale.
func (t Table) Validate() error {
	if strings.TrimSpace(t.Code) == "" {
		return fmt.Errorf("locale code is required")
	}
	switch t.Search {
	case "", SearchFragments, SearchLibrary:
	default:
		return fmt.Errorf("unknown search mode %q", t.Search)
	}
	if t.Strict != nil && (t.Strict.DigitGroups <= 0 || t.Strict.MonthDigitGroups < 0) {
		return fmt.Errorf("invalid strict policy %+v", *t.Strict)
	}
	return nil
}

// Merge applies overrides on top of t. Word lists are unioned, scalar
// settings are replaced when set. Neither table is modified.
func (t Table) Merge(overrides Table) Table {
	merged := Table{
		Code:       t.Code,
		Languages:  append([]string{}, t.Languages...),
		Vocabulary: t.Vocabulary.Extend(overrides.Vocabulary),
		Strict:     t.Strict,
		Fillers:    appendUnique(t.Fillers, overrides.Fillers),
		Search:     t.Search,
		Numerals:   make(map[string]int, len(t.Numerals)+len(overrides.Numerals)),
	}
	if len(overrides.Languages) > 0 {
		merged.Languages = append([]string{}, overrides.Languages...)
	}
	if overrides.Strict != nil {
		strict := *overrides.Strict
		merged.Strict = &strict
	}
	if overrides.Search != "" {
		merged.Search = overrides.Search
	}
	for word, value := range t.Numerals {
		merged.Numerals[word] = value
	}
	for word, value := range overrides.Numerals {
		merged.Numerals[word] = value
	}
	return merged
}

func appendUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, word := range list {
			if !seen[word] {
				seen[word] = true
				out = append(out, word)
			}
		}
	}
	return out
}

// Base is a table-driven locale with fragment search by default, no
// segmentation and the general sanity filter. Specializations embed it.
type Base struct {
	table     Table
	tokenizer *lexer.Tokenizer
}

// NewBase compiles a locale from a table.
func NewBase(table Table) (*Base, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	table.Code = candidate.LanguageOf(table.Code)
	if len(table.Languages) == 0 {
		table.Languages = []string{table.Code}
	}
	if table.Search == "" {
		table.Search = SearchFragments
	}
	numerals := make(map[string]int, len(table.Numerals))
	for word, value := range table.Numerals {
		numerals[foldWord(word)] = value
	}
	table.Numerals = numerals
	tokenizer, err := lexer.NewTokenizer(table.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", table.Code, err)
	}
	return &Base{table: table, tokenizer: tokenizer}, nil
}

// Code returns the language code.
func (b *Base) Code() string { return b.table.Code }

// Languages returns the library languages.
func (b *Base) Languages() []string { return append([]string{}, b.table.Languages...) }

// Table returns a copy of the locale table.
func (b *Base) Table() Table { return b.table.Merge(Table{}) }

// Tokenizer returns the compiled tokenizer.
func (b *Base) Tokenizer() *lexer.Tokenizer { return b.tokenizer }

// StrictPolicy returns the table policy or the default.
func (b *Base) StrictPolicy() candidate.StrictPolicy {
	if b.table.Strict != nil {
		return *b.table.Strict
	}
	return candidate.DefaultStrictPolicy()
}

// Fillers returns the filler words used by token replacement and the
// sanity filter.
func (b *Base) Fillers() []string {
	if len(b.table.Fillers) == 0 {
		return candidate.DefaultFillers
	}
	return b.table.Fillers
}

// Search returns the primary search mode.
func (b *Base) Search() SearchMode { return b.table.Search }

// Segments returns the whole text as one segment.
func (b *Base) Segments(text string) []lexer.Segment {
	return []lexer.Segment{{Text: text}}
}

// Extend returns found unchanged.
func (b *Base) Extend(text string, found []Found, parse Parser) []Found {
	return found
}

// Accept applies the general sanity filter.
func (b *Base) Accept(found Found) bool {
	return GeneralFilter(found.Text, b.Fillers())
}

// Merge returns a new base locale with overrides applied.
func (b *Base) Merge(overrides Table) (Locale, error) {
	base, err := b.merged(overrides)
	if err != nil {
		return nil, err
	}
	return base, nil
}

func (b *Base) merged(overrides Table) (*Base, error) {
	return NewBase(b.table.Merge(overrides))
}
