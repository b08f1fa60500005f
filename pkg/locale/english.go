package locale

import (
	"github.com/coolbeans/lexdate/pkg/candidate"
	"github.com/coolbeans/lexdate/pkg/lexer"
)

// EnglishTable returns the built-in English locale table.
func EnglishTable() Table {
	return Table{
		Code:       "en",
		Languages:  []string{"en"},
		Search:     SearchFragments,
		Vocabulary: lexer.EnglishVocabulary(),
		Fillers:    candidate.DefaultFillers,
	}
}

// NewEnglish builds the English locale: fragment search and the general
// sanity filter.
func NewEnglish() (*Base, error) {
	return NewBase(EnglishTable())
}
