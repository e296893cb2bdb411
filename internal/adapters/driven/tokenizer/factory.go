package tokenizer

import (
	"fmt"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// NewWord returns the word tokenizer registered under name.
func NewWord(name string) (driven.WordTokenizer, error) {
	switch name {
	case domain.WordTokenizerWordPunct, "":
		return NewWordPunct(), nil
	case domain.WordTokenizerUAX29:
		return NewUAX29Words(), nil
	default:
		return nil, fmt.Errorf("%w: word tokenizer %q", domain.ErrUnsupportedType, name)
	}
}

// NewSentence returns the sentence tokenizer registered under name.
// "none" yields a nil tokenizer, which disables sentence queries.
func NewSentence(name string) (driven.SentenceTokenizer, error) {
	switch name {
	case domain.SentenceTokenizerUAX29, "":
		return NewUAX29Sentences(), nil
	case domain.SentenceTokenizerNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: sentence tokenizer %q", domain.ErrUnsupportedType, name)
	}
}
