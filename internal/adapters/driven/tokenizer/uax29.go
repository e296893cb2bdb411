package tokenizer

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

var (
	_ driven.WordTokenizer     = (*UAX29Words)(nil)
	_ driven.SentenceTokenizer = (*UAX29Sentences)(nil)
)

// UAX29Words segments text at Unicode word boundaries and drops
// whitespace-only segments.
type UAX29Words struct{}

// NewUAX29Words creates a UAX #29 word tokenizer.
func NewUAX29Words() *UAX29Words {
	return &UAX29Words{}
}

// Name returns the tokenizer name.
func (*UAX29Words) Name() string {
	return domain.WordTokenizerUAX29
}

// Words returns the word segments of text.
func (*UAX29Words) Words(text string) []string {
	var out []string
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if strings.TrimFunc(word, unicode.IsSpace) != "" {
			out = append(out, word)
		}
	}
	return out
}

// UAX29Sentences segments text at Unicode sentence boundaries.
// Sentences are trimmed and empty ones dropped.
type UAX29Sentences struct{}

// NewUAX29Sentences creates a UAX #29 sentence tokenizer.
func NewUAX29Sentences() *UAX29Sentences {
	return &UAX29Sentences{}
}

// Name returns the tokenizer name.
func (*UAX29Sentences) Name() string {
	return domain.SentenceTokenizerUAX29
}

// Sentences returns the sentences of text.
func (*UAX29Sentences) Sentences(text string) []string {
	var out []string
	state := -1
	for len(text) > 0 {
		var sentence string
		sentence, text, state = uniseg.FirstSentenceInString(text, state)
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			out = append(out, sentence)
		}
	}
	return out
}
