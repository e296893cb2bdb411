package services

import (
	"fmt"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Tokenization turns decoded documents into word, sentence and
// paragraph units. The sentence tokenizer is optional.
type Tokenization struct {
	words     driven.WordTokenizer
	sentences driven.SentenceTokenizer
}

// NewTokenization creates a tokenization adapter.
// A word tokenizer is required; sentences may be nil.
func NewTokenization(words driven.WordTokenizer, sentences driven.SentenceTokenizer) (*Tokenization, error) {
	if words == nil {
		return nil, fmt.Errorf("%w: word tokenizer is required", domain.ErrInvalidInput)
	}
	return &Tokenization{words: words, sentences: sentences}, nil
}

// HasSentences reports whether a sentence tokenizer is configured.
func (t *Tokenization) HasSentences() bool {
	return t.sentences != nil
}

// RequireSentences returns ErrNoSentenceTokenizer when sentences are unavailable.
func (t *Tokenization) RequireSentences() error {
	if t.sentences == nil {
		return domain.ErrNoSentenceTokenizer
	}
	return nil
}

// Words tokenizes the whole document text at once.
func (t *Tokenization) Words(doc *domain.DecodedDocument) []string {
	return t.words.Words(doc.Text())
}

// Sentences splits every section into sentences independently, so a
// sentence never spans two sections.
func (t *Tokenization) Sentences(doc *domain.DecodedDocument) [][]string {
	var out [][]string
	for _, section := range doc.Sections() {
		out = append(out, t.sectionSentences(section)...)
	}
	return out
}

// Paragraphs returns one paragraph per section, each a list of sentences.
// A section with no sentences still yields an empty paragraph.
func (t *Tokenization) Paragraphs(doc *domain.DecodedDocument) [][][]string {
	sections := doc.Sections()
	out := make([][][]string, len(sections))
	for i, section := range sections {
		out[i] = t.sectionSentences(section)
		if out[i] == nil {
			out[i] = [][]string{}
		}
	}
	return out
}

func (t *Tokenization) sectionSentences(text string) [][]string {
	var out [][]string
	for _, sentence := range t.sentences.Sentences(text) {
		out = append(out, t.words.Words(sentence))
	}
	return out
}
