package tokenizer

import (
	"regexp"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure WordPunct implements the interface.
var _ driven.WordTokenizer = (*WordPunct)(nil)

// wordPunctPattern matches runs of word characters or runs of punctuation.
var wordPunctPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+|[^\p{L}\p{N}\p{M}_\s]+`)

// WordPunct splits text into alphanumeric runs and punctuation runs,
// so "don't." becomes ["don", "'", "t", "."].
type WordPunct struct{}

// NewWordPunct creates a word/punctuation tokenizer.
func NewWordPunct() *WordPunct {
	return &WordPunct{}
}

// Name returns the tokenizer name.
func (*WordPunct) Name() string {
	return domain.WordTokenizerWordPunct
}

// Words returns the tokens of text.
func (*WordPunct) Words(text string) []string {
	return wordPunctPattern.FindAllString(text, -1)
}
