package driven

// WordTokenizer splits text into word tokens.
type WordTokenizer interface {
	// Name returns the tokenizer name for logging and configuration.
	Name() string

	// Words returns the tokens of text in order.
	Words(text string) []string
}

// SentenceTokenizer splits text into sentence spans.
type SentenceTokenizer interface {
	// Name returns the tokenizer name for logging and configuration.
	Name() string

	// Sentences returns the sentences of text in order.
	Sentences(text string) []string
}
