// Package stem provides a Snowball English stemming token filter.
package stem

import (
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// Name is the registry name of the filter.
const Name = "stem"

// Filter reduces tokens to their Snowball English stem.
type Filter struct {
	stopWords bool
	minLength int
}

// Option configures the stem filter.
type Option func(*Filter)

// WithStopWords controls whether stop words such as "because" are stemmed.
func WithStopWords(stem bool) Option {
	return func(f *Filter) {
		f.stopWords = stem
	}
}

// WithMinLength leaves tokens shorter than n runes unchanged.
func WithMinLength(n int) Option {
	return func(f *Filter) {
		if n >= 0 {
			f.minLength = n
		}
	}
}

// New creates a stem filter with the given options.
func New(opts ...Option) *Filter {
	f := &Filter{stopWords: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the filter name.
func (*Filter) Name() string {
	return Name
}

// Filter stems tokens in place and returns them.
func (f *Filter) Filter(tokens []string) []string {
	for i, tok := range tokens {
		if utf8.RuneCountInString(tok) < f.minLength {
			continue
		}
		tokens[i] = english.Stem(tok, f.stopWords)
	}
	return tokens
}
