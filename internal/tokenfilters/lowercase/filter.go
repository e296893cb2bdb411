// Package lowercase provides a token filter that folds tokens to lower case.
package lowercase

import "strings"

// Name is the registry name of the filter.
const Name = "lowercase"

// Filter lowercases every token.
type Filter struct{}

// New creates a lowercase filter.
func New() *Filter {
	return &Filter{}
}

// Name returns the filter name.
func (*Filter) Name() string {
	return Name
}

// Filter lowercases tokens in place and returns them.
func (*Filter) Filter(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}
	return tokens
}
