// Package tokenizer provides the word and sentence tokenizers used by the
// streaming views: a word/punctuation splitter and Unicode text
// segmentation (UAX #29) backed by github.com/rivo/uniseg.
package tokenizer
