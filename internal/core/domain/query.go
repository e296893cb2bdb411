package domain

import "slices"

// Granularity is the unit of tokenized output.
type Granularity string

// Available granularities.
const (
	GranularityWord      Granularity = "word"
	GranularitySentence  Granularity = "sentence"
	GranularityParagraph Granularity = "paragraph"
)

// IsValid returns true if the granularity is recognised.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityWord, GranularitySentence, GranularityParagraph:
		return true
	default:
		return false
	}
}

// NeedsSentences reports whether the granularity requires a sentence tokenizer.
func (g Granularity) NeedsSentences() bool {
	return g == GranularitySentence || g == GranularityParagraph
}

// Selection is the identifier argument accepted by every query:
// a single file, a list of files, or the whole canonical file set.
type Selection struct {
	ids []string
	all bool
}

// All selects the canonical file set.
func All() Selection {
	return Selection{all: true}
}

// One selects a single file.
func One(fileID string) Selection {
	return Selection{ids: []string{fileID}}
}

// Many selects the given files in the given order.
// An empty list selects nothing; use All for the whole corpus.
func Many(fileIDs ...string) Selection {
	return Selection{ids: slices.Clone(fileIDs)}
}

// Select maps CLI style arguments to a selection: no arguments means all.
func Select(fileIDs []string) Selection {
	if len(fileIDs) == 0 {
		return All()
	}
	return Many(fileIDs...)
}

// IsAll reports whether the selection is the whole canonical set.
func (s Selection) IsAll() bool {
	return s.all
}

// Resolve returns the selected ids, taking the canonical set for All.
func (s Selection) Resolve(set CanonicalFileSet) []string {
	if s.all {
		return set.IDs()
	}
	return slices.Clone(s.ids)
}
