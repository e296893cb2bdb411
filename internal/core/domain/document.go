package domain

import (
	"encoding/json"
	"strings"
)

// Record is the physical parse file schema.
// Pointer and nil-slice fields distinguish "absent" from "empty".
type Record struct {
	// PaperID is the parse's own identifier, informational only.
	PaperID string `json:"paper_id"`

	// Metadata carries the title. Required when titles are requested.
	Metadata *RecordMetadata `json:"metadata"`

	// Abstract is optional; many papers have none.
	Abstract []Section `json:"abstract"`

	// BodyText is required by the schema.
	BodyText []Section `json:"body_text"`

	// BibEntries is passed through verbatim by citation lookups.
	BibEntries map[string]json.RawMessage `json:"bib_entries"`
}

// RecordMetadata is the metadata object of a parse file.
type RecordMetadata struct {
	Title *string `json:"title"`
}

// Section is one abstract or body section. Text is required; nil means
// the key was absent.
type Section struct {
	Text    *string `json:"text"`
	Section string  `json:"section,omitempty"`
}

// ContentFlags choose which parts of a record are extracted.
type ContentFlags struct {
	IncludeTitle    bool
	IncludeAbstract bool
	IncludeBody     bool
}

// DefaultContentFlags includes title, abstract and body.
func DefaultContentFlags() ContentFlags {
	return ContentFlags{
		IncludeTitle:    true,
		IncludeAbstract: true,
		IncludeBody:     true,
	}
}

// DecodedDocument holds the extracted text of one parse file.
// It is owned by the call that produced it and never cached.
type DecodedDocument struct {
	// FileID is the file identifier the document was decoded from.
	FileID string

	// Title is empty unless titles were requested.
	Title string

	// HasTitle reports whether the title was extracted.
	HasTitle bool

	// Abstract holds abstract section texts in order.
	Abstract []string

	// Body holds body section texts in order.
	Body []string
}

// Sections returns the extracted texts in reading order: title (if
// extracted), abstract sections, then body sections. Each element is one
// paragraph unit.
func (d *DecodedDocument) Sections() []string {
	out := make([]string, 0, 1+len(d.Abstract)+len(d.Body))
	if d.HasTitle {
		out = append(out, d.Title)
	}
	out = append(out, d.Abstract...)
	out = append(out, d.Body...)
	return out
}

// Text joins all sections, each followed by a line break.
func (d *DecodedDocument) Text() string {
	var b strings.Builder
	for _, s := range d.Sections() {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}
