package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Decoder loads parse files from a RecordStore and extracts their text.
// It holds no per-file state; every call reads the record afresh.
type Decoder struct {
	records driven.RecordStore
}

// NewDecoder creates a decoder over the given record store.
func NewDecoder(records driven.RecordStore) *Decoder {
	return &Decoder{records: records}
}

// Load reads and parses one record.
func (d *Decoder) Load(ctx context.Context, fileID string) (*domain.Record, error) {
	data, err := d.records.Read(ctx, fileID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordFormat, err)
	}
	return &rec, nil
}

// Extract pulls the requested parts out of a loaded record.
func (d *Decoder) Extract(fileID string, rec *domain.Record, flags domain.ContentFlags) (*domain.DecodedDocument, error) {
	if rec.BodyText == nil {
		return nil, fmt.Errorf("%w: missing body_text", domain.ErrRecordFormat)
	}

	doc := &domain.DecodedDocument{FileID: fileID}
	if flags.IncludeTitle {
		if rec.Metadata == nil || rec.Metadata.Title == nil {
			return nil, fmt.Errorf("%w: missing metadata.title", domain.ErrRecordFormat)
		}
		doc.Title = *rec.Metadata.Title
		doc.HasTitle = true
	}
	var err error
	if flags.IncludeAbstract {
		if doc.Abstract, err = sectionTexts("abstract", rec.Abstract); err != nil {
			return nil, err
		}
	}
	if flags.IncludeBody {
		if doc.Body, err = sectionTexts("body_text", rec.BodyText); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Decode loads one record and extracts the requested parts.
func (d *Decoder) Decode(ctx context.Context, fileID string, flags domain.ContentFlags) (*domain.DecodedDocument, error) {
	rec, err := d.Load(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return d.Extract(fileID, rec, flags)
}

// Citations returns the bibliography entries of one record verbatim.
// A record without entries yields an empty map.
func (d *Decoder) Citations(ctx context.Context, fileID string) (map[string]json.RawMessage, error) {
	rec, err := d.Load(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return bibEntries(rec), nil
}

func bibEntries(rec *domain.Record) map[string]json.RawMessage {
	if rec.BibEntries == nil {
		return map[string]json.RawMessage{}
	}
	return rec.BibEntries
}

func sectionTexts(field string, sections []domain.Section) ([]string, error) {
	out := make([]string, len(sections))
	for i, s := range sections {
		if s.Text == nil {
			return nil, fmt.Errorf("%w: %s[%d] has no text", domain.ErrRecordFormat, field, i)
		}
		out[i] = *s.Text
	}
	return out, nil
}
