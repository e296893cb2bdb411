package services

import (
	"context"
	"iter"
	"slices"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// StreamingView yields token units file by file. Nothing is cached: each
// iteration decodes the files again, so sequences are restartable and
// memory stays bounded by one document.
//
// A file that cannot be read or decoded is yielded as a *domain.FileError
// and iteration moves on to the next file unless the consumer stops.
type StreamingView struct {
	decoder *Decoder
	tokens  *Tokenization
	flags   domain.ContentFlags
}

// NewStreamingView creates a view over the decoder and tokenizers.
func NewStreamingView(decoder *Decoder, tokens *Tokenization, flags domain.ContentFlags) *StreamingView {
	return &StreamingView{decoder: decoder, tokens: tokens, flags: flags}
}

// Documents yields decoded documents.
func (v *StreamingView) Documents(ctx context.Context, ids []string) iter.Seq2[*domain.DecodedDocument, error] {
	return stream(ctx, v, ids, func(doc *domain.DecodedDocument) []*domain.DecodedDocument {
		return []*domain.DecodedDocument{doc}
	})
}

// Words yields word tokens across files in order.
func (v *StreamingView) Words(ctx context.Context, ids []string) iter.Seq2[string, error] {
	return stream(ctx, v, ids, v.tokens.Words)
}

// Sentences yields tokenized sentences. It fails before iterating when no
// sentence tokenizer is configured.
func (v *StreamingView) Sentences(ctx context.Context, ids []string) (iter.Seq2[[]string, error], error) {
	if err := v.tokens.RequireSentences(); err != nil {
		return nil, err
	}
	return stream(ctx, v, ids, v.tokens.Sentences), nil
}

// Paragraphs yields one paragraph per section.
func (v *StreamingView) Paragraphs(ctx context.Context, ids []string) (iter.Seq2[[][]string, error], error) {
	if err := v.tokens.RequireSentences(); err != nil {
		return nil, err
	}
	return stream(ctx, v, ids, v.tokens.Paragraphs), nil
}

func stream[T any](
	ctx context.Context,
	v *StreamingView,
	ids []string,
	units func(*domain.DecodedDocument) []T,
) iter.Seq2[T, error] {
	ids = slices.Clone(ids)
	return func(yield func(T, error) bool) {
		var zero T
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			doc, err := v.decoder.Decode(ctx, id, v.flags)
			if err != nil {
				if !yield(zero, &domain.FileError{FileID: id, Err: err}) {
					return
				}
				continue
			}
			for _, u := range units(doc) {
				if !yield(u, nil) {
					return
				}
			}
		}
	}
}
