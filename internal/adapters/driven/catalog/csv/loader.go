// Package csv loads the metadata catalog from delimited text. The dialect
// (delimiter and quote character) is detected from the leading bytes of
// the input before parsing.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.CatalogLoader = (*Loader)(nil)

const utf8BOM = "\ufeff"

// Loader parses delimited catalogs with a sniffed dialect.
type Loader struct {
	sniffSize int
}

// Option configures the loader.
type Option func(*Loader)

// WithSniffSize sets how many leading bytes are used for detection.
func WithSniffSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.sniffSize = n
		}
	}
}

// NewLoader creates a catalog loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{sniffSize: SniffSize}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the whole catalog. Every record must have as many fields as
// the header, and every row must carry a document identity.
func (l *Loader) Load(ctx context.Context, r io.Reader, columns domain.Columns) (*domain.Catalog, error) {
	sample, complete, err := readSample(r, nil, l.sniffSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	dialect, err := Sniff(sample, complete)
	for errors.Is(err, errShortSample) && len(sample) < MaxSniffSize {
		if sample, complete, err = readSample(r, sample, min(2*len(sample), MaxSniffSize)); err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		dialect, err = Sniff(sample, complete)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog dialect: %s", dialect)

	src := io.MultiReader(bytes.NewReader(sample), r)
	unquote := func(s string) string { return s }
	if dialect.Quote == '\'' {
		src = &quoteSwapper{r: src}
		unquote = swapQuotes
	}

	cr := csv.NewReader(src)
	cr.Comma = rune(dialect.Delimiter)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, formatError(err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = unquote(h)
	}
	names[0] = strings.TrimPrefix(names[0], utf8BOM)

	builder, err := domain.NewCatalogBuilder(names, columns)
	if err != nil {
		return nil, err
	}
	for line := 1; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatError(err)
		}

		fields := make(map[string]string, len(names))
		for i, name := range names {
			fields[name] = unquote(record[i])
		}
		row := domain.CatalogRow{
			DocUID: fields[columns.ID],
			KindA:  fields[columns.KindA],
			KindB:  fields[columns.KindB],
			Fields: fields,
			Line:   line,
		}
		if err := builder.Add(row); err != nil {
			return nil, err
		}
	}

	catalog := builder.Freeze()
	logger.Debug("catalog columns: %d, id=%s kind_a=%s kind_b=%s",
		len(names), columns.ID, columns.KindA, columns.KindB)
	return catalog, nil
}

// readSample extends sample to size bytes from r. complete reports that r
// is exhausted.
func readSample(r io.Reader, sample []byte, size int) ([]byte, bool, error) {
	n := len(sample)
	sample = append(sample, make([]byte, size-n)...)
	m, err := io.ReadFull(r, sample[n:])
	sample = sample[:n+m]
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return sample, true, nil
	}
	return sample, false, err
}

func formatError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrCatalogFormat, err)
}

// swapQuotes exchanges single and double quotes.
func swapQuotes(s string) string {
	if !strings.ContainsAny(s, `"'`) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '"':
			return '\''
		case '\'':
			return '"'
		}
		return r
	}, s)
}

// quoteSwapper presents single-quoted input as double-quoted so that
// encoding/csv can parse it. Field values are swapped back afterwards.
type quoteSwapper struct {
	r io.Reader
}

func (q *quoteSwapper) Read(p []byte) (int, error) {
	n, err := q.r.Read(p)
	for i := range p[:n] {
		switch p[i] {
		case '"':
			p[i] = '\''
		case '\'':
			p[i] = '"'
		}
	}
	return n, err
}
