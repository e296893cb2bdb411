package csv

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// SniffSize is the number of leading bytes inspected to detect the dialect.
const SniffSize = 64 * 1024

// MaxSniffSize bounds how far the sample grows when the first record does
// not fit in the sniff window.
const MaxSniffSize = 16 * 1024 * 1024

// errShortSample reports a partial sample that holds no complete record.
var errShortSample = errors.New("no complete record in sample")

// Delimiters are the candidate field separators, in preference order.
var Delimiters = []byte{',', '\t', ';', '|'}

// Quotes are the candidate quote characters, in preference order.
var Quotes = []byte{'"', '\''}

// Dialect describes how a catalog is delimited and quoted.
type Dialect struct {
	Delimiter byte
	Quote     byte
}

// String returns a readable form such as `delimiter=',' quote='"'`.
func (d Dialect) String() string {
	return fmt.Sprintf("delimiter=%q quote=%q", d.Delimiter, d.Quote)
}

// Sniff detects the dialect from a sample of the catalog. complete reports
// whether the sample is the whole input; otherwise its last, possibly
// truncated, record is ignored.
//
// A delimiter qualifies when every record in the sample splits into the
// same number of fields, at least two. Among qualifying delimiters the one
// producing the most fields wins; a tie is ambiguous.
func Sniff(sample []byte, complete bool) (Dialect, error) {
	if len(sample) == 0 {
		return Dialect{}, fmt.Errorf("%w: empty catalog", domain.ErrCatalogFormat)
	}

	sawRecord := false
	for _, quote := range Quotes {
		var (
			best      Dialect
			bestCount int
			tie       bool
		)
		for _, delim := range Delimiters {
			n, ok := consistentFields(sample, delim, quote, complete)
			if n != -1 {
				sawRecord = true
			}
			if !ok || n < 2 {
				continue
			}
			switch {
			case n > bestCount:
				best, bestCount, tie = Dialect{Delimiter: delim, Quote: quote}, n, false
			case n == bestCount:
				tie = true
			}
		}
		if tie {
			return Dialect{}, fmt.Errorf("%w: ambiguous delimiter, several candidates give %d fields",
				domain.ErrCatalogFormat, bestCount)
		}
		if bestCount > 0 {
			return best, nil
		}
	}
	if !complete && !sawRecord {
		return Dialect{}, fmt.Errorf("%w: %w: header exceeds the first %d bytes",
			domain.ErrCatalogFormat, errShortSample, len(sample))
	}
	return Dialect{}, fmt.Errorf("%w: could not determine delimiter", domain.ErrCatalogFormat)
}

// consistentFields counts the fields of each record in sample and reports
// the shared count, or -1 when no record ends inside the sample. Quoted fields may span lines and contain delimiters;
// a doubled quote inside a quoted field is an escaped quote.
func consistentFields(sample []byte, delim, quote byte, complete bool) (int, bool) {
	var (
		count    = -1
		fields   = 1
		inQuotes bool
		atStart  = true
		empty    = true
	)
	finish := func() bool {
		if empty {
			return true
		}
		if count == -1 {
			count = fields
		}
		return count == fields
	}

	for i := 0; i < len(sample); i++ {
		c := sample[i]
		if inQuotes {
			if c == quote {
				if i+1 < len(sample) && sample[i+1] == quote {
					i++
					continue
				}
				inQuotes = false
			}
			continue
		}
		switch c {
		case quote:
			if !atStart {
				return count, false
			}
			inQuotes = true
			atStart = false
			empty = false
		case delim:
			fields++
			atStart = true
			empty = false
		case '\r':
		case '\n':
			if !finish() {
				return 0, false
			}
			fields, atStart, empty = 1, true, true
		default:
			atStart = false
			empty = false
		}
	}

	if complete && !inQuotes && !finish() {
		return 0, false
	}
	if complete && inQuotes {
		return 0, false
	}
	return count, count > 0
}
