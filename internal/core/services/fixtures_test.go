package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/catalog/csv"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/tokenizer"
	"github.com/custodia-labs/paperstream/internal/core/domain"
)

const testCatalog = "cord_uid,title,pdf_json_files,pmc_json_files\n" +
	"u1,Alpha,a1.json; a2.json,\n" +
	"u2,Gamma,,b1.json\n" +
	"u3,Both,a3.json,b3.json\n" +
	"u4,Nothing,,\n" +
	"u5,Broken,bad.json,\n"

var testRecords = map[string]string{
	"a1.json": `{
		"paper_id": "a1",
		"metadata": {"title": "Alpha"},
		"abstract": [{"text": "Viruses replicate. They need hosts."}],
		"body_text": [{"text": "Body one.", "section": "Intro"}, {"text": "Body two! Yes."}],
		"bib_entries": {"BIBREF0": {"title": "A reference"}}
	}`,
	"a2.json": `{
		"paper_id": "a2",
		"metadata": {"title": "Beta"},
		"body_text": [{"text": "Second fragment."}]
	}`,
	"b1.json": `{
		"paper_id": "b1",
		"metadata": {"title": "Gamma"},
		"abstract": [],
		"body_text": [{"text": "PMC text."}],
		"bib_entries": {}
	}`,
	"b3.json": `{
		"paper_id": "b3",
		"metadata": {"title": "Both B"},
		"body_text": [{"text": "Kind B body."}]
	}`,
	"bad.json": `{"paper_id": `,
}

func newRecordStore() *memory.RecordStore {
	store := memory.NewRecordStore()
	for id, data := range testRecords {
		store.PutString(id, data)
	}
	return store
}

func testOptions(t *testing.T) CorpusOptions {
	t.Helper()
	opts := DefaultCorpusOptions()
	opts.WordTokenizer = tokenizer.NewWordPunct()
	opts.SentenceTokenizer = tokenizer.NewUAX29Sentences()
	opts.ParseDirs = nil
	return opts
}

func newTestCorpus(t *testing.T, opts CorpusOptions) (*CorpusService, *memory.RecordStore) {
	t.Helper()
	records := newRecordStore()
	corpus, err := NewCorpusService(
		context.Background(),
		memory.NewCatalogSource(testCatalog),
		csv.NewLoader(),
		records,
		opts,
	)
	require.NoError(t, err)
	return corpus, records
}

// catalogOf builds a catalog from (uid, kindA, kindB) triples.
func catalogOf(t *testing.T, rows ...[3]string) *domain.Catalog {
	t.Helper()
	b, err := domain.NewCatalogBuilder(
		[]string{domain.DefaultIDColumn, domain.DefaultKindAColumn, domain.DefaultKindBColumn},
		domain.DefaultColumns(),
	)
	require.NoError(t, err)
	for i, r := range rows {
		require.NoError(t, b.Add(domain.CatalogRow{
			DocUID: r[0],
			KindA:  r[1],
			KindB:  r[2],
			Fields: map[string]string{
				domain.DefaultIDColumn:    r[0],
				domain.DefaultKindAColumn: r[1],
				domain.DefaultKindBColumn: r[2],
			},
			Line: i + 1,
		}))
	}
	return b.Freeze()
}
