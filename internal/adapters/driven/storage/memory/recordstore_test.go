package memory

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

func TestRecordStore_ReadAndCount(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	store.PutString("document_parses/pdf_json/a1.json", `{"paper_id":"a1"}`)

	data, err := store.Read(ctx, "document_parses/pdf_json/a1.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"paper_id":"a1"}`, string(data))

	_, _ = store.Read(ctx, "document_parses/pdf_json/a1.json")
	assert.Equal(t, 2, store.Reads("document_parses/pdf_json/a1.json"))
}

func TestRecordStore_Read_NotFound(t *testing.T) {
	store := NewRecordStore()

	_, err := store.Read(context.Background(), "missing.json")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestRecordStore_Read_ReturnsCopy(t *testing.T) {
	store := NewRecordStore()
	store.PutString("a.json", "{}")

	data, err := store.Read(context.Background(), "a.json")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := store.Read(context.Background(), "a.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(again))
}

func TestRecordStore_List(t *testing.T) {
	store := NewRecordStore()
	store.PutString("document_parses/pmc_json/PMC2.xml.json", "{}")
	store.PutString("document_parses/pmc_json/PMC1.xml.json", "{}")
	store.PutString("document_parses/pdf_json/a1.json", "{}")

	ids, err := store.List(context.Background(), "document_parses/pmc_json/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"document_parses/pmc_json/PMC1.xml.json",
		"document_parses/pmc_json/PMC2.xml.json",
	}, ids)

	ids, err = store.List(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCatalogSource_Open(t *testing.T) {
	src := NewCatalogSource("cord_uid,pdf_json_files,pmc_json_files\n")

	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "cord_uid,pdf_json_files,pmc_json_files\n", string(data))
	assert.Equal(t, ":memory:", src.Location())
}
