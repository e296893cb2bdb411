package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContentFlags(t *testing.T) {
	f := DefaultContentFlags()
	assert.True(t, f.IncludeTitle)
	assert.True(t, f.IncludeAbstract)
	assert.True(t, f.IncludeBody)
}

func TestRecord_AbsentVersusEmpty(t *testing.T) {
	var absent Record
	require.NoError(t, json.Unmarshal([]byte(`{"metadata":{}}`), &absent))
	assert.Nil(t, absent.BodyText)
	assert.Nil(t, absent.Abstract)
	require.NotNil(t, absent.Metadata)
	assert.Nil(t, absent.Metadata.Title)

	var empty Record
	require.NoError(t, json.Unmarshal([]byte(`{"metadata":{"title":""},"body_text":[],"abstract":[]}`), &empty))
	assert.NotNil(t, empty.BodyText)
	assert.Empty(t, empty.BodyText)
	require.NotNil(t, empty.Metadata.Title)
	assert.Equal(t, "", *empty.Metadata.Title)
}

func TestDecodedDocument_Sections(t *testing.T) {
	doc := &DecodedDocument{
		Title:    "A Title",
		HasTitle: true,
		Abstract: []string{"Abstract one."},
		Body:     []string{"Body one.", "Body two."},
	}

	assert.Equal(t, []string{"A Title", "Abstract one.", "Body one.", "Body two."}, doc.Sections())
	assert.Equal(t, "A Title\nAbstract one.\nBody one.\nBody two.\n", doc.Text())
}

func TestDecodedDocument_NoTitle(t *testing.T) {
	doc := &DecodedDocument{Body: []string{"Only body."}}
	assert.Equal(t, []string{"Only body."}, doc.Sections())
	assert.Equal(t, "Only body.\n", doc.Text())
}

func TestDecodedDocument_Empty(t *testing.T) {
	doc := &DecodedDocument{}
	assert.Empty(t, doc.Sections())
	assert.Equal(t, "", doc.Text())
}
