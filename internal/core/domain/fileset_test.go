package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCanonicalFileSet_SortsAndDedupes(t *testing.T) {
	input := []string{"c.json", "a.json", "b.json", "a.json"}
	s := NewCanonicalFileSet(input)

	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, s.IDs())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "b.json", s.At(1))
	assert.Equal(t, []string{"c.json", "a.json", "b.json", "a.json"}, input, "input must not be modified")
}

func TestCanonicalFileSet_Contains(t *testing.T) {
	s := NewCanonicalFileSet([]string{"pmc/x.json", "pdf/y.json"})

	assert.True(t, s.Contains("pmc/x.json"))
	assert.True(t, s.Contains("pdf/y.json"))
	assert.False(t, s.Contains("pdf/z.json"))
	assert.False(t, CanonicalFileSet{}.Contains("anything"))
}

func TestCanonicalFileSet_IDsIsCopy(t *testing.T) {
	s := NewCanonicalFileSet([]string{"a", "b"})
	ids := s.IDs()
	ids[0] = "z"
	assert.Equal(t, "a", s.At(0))
}

func TestCanonicalFileSet_All(t *testing.T) {
	s := NewCanonicalFileSet([]string{"b", "a"})
	var got []string
	for id := range s.All() {
		got = append(got, id)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}
