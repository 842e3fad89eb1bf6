package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordIndex(t *testing.T) {
	k := NewKeywordIndex()
	k.Add("BLACK HEART SUIT")
	k.Add("WHITE HEART SUIT")
	k.Add("HEAVY BLACK HEART")
	k.Add("SMILING FACE WITH HEART-SHAPED EYES")

	assert.Equal(t, 10, k.Len())

	assert.Equal(t, []Keyword{{"HEART", 4}, {"HEAVY", 1}}, k.Lookup("he", 0))
	assert.Equal(t, []string{"HEART"}, k.Complete("HE", 1))
	assert.Equal(t, []string{"SUIT", "SHAPED", "SMILING"}, k.Complete("s", 0))
	assert.Equal(t, []string{"SHAPED"}, k.Complete("shaped", 0))
	assert.Empty(t, k.Complete("x", 0))
	assert.Empty(t, k.Complete("", 0))
	assert.Empty(t, k.Complete("  ", 0))
}

func TestEngineKeywords(t *testing.T) {
	e, _ := bundledEngine(t)
	got := e.Keywords("hea", 0)
	assert.Equal(t, "HEART", got[0])
	assert.Contains(t, got, "HEAVY")
}
