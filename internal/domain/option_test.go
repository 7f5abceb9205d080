package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionCanonicalSortsAndDedupes(t *testing.T) {
	sel := Selection{
		"ingredients": {"tocino", "queso", "tocino"},
		"sauces":      {},
		"size":        {"jumbo"},
	}
	got := sel.Canonical()
	assert.Equal(t, Selection{
		"ingredients": {"queso", "tocino"},
		"size":        {"jumbo"},
	}, got)
}

func TestSelectionEqualIgnoresOrder(t *testing.T) {
	a := Selection{"ingredients": {"queso", "tocino"}, "size": {"jumbo"}}
	b := Selection{"size": {"jumbo"}, "ingredients": {"tocino", "queso"}}
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestSelectionEqualDetectsDifference(t *testing.T) {
	a := Selection{"ingredients": {"tocino"}}
	b := Selection{"ingredients": {"queso"}}
	assert.False(t, a.Equal(b))

	var empty Selection
	assert.True(t, empty.Equal(Selection{"sauces": {}}))
	assert.False(t, empty.Equal(a))
}
