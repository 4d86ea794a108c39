package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchIndex() []SearchItem {
	return []SearchItem{
		{Type: SearchTypeShop, ID: "s1", Name: "TechTrend Mobile Store", Category: "Electronics & Gadgets"},
		{Type: SearchTypeShop, ID: "s2", Name: "Beauty Haven", Category: "Beauty & Wellness"},
		{Type: SearchTypeProduct, ID: "p1", Name: "Wireless Earbuds", Category: "Electronics & Gadgets", Shop: "TechTrend Mobile Store"},
		{Type: SearchTypeOffer, ID: "o1", Name: "Latest Smartphone - 15% Off", Shop: "TechTrend Mobile Store"},
	}
}

func TestGlobalSearchEmptyQueryYieldsEmptyResult(t *testing.T) {
	// An empty query means the panel is closed, not "show everything".
	assert.Empty(t, GlobalSearch(searchIndex(), ""))
	assert.Empty(t, GlobalSearch(searchIndex(), "   "))
}

func TestGlobalSearchMatchesAcrossTypesInInsertionOrder(t *testing.T) {
	got := GlobalSearch(searchIndex(), "techtrend")

	require.Len(t, got, 3)
	assert.Equal(t, SearchTypeShop, got[0].Type)
	assert.Equal(t, SearchTypeProduct, got[1].Type)
	assert.Equal(t, SearchTypeOffer, got[2].Type)
}

func TestGlobalSearchMatchesCategoryField(t *testing.T) {
	got := GlobalSearch(searchIndex(), "wellness")

	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)
}

func TestGlobalSearchKeepsTypeDiscriminant(t *testing.T) {
	got := GlobalSearch(searchIndex(), "smartphone")

	require.Len(t, got, 1)
	assert.Equal(t, SearchTypeOffer, got[0].Type)
	assert.Equal(t, "o1", got[0].ID)
}
