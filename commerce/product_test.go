package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProduct_OnSale(t *testing.T) {
	regular := Product{Price: dec("100")}
	assert.False(t, regular.OnSale())

	sale := Product{Price: dec("80"), CompareAtPrice: decPtr("100")}
	assert.True(t, sale.OnSale())

	// A compare-at equal to the price is not a sale.
	equal := Product{Price: dec("100"), CompareAtPrice: decPtr("100")}
	assert.False(t, equal.OnSale())
}

func TestBuildCategoryTree(t *testing.T) {
	categories := []Category{
		{ID: "rings", Name: "Rings", Position: 2},
		{ID: "necklaces", Name: "Necklaces", Position: 1},
		{ID: "gold-rings", Name: "Gold Rings", ParentID: strPtr("rings"), Position: 1},
		{ID: "silver-rings", Name: "Silver Rings", ParentID: strPtr("rings"), Position: 2},
		{ID: "chokers", Name: "Chokers", ParentID: strPtr("necklaces")},
		{ID: "orphan", Name: "Orphan", ParentID: strPtr("gone")},
	}

	tree := BuildCategoryTree(categories)
	require.Len(t, tree, 3)

	// Roots ordered by position, then name; the orphan (missing parent)
	// is promoted to a root.
	assert.Equal(t, "orphan", tree[0].ID)
	assert.Equal(t, "necklaces", tree[1].ID)
	assert.Equal(t, "rings", tree[2].ID)

	rings := tree[2]
	require.Len(t, rings.Children, 2)
	assert.Equal(t, "gold-rings", rings.Children[0].ID)
	assert.Equal(t, "silver-rings", rings.Children[1].ID)
	assert.Equal(t, 0, rings.Level)
	assert.Equal(t, 1, rings.Children[0].Level)

	necklaces := tree[1]
	require.Len(t, necklaces.Children, 1)
	assert.Equal(t, "chokers", necklaces.Children[0].ID)
	assert.Nil(t, necklaces.Children[0].Children)
}

func TestBuildCategoryTree_Empty(t *testing.T) {
	assert.Nil(t, BuildCategoryTree(nil))
	assert.Nil(t, BuildCategoryTree([]Category{}))
}
