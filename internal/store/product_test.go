package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductTwoHopReferentialCheck(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	fashion, err := categories.Create("Fashion")
	require.NoError(t, err)

	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)

	// Both ids exist and are live, but the subcategory belongs to a
	// different category than the product declares.
	_, err = products.Create(ProductInput{
		Name:          "Pixel",
		CategoryID:    fashion.ID,
		SubCategoryID: phones.ID,
		Price:         500,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// The matching pair succeeds.
	product, err := products.Create(ProductInput{
		Name:          "Pixel",
		CategoryID:    electronics.ID,
		SubCategoryID: phones.ID,
		Price:         500,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
}

func TestProductNameUniqueWithinPair(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)
	tablets, err := subs.Create("Tablets", electronics.ID)
	require.NoError(t, err)

	_, err = products.Create(ProductInput{
		Name: "Pixel", CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 500,
	})
	require.NoError(t, err)

	_, err = products.Create(ProductInput{
		Name: "PIXEL", CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 600,
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Same name under a different subcategory is a different scope.
	_, err = products.Create(ProductInput{
		Name: "Pixel", CategoryID: electronics.ID, SubCategoryID: tablets.ID, Price: 700,
	})
	assert.NoError(t, err)
}

func TestProductUpdateRevalidatesChainOnCategoryChange(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	fashion, err := categories.Create("Fashion")
	require.NoError(t, err)
	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)

	product, err := products.Create(ProductInput{
		Name: "Pixel", CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 500,
	})
	require.NoError(t, err)

	// Changing only the category must re-validate the current
	// subcategory against the new parent.
	_, err = products.Update(product.ID, ProductUpdate{CategoryID: &fashion.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletedCategoryBlocksNewProducts(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)
	_, err = products.Create(ProductInput{
		Name: "Pixel", CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 500,
	})
	require.NoError(t, err)

	require.NoError(t, categories.Delete(electronics.ID))

	// The subcategory is orphaned but still reports as live.
	sub, err := subs.GetLive(phones.ID)
	require.NoError(t, err)
	assert.True(t, sub.IsLive())

	// New products under the deleted category fail the parent check.
	_, err = products.Create(ProductInput{
		Name: "Pixel 2", CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 600,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListPagination(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		_, err := products.Create(ProductInput{
			Name:          fmt.Sprintf("Phone %02d", i),
			CategoryID:    electronics.ID,
			SubCategoryID: phones.ID,
			Price:         100 + float64(i),
		})
		require.NoError(t, err)
	}

	p := NewPageParams("3", "10", "")
	items, total, err := products.List(p)
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 5)
	assert.Equal(t, 3, p.TotalPages(total))
}

func TestProductListSearchSubstring(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)
	products := NewProductStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	phones, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)

	for _, name := range []string{"Pixel 9", "Galaxy S25", "Pixel Fold"} {
		_, err := products.Create(ProductInput{
			Name: name, CategoryID: electronics.ID, SubCategoryID: phones.ID, Price: 500,
		})
		require.NoError(t, err)
	}

	items, total, err := products.List(NewPageParams("", "", "pixel"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
