// store_test.go provides shared infrastructure for store tests that need
// a real database. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"catalog-service/internal/model"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations, and
// wipes the catalog tables so each test starts clean.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "catalog_service_test"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("skipping: cannot get DB handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	err = db.AutoMigrate(
		&model.Category{},
		&model.SubCategory{},
		&model.Product{},
		&model.User{},
		&model.Favorite{},
	)
	require.NoError(t, err)

	for _, table := range []string{"favorites", "products", "sub_categories", "categories", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestCategoryNameUniquenessCaseInsensitive(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)

	_, err := categories.Create("Shoes")
	require.NoError(t, err)

	_, err = categories.Create("SHOES")
	require.ErrorIs(t, err, ErrConflict)

	_, err = categories.Create("  shoes  ")
	require.ErrorIs(t, err, ErrConflict)
}

func TestCategoryUpdateKeepsOwnName(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)

	category, err := categories.Create("Shoes")
	require.NoError(t, err)

	// A record may keep its own name on update, including a casing-only
	// rename.
	name := "shoes"
	_, err = categories.Update(category.ID, &name, nil)
	require.NoError(t, err)

	updated, err := categories.GetLive(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shoes", updated.Name)
}

func TestCategorySoftDeleteHidesEverywhere(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)

	category, err := categories.Create("Shoes")
	require.NoError(t, err)
	require.NoError(t, categories.Delete(category.ID))

	// Invisible to get-by-id.
	_, err = categories.GetLive(category.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Invisible to lists.
	items, total, err := categories.List(NewPageParams("", "", ""))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	// The name is free again.
	taken, err := categories.NameTaken("shoes", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)

	category, err := categories.Create("Shoes")
	require.NoError(t, err)

	require.NoError(t, categories.Delete(category.ID))
	// "Already deleted" and "never existed" collapse to the same error.
	assert.ErrorIs(t, categories.Delete(category.ID), ErrNotFound)
	assert.ErrorIs(t, categories.Delete(999999), ErrNotFound)
}

func TestSubCategoryRequiresLiveParent(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)

	_, err := subs.Create("Phones", 999999)
	assert.ErrorIs(t, err, ErrNotFound)

	category, err := categories.Create("Electronics")
	require.NoError(t, err)
	require.NoError(t, categories.Delete(category.ID))

	_, err = subs.Create("Phones", category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubCategoryNameUniqueWithinParent(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	fashion, err := categories.Create("Fashion")
	require.NoError(t, err)

	_, err = subs.Create("Accessories", electronics.ID)
	require.NoError(t, err)

	// Same name under the same parent conflicts, case-insensitively.
	_, err = subs.Create("ACCESSORIES", electronics.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Same name under a different parent is fine.
	_, err = subs.Create("Accessories", fashion.ID)
	assert.NoError(t, err)
}

func TestSubCategoryMoveParentRevalidated(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	sub, err := subs.Create("Phones", electronics.ID)
	require.NoError(t, err)

	gone, err := categories.Create("Seasonal")
	require.NoError(t, err)
	require.NoError(t, categories.Delete(gone.ID))

	_, err = subs.Update(sub.ID, nil, &gone.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubCategoryMoveCollidesInNewScope(t *testing.T) {
	db := testDB(t)
	categories := NewCategoryStore(db)
	subs := NewSubCategoryStore(db)

	electronics, err := categories.Create("Electronics")
	require.NoError(t, err)
	fashion, err := categories.Create("Fashion")
	require.NoError(t, err)

	_, err = subs.Create("Accessories", electronics.ID)
	require.NoError(t, err)
	moved, err := subs.Create("Accessories", fashion.ID)
	require.NoError(t, err)

	// Moving without renaming into a parent that already holds the name
	// conflicts just like a rename would.
	_, err = subs.Update(moved.ID, nil, &electronics.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)
}
