package category

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  nama TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  nama TEXT NOT NULL,
  merk TEXT NOT NULL DEFAULT '',
  stok INTEGER NOT NULL DEFAULT 0,
  harga NUMERIC NOT NULL DEFAULT 0,
  kategori_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newCategory(t *testing.T, db *gorm.DB, nama string) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:   uuid.New(),
		Nama: nama,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, stok int, harga string) *models.Product {
	t.Helper()

	price, err := decimal.NewFromString(harga)
	require.NoError(t, err)

	product := &models.Product{
		ID:         uuid.New(),
		Nama:       fmt.Sprintf("Produk %s", uuid.NewString()[:8]),
		Merk:       "Generik",
		Stok:       stok,
		Harga:      price,
		KategoriID: categoryID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositorySearchMatchesCaseInsensitively(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewRepository(db)

	marker := uuid.NewString()[:8]
	newCategory(t, db, "Elektronik "+marker)
	newCategory(t, db, "ELEKTRONIK lama "+marker)
	newCategory(t, db, "Pakaian "+marker)

	rows, total, err := repo.Search(context.Background(), "elektronik "+marker[:4], pagination.Params{Page: 1, Limit: 10}.Normalize())
	require.NoError(t, err)

	found := 0
	for _, row := range rows {
		if row.Nama == "Elektronik "+marker || row.Nama == "ELEKTRONIK lama "+marker {
			found++
		}
	}
	assert.GreaterOrEqual(t, total, int64(found))
	assert.GreaterOrEqual(t, found, 2)
}

func TestRepositoryCountProducts(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewRepository(db)

	withProducts := newCategory(t, db, "Dengan Produk")
	empty := newCategory(t, db, "Kosong")
	newProduct(t, db, withProducts.ID, 5, "10000")
	newProduct(t, db, withProducts.ID, 3, "25000")

	count, err := repo.CountProducts(context.Background(), withProducts.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountProducts(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepositoryListSlicesSecondPage(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewRepository(db)

	// The shared in-memory database carries rows from other tests.
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	require.NoError(t, db.Exec("DELETE FROM categories").Error)

	base := time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 12; i++ {
		category := &models.Category{
			ID:        uuid.New(),
			Nama:      fmt.Sprintf("Kategori %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(category).Error)
	}

	params := pagination.Params{Page: 2, Limit: 5}.Normalize()
	rows, total, err := repo.List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// Newest first, so page 2 holds the 6th through 10th most recent rows.
	for i, want := range []string{"Kategori 07", "Kategori 06", "Kategori 05", "Kategori 04", "Kategori 03"} {
		assert.Equal(t, want, rows[i].Nama)
	}

	meta := pagination.NewMeta(params, total)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, 3, meta.LastPage)
}

func TestRepositoryFindByIDPreloadsProducts(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, "Perkakas")
	newProduct(t, db, category.ID, 7, "15000")

	loaded, err := repo.FindByID(context.Background(), category.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, 7, loaded.Products[0].Stok)
}
