package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	supplierrepo "github.com/Areandra/Kelvin/internal/suppliers"
	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/db"
	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/enums"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

func setupTransactionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
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
	suppliers := `
CREATE TABLE IF NOT EXISTS suppliers (
  id TEXT PRIMARY KEY,
  nama TEXT NOT NULL,
  alamat TEXT NOT NULL DEFAULT '',
  telepon TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	transactions := `
CREATE TABLE IF NOT EXISTS transactions (
  id TEXT PRIMARY KEY,
  produk_id TEXT NOT NULL,
  tipe TEXT NOT NULL,
  jumlah INTEGER NOT NULL,
  catatan TEXT,
  supplier_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(categories).Error)
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(suppliers).Error)
	require.NoError(t, conn.Exec(transactions).Error)
	return conn
}

func newTransactionService(t *testing.T, stockCfg config.StockConfig) (Service, *gorm.DB) {
	t.Helper()

	conn := setupTransactionTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), supplierrepo.NewRepository(conn), stockCfg)
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, stok int) *models.Product {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Nama: "Kategori"}
	require.NoError(t, conn.Create(category).Error)

	product := &models.Product{
		ID:         uuid.New(),
		Nama:       "Produk " + uuid.NewString()[:8],
		Stok:       stok,
		Harga:      decimal.NewFromInt(10000),
		KategoriID: category.ID,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func currentStock(t *testing.T, conn *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var product models.Product
	require.NoError(t, conn.First(&product, "id = ?", productID).Error)
	return product.Stok
}

func TestServiceCreateMasukIncreasesStock(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 10)

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "masuk",
		Jumlah:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionTypeMasuk, created.Tipe)
	require.NotNil(t, created.Product)
	assert.Equal(t, 15, currentStock(t, conn, product.ID))
}

func TestServiceCreateKeluarDecreasesStock(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 10)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "keluar",
		Jumlah:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, currentStock(t, conn, product.ID))
}

func TestServiceCreateKeluarInsufficientStock(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 3)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "keluar",
		Jumlah:   4,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, 3, currentStock(t, conn, product.ID), "failed movement must not touch stok")
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 10)

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "pinjam",
		Jumlah:   1,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidTransactionType, typed.Code())

	_, err = svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "masuk",
		Jumlah:   0,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: uuid.New(),
		Tipe:     "masuk",
		Jumlah:   1,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceCreateUnknownSupplier(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 10)
	missing := uuid.New()

	_, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID:   product.ID,
		Tipe:       "masuk",
		Jumlah:     1,
		SupplierID: &missing,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpdateDefaultChecksCurrentStockOnly(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{UpdateRebase: false})
	product := seedProduct(t, conn, 10)

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "keluar",
		Jumlah:   2,
	})
	require.NoError(t, err)
	require.Equal(t, 8, currentStock(t, conn, product.ID))

	// fields change but stok stays, replicating the historical behavior
	jumlah := 5
	updated, err := svc.Update(context.Background(), created.ID, UpdateTransactionInput{Jumlah: &jumlah})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Jumlah)
	assert.Equal(t, 8, currentStock(t, conn, product.ID))

	tooMany := 50
	_, err = svc.Update(context.Background(), created.ID, UpdateTransactionInput{Jumlah: &tooMany})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
}

func TestServiceUpdateRebaseReappliesEffect(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{UpdateRebase: true})
	product := seedProduct(t, conn, 10)

	created, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "keluar",
		Jumlah:   2,
	})
	require.NoError(t, err)
	require.Equal(t, 8, currentStock(t, conn, product.ID))

	// keluar 2 -> keluar 6: net change is -4 on top of the reverted stock
	jumlah := 6
	_, err = svc.Update(context.Background(), created.ID, UpdateTransactionInput{Jumlah: &jumlah})
	require.NoError(t, err)
	assert.Equal(t, 4, currentStock(t, conn, product.ID))

	// keluar 6 -> masuk 3: reverting +6, applying +3
	tipe := "masuk"
	jumlah = 3
	_, err = svc.Update(context.Background(), created.ID, UpdateTransactionInput{Tipe: &tipe, Jumlah: &jumlah})
	require.NoError(t, err)
	assert.Equal(t, 13, currentStock(t, conn, product.ID))

	// an update that would drive stok negative is rejected
	tipe = "keluar"
	jumlah = 50
	_, err = svc.Update(context.Background(), created.ID, UpdateTransactionInput{Tipe: &tipe, Jumlah: &jumlah})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, 13, currentStock(t, conn, product.ID))
}

func TestServiceDeleteReversesEffect(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 10)

	masuk, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "masuk",
		Jumlah:   5,
	})
	require.NoError(t, err)
	require.Equal(t, 15, currentStock(t, conn, product.ID))

	require.NoError(t, svc.Delete(context.Background(), masuk.ID))
	assert.Equal(t, 10, currentStock(t, conn, product.ID))

	keluar, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "keluar",
		Jumlah:   3,
	})
	require.NoError(t, err)
	require.Equal(t, 7, currentStock(t, conn, product.ID))

	require.NoError(t, svc.Delete(context.Background(), keluar.ID))
	assert.Equal(t, 10, currentStock(t, conn, product.ID))

	err = svc.Delete(context.Background(), keluar.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteReversalMayDriveStockNegative(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 2)

	masuk, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "masuk",
		Jumlah:   8,
	})
	require.NoError(t, err)
	require.Equal(t, 10, currentStock(t, conn, product.ID))

	// An explicit stok edit between the movement and its deletion leaves
	// less on hand than the reversal removes.
	require.NoError(t, conn.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("stok", 3).Error)

	require.NoError(t, svc.Delete(context.Background(), masuk.ID))
	assert.Equal(t, -5, currentStock(t, conn, product.ID))
}

func TestServiceListFiltersByTipe(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	product := seedProduct(t, conn, 100)

	for _, tipe := range []string{"masuk", "keluar", "masuk"} {
		_, err := svc.Create(context.Background(), CreateTransactionInput{
			ProdukID: product.ID,
			Tipe:     tipe,
			Jumlah:   1,
		})
		require.NoError(t, err)
	}

	tipe := "keluar"
	rows, _, err := svc.List(context.Background(), pagination.Params{Page: 1, Limit: 100}, &tipe)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, enums.TransactionTypeKeluar, row.Tipe)
	}

	bad := "rusak"
	_, _, err = svc.List(context.Background(), pagination.Params{}, &bad)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInvalidTransactionType, typed.Code())
}

func TestServiceStatsWindow(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	require.NoError(t, conn.Exec("DELETE FROM transactions").Error)
	product := seedProduct(t, conn, 100)

	_, err := svc.Create(context.Background(), CreateTransactionInput{ProdukID: product.ID, Tipe: "masuk", Jumlah: 10})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateTransactionInput{ProdukID: product.ID, Tipe: "keluar", Jumlah: 4})
	require.NoError(t, err)

	// an old row outside the window
	old := &models.Transaction{
		ID:        uuid.New(),
		ProdukID:  product.ID,
		Tipe:      enums.TransactionTypeMasuk,
		Jumlah:    99,
		CreatedAt: time.Now().AddDate(0, 0, -30),
		UpdatedAt: time.Now().AddDate(0, 0, -30),
	}
	require.NoError(t, conn.Create(old).Error)

	from := time.Now().Add(-time.Hour)
	stats, err := svc.Stats(context.Background(), &from, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTransactions)
	assert.Equal(t, 1, stats.MasukCount)
	assert.Equal(t, 1, stats.KeluarCount)
	assert.Equal(t, 10, stats.TotalMasuk)
	assert.Equal(t, 4, stats.TotalKeluar)
	assert.Equal(t, 6, stats.NetChange)
}

func TestRepositorySearchMatchesProductNamaAndCatatan(t *testing.T) {
	svc, conn := newTransactionService(t, config.StockConfig{})
	repo := NewRepository(conn)
	product := seedProduct(t, conn, 100)

	marker := uuid.NewString()[:8]
	catatan := "restock " + marker
	_, err := svc.Create(context.Background(), CreateTransactionInput{
		ProdukID: product.ID,
		Tipe:     "masuk",
		Jumlah:   1,
		Catatan:  &catatan,
	})
	require.NoError(t, err)

	rows, total, err := repo.Search(context.Background(), marker, pagination.Params{Page: 1, Limit: 10}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Product)
}
