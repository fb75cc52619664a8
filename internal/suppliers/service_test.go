package supplier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/enums"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

func setupSupplierTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

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
	require.NoError(t, db.Exec(suppliers).Error)
	require.NoError(t, db.Exec(transactions).Error)
	return db
}

func newSupplierService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db := setupSupplierTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestServiceCreateRequiresNama(t *testing.T) {
	svc, _ := newSupplierService(t)

	_, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "  "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateTrimsFields(t *testing.T) {
	svc, _ := newSupplierService(t)

	created, err := svc.Create(context.Background(), CreateSupplierInput{
		Nama:    " PT Sumber Makmur ",
		Alamat:  " Jl. Melati 12 ",
		Telepon: " 0812345678 ",
		Email:   " sumber@example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, "PT Sumber Makmur", created.Nama)
	assert.Equal(t, "Jl. Melati 12", created.Alamat)
	assert.Equal(t, "0812345678", created.Telepon)
	assert.Equal(t, "sumber@example.com", created.Email)
}

func TestServiceUpdatePartial(t *testing.T) {
	svc, _ := newSupplierService(t)

	created, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "Awal"})
	require.NoError(t, err)

	telepon := "0899999999"
	updated, err := svc.Update(context.Background(), created.ID, UpdateSupplierInput{Telepon: &telepon})
	require.NoError(t, err)
	assert.Equal(t, "Awal", updated.Nama)
	assert.Equal(t, "0899999999", updated.Telepon)
}

func TestServiceDeleteBlockedByTransactions(t *testing.T) {
	svc, db := newSupplierService(t)

	created, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "Terpakai"})
	require.NoError(t, err)

	txn := &models.Transaction{
		ID:         uuid.New(),
		ProdukID:   uuid.New(),
		Tipe:       enums.TransactionTypeMasuk,
		Jumlah:     5,
		SupplierID: &created.ID,
	}
	require.NoError(t, db.Create(txn).Error)

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeHasDependents, typed.Code())

	unused, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "Bebas"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), unused.ID))
}

func TestServiceSearchByNama(t *testing.T) {
	svc, _ := newSupplierService(t)

	marker := uuid.NewString()[:8]
	_, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "CV Maju " + marker})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateSupplierInput{Nama: "Lain"})
	require.NoError(t, err)

	rows, meta, err := svc.Search(context.Background(), "maju "+marker, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, "CV Maju "+marker, rows[0].Nama)

	_, _, err = svc.Search(context.Background(), "  ", pagination.Params{})
	require.Error(t, err)
}

func TestServiceGetPreloadsTransactions(t *testing.T) {
	svc, conn := newSupplierService(t)

	created, err := svc.Create(context.Background(), CreateSupplierInput{Nama: "CV Sinar Terang"})
	require.NoError(t, err)

	txn := models.Transaction{
		ID:         uuid.New(),
		ProdukID:   uuid.New(),
		Tipe:       enums.TransactionTypeMasuk,
		Jumlah:     3,
		SupplierID: &created.ID,
	}
	require.NoError(t, conn.Create(&txn).Error)

	loaded, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Transactions, 1)
	assert.Equal(t, txn.ID, loaded.Transactions[0].ID)

	marker := uuid.NewString()
	_, err = svc.Update(context.Background(), created.ID, UpdateSupplierInput{Nama: &marker})
	require.NoError(t, err)

	rows, _, err := svc.Search(context.Background(), marker, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Transactions, 1)
}
