package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	db := setupCategoryTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateRequiresNama(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreateTrimsNama(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "  Elektronik  "})
	require.NoError(t, err)
	assert.Equal(t, "Elektronik", created.Nama)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestServiceGetUnknownReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceUpdatePartial(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "Lama"})
	require.NoError(t, err)

	nama := "Baru"
	updated, err := svc.Update(context.Background(), created.ID, UpdateCategoryInput{Nama: &nama})
	require.NoError(t, err)
	assert.Equal(t, "Baru", updated.Nama)

	// nil nama leaves the row untouched
	untouched, err := svc.Update(context.Background(), created.ID, UpdateCategoryInput{})
	require.NoError(t, err)
	assert.Equal(t, "Baru", untouched.Nama)
}

func TestServiceDeleteBlockedByProducts(t *testing.T) {
	svc, _ := newTestService(t)
	db := setupCategoryTestDB(t)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "Dengan Isi"})
	require.NoError(t, err)
	newProduct(t, db, created.ID, 1, "5000")

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeHasDependents, typed.Code())

	empty, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "Bisa Hapus"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), empty.ID))

	_, err = svc.Get(context.Background(), empty.ID)
	require.Error(t, err)
}

func TestServiceStatsAveragesPrices(t *testing.T) {
	svc, _ := newTestService(t)
	db := setupCategoryTestDB(t)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "Statistik"})
	require.NoError(t, err)
	newProduct(t, db, created.ID, 4, "10000")
	newProduct(t, db, created.ID, 6, "15000.50")

	stats, err := svc.Stats(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 10, stats.TotalStock)
	assert.Equal(t, "12500.25", stats.AveragePrice.StringFixed(2))
}

func TestServiceStatsEmptyCategory(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Nama: "Hampa"})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalProducts)
	assert.Equal(t, 0, stats.TotalStock)
	assert.True(t, stats.AveragePrice.IsZero())
}
