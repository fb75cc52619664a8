package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
)

// Repository provides the read-only aggregates behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountProducts returns the total number of products.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// CountCategories returns the total number of categories.
func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

// CountTransactionsSince counts transactions created at or after the cutoff.
func (r *Repository) CountTransactionsSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("created_at >= ?", cutoff).
		Count(&count).Error
	return count, err
}

// ListLowStock returns products whose stok is below the threshold.
func (r *Repository) ListLowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("stok < ?", threshold).
		Order("stok ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecentTransactions returns the newest transactions with product preloaded.
func (r *Repository) ListRecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryProductCount pairs a category with its product tally.
type CategoryProductCount struct {
	KategoriID   uuid.UUID `gorm:"column:kategori_id" json:"kategori_id"`
	Nama         string    `gorm:"column:nama" json:"nama"`
	ProductCount int64     `gorm:"column:product_count" json:"productCount"`
}

// ProductsByCategory tallies products per category, including empty categories.
func (r *Repository) ProductsByCategory(ctx context.Context) ([]CategoryProductCount, error) {
	var rows []CategoryProductCount
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Select("categories.id AS kategori_id, categories.nama AS nama, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.kategori_id = categories.id").
		Group("categories.id, categories.nama").
		Order("categories.nama ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
