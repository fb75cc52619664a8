package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

// Repository provides category persistence on top of GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns a page of categories with their products preloaded.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the category.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads the category with its products preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Products").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update persists the mutated category fields.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// Search returns categories whose nama contains the term, case-insensitively.
func (r *Repository) Search(ctx context.Context, term string, params pagination.Params) ([]models.Category, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("lower(nama) LIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("lower(nama) LIKE ?", pattern).
		Preload("Products").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountProducts returns the number of products referencing the category.
func (r *Repository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("kategori_id = ?", id).
		Count(&count).Error
	return count, err
}

// ListProducts loads every product in the category, for stats aggregation.
func (r *Repository) ListProducts(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("kategori_id = ?", id).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
