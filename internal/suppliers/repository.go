package supplier

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

// Repository provides supplier persistence on top of GORM.
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

// List returns a page of suppliers.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Supplier, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Supplier
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the supplier.
func (r *Repository) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// FindByID loads the supplier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).Preload("Transactions").First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// Update persists the mutated supplier fields.
func (r *Repository) Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes the supplier row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id).Error
}

// Search returns suppliers whose nama contains the term, case-insensitively.
func (r *Repository) Search(ctx context.Context, term string, params pagination.Params) ([]models.Supplier, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("lower(nama) LIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Supplier
	err := r.db.WithContext(ctx).
		Preload("Transactions").
		Where("lower(nama) LIKE ?", pattern).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountTransactions returns the number of transactions referencing the supplier.
func (r *Repository) CountTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("supplier_id = ?", id).
		Count(&count).Error
	return count, err
}
