package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/enums"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

// Repository provides transaction persistence on top of GORM.
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

// List returns a page of transactions, optionally filtered by tipe, with
// product and supplier preloaded.
func (r *Repository) List(ctx context.Context, params pagination.Params, tipe *enums.TransactionType) ([]models.Transaction, int64, error) {
	countQ := r.db.WithContext(ctx).Model(&models.Transaction{})
	fetchQ := r.db.WithContext(ctx)
	if tipe != nil {
		countQ = countQ.Where("tipe = ?", *tipe)
		fetchQ = fetchQ.Where("tipe = ?", *tipe)
	}

	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Transaction
	err := fetchQ.
		Preload("Product").
		Preload("Supplier").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the transaction.
func (r *Repository) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// FindByID loads the transaction with product and supplier preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Supplier").
		First(&txn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update persists the mutated transaction fields.
func (r *Repository) Update(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// Delete removes the transaction row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error
}

// FindProductForUpdate loads the product row, holding a FOR UPDATE lock on
// dialects that support it. SQLite serializes writes on its own.
func (r *Repository) FindProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	if err := q.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductStock overwrites the product's stok.
func (r *Repository) UpdateProductStock(ctx context.Context, productID uuid.UUID, stok int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stok", stok).Error
}

// Search returns transactions whose product nama or catatan contains the term.
func (r *Repository) Search(ctx context.Context, term string, params pagination.Params) ([]models.Transaction, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("JOIN products ON products.id = transactions.produk_id").
		Where("lower(products.nama) LIKE ? OR lower(transactions.catatan) LIKE ?", pattern, pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Transaction
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.*").
		Joins("JOIN products ON products.id = transactions.produk_id").
		Where("lower(products.nama) LIKE ? OR lower(transactions.catatan) LIKE ?", pattern, pattern).
		Preload("Product").
		Preload("Supplier").
		Order("transactions.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByProduct returns the product's transactions, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Supplier").
		Where("produk_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBetween returns transactions inside the inclusive created_at window.
// Nil bounds are open-ended.
func (r *Repository) ListBetween(ctx context.Context, from, to *time.Time) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var rows []models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
