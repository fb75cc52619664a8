package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/db"
	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/enums"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

// Service exposes stock transaction operations.
type Service interface {
	List(ctx context.Context, params pagination.Params, tipe *string) ([]models.Transaction, pagination.Meta, error)
	Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string, params pagination.Params) ([]models.Transaction, pagination.Meta, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Transaction, error)
	Stats(ctx context.Context, from, to *time.Time) (*TransactionStats, error)
}

// CreateTransactionInput holds the validated payload to record a stock movement.
type CreateTransactionInput struct {
	ProdukID   uuid.UUID
	Tipe       string
	Jumlah     int
	Catatan    *string
	SupplierID *uuid.UUID
}

// UpdateTransactionInput holds optional mutation values for a transaction.
type UpdateTransactionInput struct {
	Tipe       *string
	Jumlah     *int
	Catatan    *string
	SupplierID *uuid.UUID
}

// TransactionStats aggregates stock movement figures over a window.
type TransactionStats struct {
	TotalTransactions int `json:"totalTransactions"`
	MasukCount        int `json:"masukCount"`
	KeluarCount       int `json:"keluarCount"`
	TotalMasuk        int `json:"totalMasuk"`
	TotalKeluar       int `json:"totalKeluar"`
	NetChange         int `json:"netChange"`
}

type supplierReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	suppliers supplierReader
	stockCfg  config.StockConfig
}

// NewService constructs a transaction service instance.
func NewService(repo *Repository, dbClient *db.Client, suppliers supplierReader, stockCfg config.StockConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if suppliers == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		suppliers: suppliers,
		stockCfg:  stockCfg,
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, tipe *string) ([]models.Transaction, pagination.Meta, error) {
	var filter *enums.TransactionType
	if tipe != nil && strings.TrimSpace(*tipe) != "" {
		parsed, err := enums.ParseTransactionType(strings.TrimSpace(*tipe))
		if err != nil {
			return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeInvalidTransactionType, "tipe must be masuk or keluar")
		}
		filter = &parsed
	}

	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error) {
	tipe, err := enums.ParseTransactionType(strings.TrimSpace(input.Tipe))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidTransactionType, "tipe must be masuk or keluar")
	}
	if input.Jumlah <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jumlah must be greater than zero")
	}
	if input.ProdukID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "produk_id is required")
	}
	if err := s.ensureSupplier(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProductForUpdate(ctx, input.ProdukID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock product")
		}

		if tipe == enums.TransactionTypeKeluar && input.Jumlah > product.Stok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "stok is not sufficient")
		}

		txn := &models.Transaction{
			ID:         uuid.New(),
			ProdukID:   product.ID,
			Tipe:       tipe,
			Jumlah:     input.Jumlah,
			Catatan:    input.Catatan,
			SupplierID: input.SupplierID,
		}
		if _, err := txRepo.Create(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}
		createdID = txn.ID

		newStok := product.Stok + stockEffect(tipe, input.Jumlah)
		if err := txRepo.UpdateProductStock(ctx, product.ID, newStok); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product stock")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
	}

	return s.Get(ctx, createdID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load transaction")
	}
	return txn, nil
}

// Update rewrites the transaction. By default the new quantity is checked
// against present stock and only the row's fields change; with rebase enabled
// the old movement is reversed and the new one applied to stok atomically.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error) {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newTipe := txn.Tipe
	if input.Tipe != nil {
		parsed, err := enums.ParseTransactionType(strings.TrimSpace(*input.Tipe))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTransactionType, "tipe must be masuk or keluar")
		}
		newTipe = parsed
	}

	newJumlah := txn.Jumlah
	if input.Jumlah != nil {
		if *input.Jumlah <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "jumlah must be greater than zero")
		}
		newJumlah = *input.Jumlah
	}

	if input.SupplierID != nil {
		if err := s.ensureSupplier(ctx, input.SupplierID); err != nil {
			return nil, err
		}
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProductForUpdate(ctx, txn.ProdukID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock product")
		}

		if s.stockCfg.UpdateRebase {
			rebased := product.Stok - stockEffect(txn.Tipe, txn.Jumlah) + stockEffect(newTipe, newJumlah)
			if rebased < 0 {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "stok is not sufficient")
			}
			if err := txRepo.UpdateProductStock(ctx, product.ID, rebased); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product stock")
			}
		} else if newTipe == enums.TransactionTypeKeluar && newJumlah > product.Stok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "stok is not sufficient")
		}

		txn.Tipe = newTipe
		txn.Jumlah = newJumlah
		if input.Catatan != nil {
			txn.Catatan = input.Catatan
		}
		if input.SupplierID != nil {
			txn.SupplierID = input.SupplierID
			txn.Supplier = nil
		}
		txn.Product = nil

		if _, err := txRepo.Update(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update transaction")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
	}

	return s.Get(ctx, id)
}

// Delete reverses the transaction's effect on its product, then removes the row.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProductForUpdate(ctx, txn.ProdukID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock product")
		}

		reverted := product.Stok - stockEffect(txn.Tipe, txn.Jumlah)
		if err := txRepo.UpdateProductStock(ctx, product.ID, reverted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product stock")
		}
		if err := txRepo.Delete(ctx, txn.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete transaction")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
	}
	return nil
}

func (s *service) Search(ctx context.Context, term string, params pagination.Params) ([]models.Transaction, pagination.Meta, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	params = params.Normalize()
	rows, total, err := s.repo.Search(ctx, term, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search transactions")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product transactions")
	}
	return rows, nil
}

func (s *service) Stats(ctx context.Context, from, to *time.Time) (*TransactionStats, error) {
	rows, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load transactions for stats")
	}

	stats := &TransactionStats{TotalTransactions: len(rows)}
	for _, txn := range rows {
		switch txn.Tipe {
		case enums.TransactionTypeMasuk:
			stats.MasukCount++
			stats.TotalMasuk += txn.Jumlah
		case enums.TransactionTypeKeluar:
			stats.KeluarCount++
			stats.TotalKeluar += txn.Jumlah
		}
	}
	stats.NetChange = stats.TotalMasuk - stats.TotalKeluar
	return stats, nil
}

func (s *service) ensureSupplier(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if *id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier_id cannot be empty")
	}
	if _, err := s.suppliers.FindByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load supplier")
	}
	return nil
}

func stockEffect(tipe enums.TransactionType, jumlah int) int {
	if tipe == enums.TransactionTypeKeluar {
		return -jumlah
	}
	return jumlah
}
