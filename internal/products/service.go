package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

const maxNameLength = 255

// Service exposes product management operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Product, pagination.Meta, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string, params pagination.Params) ([]models.Product, pagination.Meta, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Nama       string
	Merk       string
	Stok       int
	Harga      decimal.Decimal
	KategoriID uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Nama       *string
	Merk       *string
	Stok       *int
	Harga      *decimal.Decimal
	KategoriID *uuid.UUID
}

type categoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       *Repository
	categories categoryReader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, categories categoryReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, categories: categories}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Product, pagination.Meta, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	nama := strings.TrimSpace(input.Nama)
	merk := strings.TrimSpace(input.Merk)
	if err := validateName(nama); err != nil {
		return nil, err
	}
	if len(merk) > maxNameLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merk exceeds 255 characters")
	}
	if input.Stok < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stok cannot be negative")
	}
	if !input.Harga.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "harga must be greater than zero")
	}
	if input.KategoriID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kategori_id is required")
	}
	if err := s.ensureCategory(ctx, input.KategoriID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:         uuid.New(),
		Nama:       nama,
		Merk:       merk,
		Stok:       input.Stok,
		Harga:      input.Harga,
		KategoriID: input.KategoriID,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nama != nil {
		nama := strings.TrimSpace(*input.Nama)
		if err := validateName(nama); err != nil {
			return nil, err
		}
		product.Nama = nama
	}
	if input.Merk != nil {
		merk := strings.TrimSpace(*input.Merk)
		if len(merk) > maxNameLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "merk exceeds 255 characters")
		}
		product.Merk = merk
	}
	if input.Stok != nil {
		if *input.Stok < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stok cannot be negative")
		}
		product.Stok = *input.Stok
	}
	if input.Harga != nil {
		if !input.Harga.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "harga must be greater than zero")
		}
		product.Harga = *input.Harga
	}
	if input.KategoriID != nil {
		if *input.KategoriID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "kategori_id is required")
		}
		if err := s.ensureCategory(ctx, *input.KategoriID); err != nil {
			return nil, err
		}
		product.KategoriID = *input.KategoriID
		product.Category = nil
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) Search(ctx context.Context, term string, params pagination.Params) ([]models.Product, pagination.Meta, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	params = params.Normalize()
	rows, total, err := s.repo.Search(ctx, term, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products by category")
	}
	return rows, nil
}

func (s *service) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return nil
}

func validateName(nama string) error {
	if nama == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nama is required")
	}
	if len(nama) > maxNameLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "nama exceeds 255 characters")
	}
	return nil
}
