package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areandra/Kelvin/pkg/db/models"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

// Service exposes supplier management operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Supplier, pagination.Meta, error)
	Create(ctx context.Context, input CreateSupplierInput) (*models.Supplier, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*models.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string, params pagination.Params) ([]models.Supplier, pagination.Meta, error)
}

// CreateSupplierInput holds the validated payload to create a supplier.
type CreateSupplierInput struct {
	Nama    string
	Alamat  string
	Telepon string
	Email   string
}

// UpdateSupplierInput holds optional mutation values for a supplier.
type UpdateSupplierInput struct {
	Nama    *string
	Alamat  *string
	Telepon *string
	Email   *string
}

type service struct {
	repo *Repository
}

// NewService constructs a supplier service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Supplier, pagination.Meta, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list suppliers")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) Create(ctx context.Context, input CreateSupplierInput) (*models.Supplier, error) {
	nama := strings.TrimSpace(input.Nama)
	if nama == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama is required")
	}

	supplier := &models.Supplier{
		ID:      uuid.New(),
		Nama:    nama,
		Alamat:  strings.TrimSpace(input.Alamat),
		Telepon: strings.TrimSpace(input.Telepon),
		Email:   strings.TrimSpace(input.Email),
	}
	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert supplier")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load supplier")
	}
	return supplier, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*models.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nama != nil {
		nama := strings.TrimSpace(*input.Nama)
		if nama == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama cannot be empty")
		}
		supplier.Nama = nama
	}
	if input.Alamat != nil {
		supplier.Alamat = strings.TrimSpace(*input.Alamat)
	}
	if input.Telepon != nil {
		supplier.Telepon = strings.TrimSpace(*input.Telepon)
	}
	if input.Email != nil {
		supplier.Email = strings.TrimSpace(*input.Email)
	}

	// keep Save from touching the preloaded transaction rows
	supplier.Transactions = nil

	updated, err := s.repo.Update(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update supplier")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count supplier transactions")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeHasDependents, "supplier still has transactions")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete supplier")
	}
	return nil
}

func (s *service) Search(ctx context.Context, term string, params pagination.Params) ([]models.Supplier, pagination.Meta, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	params = params.Normalize()
	rows, total, err := s.repo.Search(ctx, term, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search suppliers")
	}
	return rows, pagination.NewMeta(params, total), nil
}
