package category

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

// Service exposes category management operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Category, pagination.Meta, error)
	Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, term string, params pagination.Params) ([]models.Category, pagination.Meta, error)
	Stats(ctx context.Context, id uuid.UUID) (*CategoryStats, error)
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Nama string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Nama *string
}

// CategoryStats aggregates the category's product figures.
type CategoryStats struct {
	Category      *models.Category `json:"category"`
	TotalProducts int              `json:"totalProducts"`
	TotalStock    int              `json:"totalStock"`
	AveragePrice  decimal.Decimal  `json:"averagePrice"`
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Category, pagination.Meta, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	nama := strings.TrimSpace(input.Nama)
	if nama == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama is required")
	}

	category := &models.Category{
		ID:   uuid.New(),
		Nama: nama,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nama != nil {
		nama := strings.TrimSpace(*input.Nama)
		if nama == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama cannot be empty")
		}
		category.Nama = nama
	}

	// keep Save from touching the preloaded product rows
	category.Products = nil

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeHasDependents, "category still has products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

func (s *service) Search(ctx context.Context, term string, params pagination.Params) ([]models.Category, pagination.Meta, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	params = params.Normalize()
	rows, total, err := s.repo.Search(ctx, term, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search categories")
	}
	return rows, pagination.NewMeta(params, total), nil
}

func (s *service) Stats(ctx context.Context, id uuid.UUID) (*CategoryStats, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list category products")
	}

	totalStock := 0
	priceSum := decimal.Zero
	for _, product := range products {
		totalStock += product.Stok
		priceSum = priceSum.Add(product.Harga)
	}

	average := decimal.Zero
	if len(products) > 0 {
		average = priceSum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}

	return &CategoryStats{
		Category:      category,
		TotalProducts: len(products),
		TotalStock:    totalStock,
		AveragePrice:  average,
	}, nil
}
