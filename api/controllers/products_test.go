package controllers

import (
	"context"

	"github.com/google/uuid"

	productsvc "github.com/Areandra/Kelvin/internal/products"
	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

type stubProductService struct {
	product *models.Product
	list    []models.Product
	meta    pagination.Meta
	err     error

	lastCreate productsvc.CreateProductInput
	lastUpdate productsvc.UpdateProductInput
}

func (s *stubProductService) List(ctx context.Context, params pagination.Params) ([]models.Product, pagination.Meta, error) {
	return s.list, s.meta, s.err
}

func (s *stubProductService) Create(ctx context.Context, input productsvc.CreateProductInput) (*models.Product, error) {
	s.lastCreate = input
	return s.product, s.err
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Update(ctx context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*models.Product, error) {
	s.lastUpdate = input
	return s.product, s.err
}

func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubProductService) Search(ctx context.Context, term string, params pagination.Params) ([]models.Product, pagination.Meta, error) {
	return s.list, s.meta, s.err
}

func (s *stubProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	return s.list, s.err
}
