package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	categorysvc "github.com/Areandra/Kelvin/internal/categories"
	"github.com/Areandra/Kelvin/pkg/db/models"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/pagination"
)

type stubCategoryService struct {
	category *models.Category
	list     []models.Category
	meta     pagination.Meta
	stats    *categorysvc.CategoryStats
	err      error

	lastCreate categorysvc.CreateCategoryInput
	lastID     uuid.UUID
}

func (s *stubCategoryService) List(ctx context.Context, params pagination.Params) ([]models.Category, pagination.Meta, error) {
	return s.list, s.meta, s.err
}

func (s *stubCategoryService) Create(ctx context.Context, input categorysvc.CreateCategoryInput) (*models.Category, error) {
	s.lastCreate = input
	return s.category, s.err
}

func (s *stubCategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.lastID = id
	return s.category, s.err
}

func (s *stubCategoryService) Update(ctx context.Context, id uuid.UUID, input categorysvc.UpdateCategoryInput) (*models.Category, error) {
	s.lastID = id
	return s.category, s.err
}

func (s *stubCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	s.lastID = id
	return s.err
}

func (s *stubCategoryService) Search(ctx context.Context, term string, params pagination.Params) ([]models.Category, pagination.Meta, error) {
	return s.list, s.meta, s.err
}

func (s *stubCategoryService) Stats(ctx context.Context, id uuid.UUID) (*categorysvc.CategoryStats, error) {
	s.lastID = id
	return s.stats, s.err
}

func routeWithID(handler http.HandlerFunc, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	switch method {
	case http.MethodGet:
		r.Get("/categories/{id}", handler)
	case http.MethodPut:
		r.Put("/categories/{id}", handler)
	case http.MethodDelete:
		r.Delete("/categories/{id}", handler)
	}

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCategoryCreateSuccess(t *testing.T) {
	created := &models.Category{ID: uuid.New(), Nama: "Elektronik"}
	svc := &stubCategoryService{category: created}
	handler := CategoryCreate(svc, nil)

	body := bytes.NewBufferString(`{"nama":"Elektronik"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastCreate.Nama != "Elektronik" {
		t.Fatalf("expected input nama Elektronik got %q", svc.lastCreate.Nama)
	}

	var envelope struct {
		Data models.Category `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != created.ID {
		t.Fatalf("expected id %s got %s", created.ID, envelope.Data.ID)
	}
}

func TestCategoryCreateRejectsEmptyBody(t *testing.T) {
	handler := CategoryCreate(&stubCategoryService{}, nil)

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCategoryGetInvalidID(t *testing.T) {
	rec := routeWithID(CategoryGet(&stubCategoryService{}, nil), http.MethodGet, "/categories/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCategoryGetNotFound(t *testing.T) {
	svc := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "category not found")}
	rec := routeWithID(CategoryGet(svc, nil), http.MethodGet, "/categories/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	svc := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeHasDependents, "category has products")}
	rec := routeWithID(CategoryDelete(svc, nil), http.MethodDelete, "/categories/"+uuid.NewString(), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestCategoryListWritesMeta(t *testing.T) {
	svc := &stubCategoryService{
		list: []models.Category{{ID: uuid.New(), Nama: "Elektronik"}},
		meta: pagination.Meta{Total: 1, Page: 1, Limit: 10, LastPage: 1},
	}
	handler := CategoryList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []models.Category `json:"data"`
		Meta pagination.Meta   `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 row got %d", len(envelope.Data))
	}
	if envelope.Meta.Total != 1 || envelope.Meta.LastPage != 1 {
		t.Fatalf("unexpected meta %+v", envelope.Meta)
	}
}
