package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Areandra/Kelvin/api/responses"
	"github.com/Areandra/Kelvin/api/validators"
	transactionsvc "github.com/Areandra/Kelvin/internal/transactions"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/logger"
)

type createTransactionRequest struct {
	ProdukID   string  `json:"produk_id" validate:"required,uuid"`
	Tipe       string  `json:"tipe" validate:"required,oneof=masuk keluar"`
	Jumlah     int     `json:"jumlah" validate:"required,gt=0"`
	Catatan    *string `json:"catatan,omitempty" validate:"omitempty,max=500"`
	SupplierID *string `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
}

type updateTransactionRequest struct {
	Tipe       *string `json:"tipe,omitempty" validate:"omitempty,oneof=masuk keluar"`
	Jumlah     *int    `json:"jumlah,omitempty" validate:"omitempty,gt=0"`
	Catatan    *string `json:"catatan,omitempty" validate:"omitempty,max=500"`
	SupplierID *string `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
}

func (p createTransactionRequest) toCreateInput() (transactionsvc.CreateTransactionInput, error) {
	produkID, err := uuid.Parse(p.ProdukID)
	if err != nil {
		return transactionsvc.CreateTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid produk_id")
	}
	input := transactionsvc.CreateTransactionInput{
		ProdukID: produkID,
		Tipe:     strings.TrimSpace(p.Tipe),
		Jumlah:   p.Jumlah,
		Catatan:  p.Catatan,
	}
	if p.SupplierID != nil {
		supplierID, err := uuid.Parse(*p.SupplierID)
		if err != nil {
			return transactionsvc.CreateTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier_id")
		}
		input.SupplierID = &supplierID
	}
	return input, nil
}

func (p updateTransactionRequest) toUpdateInput() (transactionsvc.UpdateTransactionInput, error) {
	input := transactionsvc.UpdateTransactionInput{
		Tipe:    p.Tipe,
		Jumlah:  p.Jumlah,
		Catatan: p.Catatan,
	}
	if p.SupplierID != nil {
		supplierID, err := uuid.Parse(*p.SupplierID)
		if err != nil {
			return transactionsvc.UpdateTransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier_id")
		}
		input.SupplierID = &supplierID
	}
	return input, nil
}

// TransactionList returns a paginated transaction listing with an optional
// tipe filter.
func TransactionList(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var tipe *string
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			tipe = &raw
		}

		transactions, meta, err := svc.List(ctx, params, tipe)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, transactions, meta)
	}
}

// TransactionCreate records a stock movement and adjusts product stock.
func TransactionCreate(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		var payload createTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transaction, err := svc.Create(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

// TransactionGet returns one transaction with its product preloaded.
func TransactionGet(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transaction, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionUpdate mutates a transaction, re-validating stock.
func TransactionUpdate(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transaction, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionDelete removes a transaction and reverses its stock effect.
func TransactionDelete(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// TransactionSearch matches transactions by product name or note.
func TransactionSearch(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transactions, meta, err := svc.Search(ctx, searchTerm(r), params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, transactions, meta)
	}
}

// TransactionsByProduct lists the movement history of one product.
func TransactionsByProduct(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transactions, err := svc.ListByProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactions)
	}
}

// TransactionStats aggregates movement figures over an optional date window.
func TransactionStats(svc transactionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		from, err := validators.ParseQueryDate(r, "dateFrom", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "dateTo", true)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		stats, err := svc.Stats(ctx, from, to)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
