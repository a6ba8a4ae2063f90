package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartsort/inventory-backend/api/responses"
	"github.com/smartsort/inventory-backend/api/validators"
	"github.com/smartsort/inventory-backend/internal/suppliers"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	pkgerrors "github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
)

type supplierAddRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Contact string  `json:"contact" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=200"`
	SKU     *string `json:"sku,omitempty" validate:"omitempty,len=8"`
}

type supplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Address   *string   `json:"address,omitempty"`
	SKU       *string   `json:"sku,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toSupplierResponse(supplier *models.Supplier) supplierResponse {
	return supplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Contact:   supplier.Contact,
		Email:     supplier.Email,
		Address:   supplier.Address,
		SKU:       supplier.SKU,
		CreatedAt: supplier.CreatedAt,
	}
}

// SupplierList returns the full supplier directory.
func SupplierList(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]supplierResponse, 0, len(rows))
		for i := range rows {
			out = append(out, toSupplierResponse(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// SupplierAdd registers a supplier, optionally linked to an inventory SKU.
func SupplierAdd(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		var req supplierAddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.Add(r.Context(), suppliers.AddInput{
			Name:    req.Name,
			Contact: req.Contact,
			Email:   req.Email,
			Address: req.Address,
			SKU:     req.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toSupplierResponse(supplier))
	}
}

// SupplierRemove deletes a supplier from the directory.
func SupplierRemove(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		supplierID, err := strconv.ParseInt(chi.URLParam(r, "supplierID"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id"))
			return
		}

		if err := svc.Remove(r.Context(), supplierID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
