package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartsort/inventory-backend/api/responses"
	"github.com/smartsort/inventory-backend/api/validators"
	"github.com/smartsort/inventory-backend/internal/inventory"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	pkgerrors "github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
)

type receiveRequest struct {
	ItemName string  `json:"item_name" validate:"required,min=1,max=100"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

type dispatchRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type inventoryItemResponse struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Location      *string   `json:"location,omitempty"`
	DispatchCount int       `json:"dispatch_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toInventoryItemResponse(item *models.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:            item.ID,
		SKU:           item.SKU,
		ItemName:      item.ItemName,
		Quantity:      item.Quantity,
		Location:      item.Location,
		DispatchCount: item.DispatchCount,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// InventoryList returns every row in the ledger.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]inventoryItemResponse, 0, len(items))
		for i := range items {
			out = append(out, toInventoryItemResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// InventoryReceive records a stock receipt, merging by item name.
func InventoryReceive(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var req receiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Receive(r.Context(), inventory.ReceiveInput{
			ItemName: req.ItemName,
			Quantity: req.Quantity,
			Location: req.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toInventoryItemResponse(item))
	}
}

// InventoryDispatch removes stock from an item and counts the dispatch.
func InventoryDispatch(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var req dispatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Dispatch(r.Context(), itemID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toInventoryItemResponse(item))
	}
}
