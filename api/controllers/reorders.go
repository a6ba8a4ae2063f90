package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/smartsort/inventory-backend/api/responses"
	"github.com/smartsort/inventory-backend/internal/reorder"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	pkgerrors "github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
)

type reorderNotificationResponse struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	SupplierID int64     `json:"supplier_id"`
	SKU        string    `json:"sku"`
	Quantity   int       `json:"quantity"`
	Recipient  string    `json:"recipient"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReorderList returns the most recent reorder notifications, newest first.
func ReorderList(svc reorder.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reorder service unavailable"))
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		rows, err := svc.ListNotifications(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]reorderNotificationResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, toReorderNotificationResponse(row))
		}
		responses.WriteSuccess(w, out)
	}
}

func toReorderNotificationResponse(row models.ReorderNotification) reorderNotificationResponse {
	return reorderNotificationResponse{
		ID:         row.ID,
		ItemID:     row.ItemID,
		SupplierID: row.SupplierID,
		SKU:        row.SKU,
		Quantity:   row.Quantity,
		Recipient:  row.Recipient,
		Status:     string(row.Status),
		Error:      row.Error,
		CreatedAt:  row.CreatedAt,
	}
}
