package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/smartsort/inventory-backend/internal/inventory"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	pkgerrors "github.com/smartsort/inventory-backend/pkg/errors"
)

type stubInventoryService struct {
	item  *models.InventoryItem
	items []models.InventoryItem
	err   error

	gotReceive  *inventory.ReceiveInput
	gotItemID   int64
	gotQuantity int
}

func (s *stubInventoryService) Receive(ctx context.Context, input inventory.ReceiveInput) (*models.InventoryItem, error) {
	s.gotReceive = &input
	return s.item, s.err
}

func (s *stubInventoryService) Dispatch(ctx context.Context, itemID int64, quantity int) (*models.InventoryItem, error) {
	s.gotItemID = itemID
	s.gotQuantity = quantity
	return s.item, s.err
}

func (s *stubInventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	return s.items, s.err
}

func (s *stubInventoryService) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	return s.item, s.err
}

func strPtr(s string) *string { return &s }

func TestInventoryReceiveSuccess(t *testing.T) {
	svc := &stubInventoryService{item: &models.InventoryItem{
		ID: 1, SKU: "AAAA1111", ItemName: "Widget", Quantity: 5, Location: strPtr("Aisle 2"),
	}}
	handler := InventoryReceive(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"item_name": "Widget",
		"quantity":  5,
		"location":  "Aisle 2",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotReceive == nil || svc.gotReceive.ItemName != "Widget" || svc.gotReceive.Quantity != 5 {
		t.Fatalf("unexpected service input: %+v", svc.gotReceive)
	}

	var envelope struct {
		Data inventoryItemResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SKU != "AAAA1111" {
		t.Fatalf("expected sku in response, got %+v", envelope.Data)
	}
}

func TestInventoryReceiveRejectsBadBody(t *testing.T) {
	handler := InventoryReceive(&stubInventoryService{}, nil)

	cases := []string{
		`{}`,
		`{"item_name":"Widget"}`,
		`{"item_name":"Widget","quantity":0}`,
		`{"item_name":"Widget","quantity":-2}`,
		`{"item_name":"Widget","quantity":1,"extra":true}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", bytes.NewReader([]byte(body)))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 got %d", body, rec.Code)
		}
	}
}

func TestInventoryDispatchSuccess(t *testing.T) {
	svc := &stubInventoryService{item: &models.InventoryItem{
		ID: 7, SKU: "AAAA1111", ItemName: "Widget", Quantity: 2, DispatchCount: 3,
	}}

	r := chi.NewRouter()
	r.Post("/api/v1/inventory/{itemID}/dispatch", InventoryDispatch(svc, nil))

	body, _ := json.Marshal(map[string]any{"quantity": 3})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/7/dispatch", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotItemID != 7 || svc.gotQuantity != 3 {
		t.Fatalf("unexpected service args: id=%d qty=%d", svc.gotItemID, svc.gotQuantity)
	}
}

func TestInventoryDispatchInsufficientStock(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock to dispatch")}

	r := chi.NewRouter()
	r.Post("/api/v1/inventory/{itemID}/dispatch", InventoryDispatch(svc, nil))

	body, _ := json.Marshal(map[string]any{"quantity": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/7/dispatch", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}

func TestInventoryDispatchInvalidID(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/inventory/{itemID}/dispatch", InventoryDispatch(&stubInventoryService{}, nil))

	body, _ := json.Marshal(map[string]any{"quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/abc/dispatch", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryListSuccess(t *testing.T) {
	svc := &stubInventoryService{items: []models.InventoryItem{
		{ID: 1, SKU: "AAAA1111", ItemName: "Widget", Quantity: 5},
		{ID: 2, SKU: "BBBB2222", ItemName: "Gadget", Quantity: 0},
	}}
	handler := InventoryList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []inventoryItemResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 items, got %d", len(envelope.Data))
	}
}

func TestInventoryListServiceMissing(t *testing.T) {
	handler := InventoryList(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
