package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartsort/inventory-backend/pkg/db/models"
)

type stubReorderService struct {
	rows     []models.ReorderNotification
	err      error
	gotLimit int
}

func (s *stubReorderService) Scan(ctx context.Context) error { return s.err }

func (s *stubReorderService) ListNotifications(ctx context.Context, limit int) ([]models.ReorderNotification, error) {
	s.gotLimit = limit
	return s.rows, s.err
}

func TestReorderListSuccess(t *testing.T) {
	svc := &stubReorderService{rows: []models.ReorderNotification{
		{ID: 2, ItemID: 1, Status: models.ReorderNotificationSent},
		{ID: 1, ItemID: 1, Status: models.ReorderNotificationFailed, Error: strPtr("smtp unreachable")},
	}}
	handler := ReorderList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reorders?limit=10", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.gotLimit != 10 {
		t.Fatalf("expected limit 10, got %d", svc.gotLimit)
	}

	var envelope struct {
		Data []reorderNotificationResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(envelope.Data))
	}
	if envelope.Data[1].Error == nil {
		t.Fatalf("expected failure detail on failed row")
	}
}

func TestReorderListRejectsBadLimit(t *testing.T) {
	handler := ReorderList(&stubReorderService{}, nil)

	for _, limit := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reorders?limit="+limit, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: expected 400 got %d", limit, rec.Code)
		}
	}
}
