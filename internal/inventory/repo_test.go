package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/smartsort/inventory-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.InventoryItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedItem(t *testing.T, conn *gorm.DB, item *models.InventoryItem) *models.InventoryItem {
	t.Helper()
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

func strPtr(s string) *string { return &s }

func TestRepositoryAddStock_MergesExistingRow(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedItem(t, conn, &models.InventoryItem{
		SKU: "AAAA1111", ItemName: "Widget", Quantity: 3, Location: strPtr("Aisle 1"),
	})

	merged, err := repo.AddStock(ctx, "Widget", 7, strPtr("Aisle 9"))
	if err != nil {
		t.Fatalf("AddStock returned error: %v", err)
	}
	if !merged {
		t.Fatalf("expected merge into existing row")
	}

	got, err := repo.FindByName(ctx, "Widget")
	if err != nil {
		t.Fatalf("FindByName returned error: %v", err)
	}
	if got.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", got.Quantity)
	}
	if got.Location == nil || *got.Location != "Aisle 9" {
		t.Fatalf("expected location replaced with Aisle 9, got %v", got.Location)
	}
	if got.SKU != "AAAA1111" {
		t.Fatalf("expected sku unchanged, got %s", got.SKU)
	}
}

func TestRepositoryAddStock_NoRowReturnsFalse(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	merged, err := repo.AddStock(context.Background(), "Missing", 1, nil)
	if err != nil {
		t.Fatalf("AddStock returned error: %v", err)
	}
	if merged {
		t.Fatalf("expected no merge for unknown item name")
	}
}

func TestRepositoryRemoveStock(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	item := seedItem(t, conn, &models.InventoryItem{
		SKU: "BBBB2222", ItemName: "Gadget", Quantity: 5,
	})

	removed, err := repo.RemoveStock(ctx, item.ID, 2)
	if err != nil {
		t.Fatalf("RemoveStock returned error: %v", err)
	}
	if !removed {
		t.Fatalf("expected stock removal to apply")
	}

	got, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.Quantity)
	}
	if got.DispatchCount != 1 {
		t.Fatalf("expected dispatch count 1, got %d", got.DispatchCount)
	}

	removed, err = repo.RemoveStock(ctx, item.ID, 4)
	if err != nil {
		t.Fatalf("RemoveStock returned error: %v", err)
	}
	if removed {
		t.Fatalf("expected over-dispatch to be rejected")
	}

	got, err = repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Quantity != 3 || got.DispatchCount != 1 {
		t.Fatalf("expected row unchanged after rejected removal, got qty=%d count=%d", got.Quantity, got.DispatchCount)
	}
}

func TestRepositoryListAtOrBelow(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedItem(t, conn, &models.InventoryItem{SKU: "CCCC3333", ItemName: "Low", Quantity: 5})
	seedItem(t, conn, &models.InventoryItem{SKU: "DDDD4444", ItemName: "High", Quantity: 6})
	seedItem(t, conn, &models.InventoryItem{SKU: "EEEE5555", ItemName: "Empty", Quantity: 0})

	items, err := repo.ListAtOrBelow(ctx, 5)
	if err != nil {
		t.Fatalf("ListAtOrBelow returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 low-stock items, got %d", len(items))
	}
	if items[0].ItemName != "Low" || items[1].ItemName != "Empty" {
		t.Fatalf("unexpected low-stock items: %+v", items)
	}
}

func TestRepositoryFindBySKU(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedItem(t, conn, &models.InventoryItem{SKU: "FFFF6666", ItemName: "Thing", Quantity: 1})

	got, err := repo.FindBySKU(ctx, "FFFF6666")
	if err != nil {
		t.Fatalf("FindBySKU returned error: %v", err)
	}
	if got.ItemName != "Thing" {
		t.Fatalf("expected Thing, got %s", got.ItemName)
	}

	if _, err := repo.FindBySKU(ctx, "NOPE0000"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found, got %v", err)
	}
}
