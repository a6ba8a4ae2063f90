package inventory

import (
	"context"

	"github.com/smartsort/inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the inventory ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	FindByName(ctx context.Context, itemName string) (*models.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	AddStock(ctx context.Context, itemName string, quantity int, location *string) (bool, error)
	RemoveStock(ctx context.Context, id int64, quantity int) (bool, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListAtOrBelow(ctx context.Context, threshold int) ([]models.InventoryItem, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) FindByName(ctx context.Context, itemName string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "item_name = ?", itemName).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// AddStock merges a receipt into an existing row by name. The guarded UPDATE
// keeps concurrent receives additive without an explicit row lock. Returns
// false when no row with that name exists yet.
func (r *repositoryImpl) AddStock(ctx context.Context, itemName string, quantity int, location *string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET quantity = quantity + ?,
			location = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE item_name = ?
	`, quantity, location, itemName)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveStock decrements quantity and bumps dispatch_count in one guarded
// UPDATE. Returns false when the row is missing or holds less than quantity;
// the caller distinguishes the two cases.
func (r *repositoryImpl) RemoveStock(ctx context.Context, id int64, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET quantity = quantity - ?,
			dispatch_count = dispatch_count + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, quantity, id, quantity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) ListAtOrBelow(ctx context.Context, threshold int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("quantity <= ?", threshold).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
