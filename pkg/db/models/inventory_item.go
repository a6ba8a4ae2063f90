package models

import "time"

// InventoryItem is a stocked item. ItemName is the natural key for
// merge-on-receive; SKU is the stable external identifier.
type InventoryItem struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SKU           string    `gorm:"column:sku;type:char(8);not null;uniqueIndex:idx_inventory_items_sku"`
	ItemName      string    `gorm:"column:item_name;type:varchar(100);not null;uniqueIndex:idx_inventory_items_item_name"`
	Quantity      int       `gorm:"column:quantity;not null"`
	Location      *string   `gorm:"column:location;type:varchar(50)"`
	DispatchCount int       `gorm:"column:dispatch_count;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
