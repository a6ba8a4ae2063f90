package models

import "time"

// ReorderNotificationStatus marks whether the outbound email was delivered.
type ReorderNotificationStatus string

const (
	ReorderNotificationSent   ReorderNotificationStatus = "sent"
	ReorderNotificationFailed ReorderNotificationStatus = "failed"
)

// ReorderNotification records one reorder request emitted by the low-stock
// scan, successful or not.
type ReorderNotification struct {
	ID         int64                     `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID     int64                     `gorm:"column:item_id;not null;index:idx_reorder_notifications_item_id"`
	SupplierID int64                     `gorm:"column:supplier_id;not null"`
	SKU        string                    `gorm:"column:sku;type:char(8);not null"`
	Quantity   int                       `gorm:"column:quantity;not null"`
	Recipient  string                    `gorm:"column:recipient;type:varchar(100);not null"`
	Status     ReorderNotificationStatus `gorm:"column:status;type:varchar(10);not null"`
	Error      *string                   `gorm:"column:error;type:text"`
	CreatedAt  time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
