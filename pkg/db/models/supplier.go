package models

import "time"

// Supplier holds a vendor contact, optionally linked to one inventory SKU.
// The SKU link is a weak reference: it is validated when the supplier is
// created and never re-checked, so it may dangle later.
type Supplier struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Contact   string    `gorm:"column:contact;type:varchar(100);not null"`
	Email     string    `gorm:"column:email;type:varchar(100);not null"`
	Address   *string   `gorm:"column:address;type:varchar(200)"`
	SKU       *string   `gorm:"column:sku;type:char(8);index:idx_suppliers_sku"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
