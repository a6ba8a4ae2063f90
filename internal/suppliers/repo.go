package suppliers

import (
	"context"

	"github.com/smartsort/inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the supplier directory.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Supplier, error)
	FirstBySKU(ctx context.Context, sku string) (*models.Supplier, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a supplier repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// Delete removes the supplier row. Returns false when no row matched.
func (r *repositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FirstBySKU returns the oldest supplier linked to the given SKU.
func (r *repositoryImpl) FirstBySKU(ctx context.Context, sku string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Order("id ASC").
		First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}
