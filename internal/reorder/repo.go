package reorder

import (
	"context"

	"github.com/smartsort/inventory-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the reorder notification log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.ReorderNotification) error
	ListRecent(ctx context.Context, limit int) ([]models.ReorderNotification, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notification repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.ReorderNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repositoryImpl) ListRecent(ctx context.Context, limit int) ([]models.ReorderNotification, error) {
	var rows []models.ReorderNotification
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
