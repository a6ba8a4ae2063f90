package inventory

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/smartsort/inventory-backend/pkg/db"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	"github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
	"gorm.io/gorm"
)

// maxSKUAttempts bounds the retry loop when a generated SKU or a concurrent
// insert of the same item name collides on a unique index.
const maxSKUAttempts = 5

const maxItemNameLength = 100

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ReceiveInput carries a stock receipt.
type ReceiveInput struct {
	ItemName string
	Quantity int
	Location *string
}

// Service owns the inventory ledger operations.
type Service interface {
	Receive(ctx context.Context, input ReceiveInput) (*models.InventoryItem, error)
	Dispatch(ctx context.Context, itemID int64, quantity int) (*models.InventoryItem, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error)
}

type serviceImpl struct {
	logger *logger.Logger
	tx     Transactor
	repo   Repository
}

// ServiceParams holds the dependencies for NewService.
type ServiceParams struct {
	Logger *logger.Logger
	Tx     Transactor
	Repo   Repository
}

// NewService builds the inventory service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("inventory service requires a logger")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("inventory service requires a transactor")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory service requires a repository")
	}
	return &serviceImpl{
		logger: params.Logger,
		tx:     params.Tx,
		repo:   params.Repo,
	}, nil
}

// Receive merges the receipt into an existing row with the same item name,
// adding quantity and replacing the stored location. When no row exists it
// creates one with a freshly generated SKU, retrying the whole transaction on
// unique-index collisions.
func (s *serviceImpl) Receive(ctx context.Context, input ReceiveInput) (*models.InventoryItem, error) {
	input.ItemName = strings.TrimSpace(input.ItemName)
	if input.ItemName == "" {
		return nil, errors.New(errors.CodeValidation, "item name is required")
	}
	if len(input.ItemName) > maxItemNameLength {
		return nil, errors.New(errors.CodeValidation, "item name exceeds 100 characters")
	}
	if input.Quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	var result *models.InventoryItem
	for attempt := 0; attempt < maxSKUAttempts; attempt++ {
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)

			merged, err := repo.AddStock(ctx, input.ItemName, input.Quantity, input.Location)
			if err != nil {
				return err
			}
			if merged {
				item, err := repo.FindByName(ctx, input.ItemName)
				if err != nil {
					return err
				}
				result = item
				return nil
			}

			sku, err := GenerateSKU()
			if err != nil {
				return err
			}
			item := &models.InventoryItem{
				SKU:      sku,
				ItemName: input.ItemName,
				Quantity: input.Quantity,
				Location: input.Location,
			}
			if err := repo.Create(ctx, item); err != nil {
				return err
			}
			result = item
			return nil
		})
		if err == nil {
			return result, nil
		}
		if db.IsUniqueViolation(err, "") {
			// Either our SKU collided or another receive created the row
			// first. Rerunning the transaction merges or regenerates.
			s.logger.Debug(s.logger.WithFields(ctx, map[string]any{
				"item_name": input.ItemName,
				"attempt":   attempt + 1,
			}), "receive retry after unique violation")
			continue
		}
		if typed := errors.As(err); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "receive inventory")
	}
	return nil, errors.New(errors.CodeConflict, "could not assign a unique sku")
}

// Dispatch removes quantity from the item's stock and records one dispatch.
// Over-dispatching is rejected without mutating the row.
func (s *serviceImpl) Dispatch(ctx context.Context, itemID int64, quantity int) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, errors.New(errors.CodeValidation, "quantity must be positive")
	}

	var result *models.InventoryItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindByID(ctx, itemID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "item not found")
			}
			return err
		}

		removed, err := repo.RemoveStock(ctx, itemID, quantity)
		if err != nil {
			return err
		}
		if !removed {
			return errors.New(errors.CodeInsufficientStock, "not enough stock to dispatch").
				WithDetails(map[string]any{
					"requested": quantity,
					"on_hand":   item.Quantity,
				})
		}

		item, err = repo.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		if typed := errors.As(err); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "dispatch inventory")
	}

	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"item_id":  itemID,
		"quantity": quantity,
	}), "dispatched stock")
	return result, nil
}

func (s *serviceImpl) List(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list inventory")
	}
	return items, nil
}

func (s *serviceImpl) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	item, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "item not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "find inventory by sku")
	}
	return item, nil
}
