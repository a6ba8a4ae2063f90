package suppliers

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/smartsort/inventory-backend/pkg/db/models"
	"github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
	"gorm.io/gorm"
)

// InventoryFinder resolves SKUs against the inventory ledger. Implemented by
// the inventory service.
type InventoryFinder interface {
	FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error)
}

// AddInput carries a new supplier registration.
type AddInput struct {
	Name    string
	Contact string
	Email   string
	Address *string
	SKU     *string
}

// Service owns the supplier directory operations.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.Supplier, error)
	Remove(ctx context.Context, supplierID int64) error
	List(ctx context.Context) ([]models.Supplier, error)
	FindBySKU(ctx context.Context, sku string) (*models.Supplier, error)
}

type serviceImpl struct {
	logger    *logger.Logger
	repo      Repository
	inventory InventoryFinder
}

// ServiceParams holds the dependencies for NewService.
type ServiceParams struct {
	Logger    *logger.Logger
	Repo      Repository
	Inventory InventoryFinder
}

// NewService builds the supplier service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("supplier service requires a logger")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("supplier service requires a repository")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("supplier service requires an inventory finder")
	}
	return &serviceImpl{
		logger:    params.Logger,
		repo:      params.Repo,
		inventory: params.Inventory,
	}, nil
}

// Add registers a supplier. A SKU, when provided, must reference an existing
// inventory item; the link stays a plain column so items can come and go
// without cascading into the directory.
func (s *serviceImpl) Add(ctx context.Context, input AddInput) (*models.Supplier, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "supplier name is required")
	}
	if input.Contact == "" {
		return nil, errors.New(errors.CodeValidation, "supplier contact is required")
	}
	if input.Email == "" {
		return nil, errors.New(errors.CodeValidation, "supplier email is required")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			input.SKU = nil
		} else {
			if _, err := s.inventory.FindBySKU(ctx, sku); err != nil {
				if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
					return nil, errors.New(errors.CodeInvalidReference, "sku does not match any inventory item").
						WithDetails(map[string]any{"sku": sku})
				}
				return nil, errors.Wrap(errors.CodeDependency, err, "resolve supplier sku")
			}
			input.SKU = &sku
		}
	}

	supplier := &models.Supplier{
		Name:    input.Name,
		Contact: input.Contact,
		Email:   input.Email,
		Address: input.Address,
		SKU:     input.SKU,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create supplier")
	}

	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"supplier_id": supplier.ID,
		"name":        supplier.Name,
	}), "supplier added")
	return supplier, nil
}

func (s *serviceImpl) Remove(ctx context.Context, supplierID int64) error {
	deleted, err := s.repo.Delete(ctx, supplierID)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete supplier")
	}
	if !deleted {
		return errors.New(errors.CodeNotFound, "supplier not found")
	}
	return nil
}

func (s *serviceImpl) List(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list suppliers")
	}
	return rows, nil
}

func (s *serviceImpl) FindBySKU(ctx context.Context, sku string) (*models.Supplier, error) {
	supplier, err := s.repo.FirstBySKU(ctx, sku)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "no supplier linked to sku")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "find supplier by sku")
	}
	return supplier, nil
}
