package reorder

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smartsort/inventory-backend/pkg/config"
	"github.com/smartsort/inventory-backend/pkg/db/models"
	"github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
	"github.com/smartsort/inventory-backend/pkg/mailer"
	"go.uber.org/multierr"
)

const defaultListLimit = 100

// orderUplift raises the order size for high-demand items by 25 percent.
var orderUplift = decimal.NewFromFloat(1.25)

// LowStockLister surfaces inventory rows at or below a quantity threshold.
// Implemented by the inventory repository.
type LowStockLister interface {
	ListAtOrBelow(ctx context.Context, threshold int) ([]models.InventoryItem, error)
}

// SupplierFinder resolves the supplier linked to a SKU. Implemented by the
// supplier service.
type SupplierFinder interface {
	FindBySKU(ctx context.Context, sku string) (*models.Supplier, error)
}

// Mailer delivers outbound email. Implemented by the SendGrid client.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Service runs the low-stock scan and serves the notification log.
type Service interface {
	Scan(ctx context.Context) error
	ListNotifications(ctx context.Context, limit int) ([]models.ReorderNotification, error)
}

type serviceImpl struct {
	logger    *logger.Logger
	cfg       config.ReorderConfig
	inventory LowStockLister
	suppliers SupplierFinder
	mailer    Mailer
	repo      Repository
}

// ServiceParams holds the dependencies for NewService.
type ServiceParams struct {
	Logger    *logger.Logger
	Config    config.ReorderConfig
	Inventory LowStockLister
	Suppliers SupplierFinder
	Mailer    Mailer
	Repo      Repository
}

// NewService builds the reorder service after validating dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("reorder service requires a logger")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("reorder service requires an inventory lister")
	}
	if params.Suppliers == nil {
		return nil, fmt.Errorf("reorder service requires a supplier finder")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("reorder service requires a mailer")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("reorder service requires a repository")
	}
	if params.Config.LowStockThreshold <= 0 {
		return nil, fmt.Errorf("reorder service requires a positive low stock threshold")
	}
	return &serviceImpl{
		logger:    params.Logger,
		cfg:       params.Config,
		inventory: params.Inventory,
		suppliers: params.Suppliers,
		mailer:    params.Mailer,
		repo:      params.Repo,
	}, nil
}

// Scan walks every low-stock item, resolves its supplier link and emails a
// reorder request. Items without a linked supplier are skipped. Failures are
// collected so one bad item never stops the rest of the sweep.
func (s *serviceImpl) Scan(ctx context.Context) error {
	items, err := s.inventory.ListAtOrBelow(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "list low stock items")
	}

	var errs error
	for _, item := range items {
		if err := s.processItem(ctx, item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d (%s): %w", item.ID, item.ItemName, err))
		}
	}
	return errs
}

func (s *serviceImpl) processItem(ctx context.Context, item models.InventoryItem) error {
	supplier, err := s.suppliers.FindBySKU(ctx, item.SKU)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			s.logger.Debug(s.logger.WithSKU(ctx, item.SKU), "no supplier linked, skipping reorder")
			return nil
		}
		return err
	}

	quantity := s.orderQuantity(item)
	msg := mailer.Message{
		To:      supplier.Email,
		Subject: emailSubject(item.ItemName),
		Body:    emailBody(supplier.Name, item.ItemName, quantity),
	}

	sendCtx := ctx
	if s.cfg.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.NotifyTimeout)
		defer cancel()
	}
	sendErr := s.mailer.Send(sendCtx, msg)

	notification := &models.ReorderNotification{
		ItemID:     item.ID,
		SupplierID: supplier.ID,
		SKU:        item.SKU,
		Quantity:   quantity,
		Recipient:  supplier.Email,
		Status:     models.ReorderNotificationSent,
	}
	if sendErr != nil {
		notification.Status = models.ReorderNotificationFailed
		detail := sendErr.Error()
		notification.Error = &detail
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return multierr.Append(sendErr, fmt.Errorf("record notification: %w", err))
	}

	if sendErr != nil {
		return sendErr
	}
	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"item_id":     item.ID,
		"supplier_id": supplier.ID,
		"quantity":    quantity,
	}), "reorder request sent")
	return nil
}

// orderQuantity matches the ordering policy: items dispatched often get a 25
// percent larger order, everything else reorders the on-hand amount.
func (s *serviceImpl) orderQuantity(item models.InventoryItem) int {
	if item.DispatchCount > s.cfg.HighDemandThreshold {
		return int(decimal.NewFromInt(int64(item.Quantity)).Mul(orderUplift).IntPart())
	}
	return item.Quantity
}

func (s *serviceImpl) ListNotifications(ctx context.Context, limit int) ([]models.ReorderNotification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list reorder notifications")
	}
	return rows, nil
}
