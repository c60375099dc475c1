package workorders

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/catalog"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// reconcileResult carries the outcome of resolving one line item set: the
// persisted-ready line records and the subtotals the aggregator and the
// assignment tracker feed on.
type reconcileResult struct {
	Lines         []models.WorkOrderLineItem
	PartsTotal    decimal.Decimal
	ServicesTotal decimal.Decimal
	ServiceCount  int
}

// reconcileLineItems resolves every requested line against the catalog,
// computes line totals, and consumes inventory stock for PART lines. Each PART
// decrement uses the item's stored quantity as the baseline (for items created
// here, that is the seeded initial stock). Runs entirely inside tx.
func (s *service) reconcileLineItems(ctx context.Context, tx *gorm.DB, inputs []LineItemInput) (reconcileResult, error) {
	result := reconcileResult{
		PartsTotal:    decimal.Zero,
		ServicesTotal: decimal.Zero,
	}
	repo := s.repo.WithTx(tx)

	for _, input := range inputs {
		unitPrice := input.UnitPrice.Round(2)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)

		switch input.Type {
		case enums.LineItemTypePart:
			item, _, err := s.catalog.ResolveInventoryItem(ctx, tx, catalog.InventoryInput{
				ID:           input.InventoryItemID,
				Name:         input.Name,
				SKU:          input.SKU,
				Description:  input.Description,
				UnitPrice:    unitPrice,
				InitialStock: input.InitialStock,
			})
			if err != nil {
				return reconcileResult{}, err
			}

			description := item.Name
			if input.Description != nil {
				description = *input.Description
			}
			itemID := item.ID
			result.Lines = append(result.Lines, models.WorkOrderLineItem{
				InventoryItemID: &itemID,
				Description:     description,
				Quantity:        input.Quantity,
				UnitPrice:       unitPrice,
				LineTotal:       lineTotal,
			})
			result.PartsTotal = result.PartsTotal.Add(lineTotal)

			remaining := item.QuantityOnHand - input.Quantity
			if err := repo.UpdateInventoryAfterConsumption(ctx, item.ID, remaining, unitPrice, input.Description); err != nil {
				return reconcileResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjusting inventory stock")
			}

		case enums.LineItemTypeService:
			item, created, err := s.catalog.ResolveServiceItem(ctx, tx, catalog.ServiceInput{
				ID:          input.ServiceItemID,
				Name:        input.Name,
				Description: input.Description,
				UnitPrice:   unitPrice,
			})
			if err != nil {
				return reconcileResult{}, err
			}

			description := item.Name
			if input.Description != nil {
				description = *input.Description
			}
			itemID := item.ID
			result.Lines = append(result.Lines, models.WorkOrderLineItem{
				ServiceItemID: &itemID,
				Description:   description,
				Quantity:      input.Quantity,
				UnitPrice:     unitPrice,
				LineTotal:     lineTotal,
			})
			result.ServicesTotal = result.ServicesTotal.Add(lineTotal)
			result.ServiceCount += input.Quantity

			if !created {
				if err := s.refreshServiceItem(ctx, tx, item, input, unitPrice); err != nil {
					return reconcileResult{}, err
				}
			}

		default:
			return reconcileResult{}, pkgerrors.New(pkgerrors.CodeValidation, "line item type must be PART or SERVICE")
		}
	}

	return result, nil
}

// refreshServiceItem keeps a reused catalog entry in sync with the request:
// a differing description or unit price overwrites the stored defaults.
func (s *service) refreshServiceItem(ctx context.Context, tx *gorm.DB, item *models.ServiceItem, input LineItemInput, unitPrice decimal.Decimal) error {
	updates := map[string]any{}

	if input.Description != nil {
		if item.Description == nil || *item.Description != *input.Description {
			updates["description"] = *input.Description
		}
	}
	if !item.DefaultPrice.Equal(unitPrice) {
		updates["default_price"] = unitPrice
	}
	if len(updates) == 0 {
		return nil
	}

	err := tx.WithContext(ctx).
		Model(&models.ServiceItem{}).
		Where("id = ?", item.ID).
		Updates(updates).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refreshing service item")
	}
	return nil
}

// restockLineItems returns every previously consumed PART quantity to its
// inventory item. Called before a line set is replaced or the order deleted.
func (s *service) restockLineItems(ctx context.Context, tx *gorm.DB, lines []models.WorkOrderLineItem) error {
	repo := s.repo.WithTx(tx)
	for _, line := range lines {
		if line.InventoryItemID == nil {
			continue
		}
		if err := repo.IncrementInventory(ctx, *line.InventoryItemID, line.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restocking inventory")
		}
	}
	return nil
}
