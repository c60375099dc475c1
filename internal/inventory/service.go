package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmarroquin/gearbox-backend/internal/catalog"
	"github.com/dmarroquin/gearbox-backend/pkg/db"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes CRUD for the parts catalog. Stock consumed by work orders is
// adjusted by the work order engine, not here.
type Service interface {
	List(ctx context.Context, search string) ([]models.InventoryItem, error)
	Get(ctx context.Context, id int64) (*models.InventoryItem, error)
	Create(ctx context.Context, payload CreatePayload) (*models.InventoryItem, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the inventory service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing inventory items")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading inventory item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.InventoryItem, error) {
	sku := ""
	if payload.SKU != nil {
		sku = strings.TrimSpace(*payload.SKU)
	}
	if sku == "" {
		sku = catalog.GenerateSKU("INV", payload.Name)
	}

	item := models.InventoryItem{
		Name:        payload.Name,
		SKU:         sku,
		Description: trimOrNil(payload.Description),
		UnitCost:    moneyOrZero(payload.UnitCost),
		UnitPrice:   moneyOrZero(payload.UnitPrice),
	}
	if payload.QuantityOnHand != nil {
		item.QuantityOnHand = *payload.QuantityOnHand
	}
	if payload.ReorderPoint != nil {
		item.ReorderPoint = *payload.ReorderPoint
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("SKU %s already exists", sku))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating inventory item")
	}
	return &item, nil
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.InventoryItem, error) {
	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = trimOrNil(payload.Description)
	}
	if payload.QuantityOnHand != nil {
		updates["quantity_on_hand"] = *payload.QuantityOnHand
	}
	if payload.ReorderPoint != nil {
		updates["reorder_point"] = *payload.ReorderPoint
	}
	if payload.UnitCost != nil {
		updates["unit_cost"] = payload.UnitCost.Round(2)
	}
	if payload.UnitPrice != nil {
		updates["unit_price"] = payload.UnitPrice.Round(2)
	}
	if payload.SKU != nil {
		if sku := strings.TrimSpace(*payload.SKU); sku != "" {
			updates["sku"] = sku
		}
	}

	if len(updates) > 0 {
		affected, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "SKU already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating inventory item")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", id))
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting inventory item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", id))
	}
	return nil
}

func trimOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func moneyOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return value.Round(2)
}
