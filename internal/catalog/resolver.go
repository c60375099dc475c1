package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryInput describes how a part line references the inventory catalog:
// strictly by id, or by name with enough data to auto-provision the item.
type InventoryInput struct {
	ID           *int64
	Name         string
	SKU          *string
	Description  *string
	UnitPrice    decimal.Decimal
	InitialStock *int
}

// ServiceInput describes how a labour line references the service catalog.
type ServiceInput struct {
	ID          *int64
	Name        string
	Description *string
	UnitPrice   decimal.Decimal
}

// WorkerInput identifies a worker by id or by exact name.
type WorkerInput struct {
	ID   *int64
	Name *string
}

// Resolver maps catalog references to persisted records, creating them by name
// when no id is given. All lookups run against the supplied transaction so the
// whole work order mutation stays in one unit of work.
type Resolver interface {
	ResolveInventoryItem(ctx context.Context, tx *gorm.DB, input InventoryInput) (item *models.InventoryItem, created bool, err error)
	ResolveServiceItem(ctx context.Context, tx *gorm.DB, input ServiceInput) (item *models.ServiceItem, created bool, err error)
	ResolveWorker(ctx context.Context, tx *gorm.DB, input WorkerInput) (*models.Worker, error)
}

type resolver struct{}

// NewResolver builds the store-backed catalog resolver.
func NewResolver() Resolver {
	return &resolver{}
}

func (r *resolver) ResolveInventoryItem(ctx context.Context, tx *gorm.DB, input InventoryInput) (*models.InventoryItem, bool, error) {
	if input.ID != nil {
		var item models.InventoryItem
		err := tx.WithContext(ctx).Where("id = ?", *input.ID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory item %d not found", *input.ID))
			}
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up inventory item")
		}
		return &item, false, nil
	}

	var existing models.InventoryItem
	err := tx.WithContext(ctx).Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up inventory item by name")
	}

	sku := ""
	if input.SKU != nil {
		sku = strings.TrimSpace(*input.SKU)
	}
	if sku == "" {
		sku = GenerateSKU("SKU", input.Name)
	}

	seed := 0
	if input.InitialStock != nil {
		seed = *input.InitialStock
	}

	item := models.InventoryItem{
		Name:           input.Name,
		SKU:            sku,
		Description:    input.Description,
		QuantityOnHand: seed,
		ReorderPoint:   5,
		UnitCost:       input.UnitPrice.Round(2),
		UnitPrice:      input.UnitPrice.Round(2),
	}
	if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating inventory item")
	}
	return &item, true, nil
}

func (r *resolver) ResolveServiceItem(ctx context.Context, tx *gorm.DB, input ServiceInput) (*models.ServiceItem, bool, error) {
	if input.ID != nil {
		var item models.ServiceItem
		err := tx.WithContext(ctx).Where("id = ?", *input.ID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service item %d not found", *input.ID))
			}
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up service item")
		}
		return &item, false, nil
	}

	var existing models.ServiceItem
	err := tx.WithContext(ctx).Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up service item by name")
	}

	item := models.ServiceItem{
		Name:         input.Name,
		Description:  input.Description,
		DefaultPrice: input.UnitPrice.Round(2),
	}
	if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating service item")
	}
	return &item, true, nil
}

func (r *resolver) ResolveWorker(ctx context.Context, tx *gorm.DB, input WorkerInput) (*models.Worker, error) {
	if input.ID != nil {
		var worker models.Worker
		err := tx.WithContext(ctx).Where("id = ?", *input.ID).First(&worker).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("worker %d not found", *input.ID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up worker")
		}
		return &worker, nil
	}

	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workerId or workerName is required to assign a worker")
	}
	name := strings.TrimSpace(*input.Name)

	var existing models.Worker
	err := tx.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up worker by name")
	}

	worker := models.Worker{Name: name}
	if err := tx.WithContext(ctx).Create(&worker).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating worker")
	}
	return &worker, nil
}

// GenerateSKU derives a stock keeping unit from an item name: the first six
// alphanumeric characters uppercased plus a base36 timestamp suffix.
func GenerateSKU(prefix, name string) string {
	var compact strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			compact.WriteRune(r)
		}
	}
	head := strings.ToUpper(compact.String())
	if len(head) > 6 {
		head = head[:6]
	}
	if head == "" {
		head = "ITEM"
	}
	suffix := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", prefix, head, suffix)
}
