package workorders

import (
	"context"
	"time"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the persistence surface the coordinator needs. WithTx rebinds
// the repository to an open transaction so every statement of one operation
// shares a unit of work.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.WorkOrder, error)
	FindDetailed(ctx context.Context, id int64) (*models.WorkOrder, error)
	List(ctx context.Context, filters ListFilters) ([]models.WorkOrder, error)

	Create(ctx context.Context, order *models.WorkOrder) error
	Save(ctx context.Context, order *models.WorkOrder) error
	SetCreatedAt(ctx context.Context, id int64, createdAt time.Time) error
	Delete(ctx context.Context, id int64) error

	CreateLineItems(ctx context.Context, items []models.WorkOrderLineItem) error
	DeleteLineItems(ctx context.Context, orderID int64) error
	CreateAssignments(ctx context.Context, assignments []models.WorkOrderAssignment) error
	DeleteAssignments(ctx context.Context, orderID int64) error
	CreateLog(ctx context.Context, entry *models.WorkOrderLog) error
	DeleteLogs(ctx context.Context, orderID int64) error

	IncrementInventory(ctx context.Context, itemID int64, quantity int) error
	UpdateInventoryAfterConsumption(ctx context.Context, itemID int64, remaining int, unitPrice decimal.Decimal, description *string) error
	ApplyWorkerDelta(ctx context.Context, workerID int64, jobs, services int) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a work order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.WorkOrder{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.DB(ctx).
		Preload("LineItems").
		Preload("Assignments").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindDetailed(ctx context.Context, id int64) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.DB(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("LineItems.InventoryItem").
		Preload("LineItems.ServiceItem").
		Preload("Assignments.Worker").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.WorkOrder, error) {
	query := r.DB(ctx).Model(&models.WorkOrder{})

	if filters.Status != nil && *filters.Status != "ALL" {
		query = query.Where("work_orders.status = ?", *filters.Status)
	}
	if filters.Historical != nil {
		query = query.Where("work_orders.is_historical = ?", *filters.Historical)
	}
	if filters.From != nil {
		query = query.Where("work_orders.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("work_orders.created_at <= ?", *filters.To)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.
			Joins("LEFT JOIN customers ON customers.id = work_orders.customer_id").
			Joins("LEFT JOIN vehicles ON vehicles.id = work_orders.vehicle_id").
			Where(r.DB(ctx).
				Where("work_orders.code LIKE ?", pattern).
				Or("work_orders.description LIKE ?", pattern).
				Or("customers.first_name LIKE ?", pattern).
				Or("customers.last_name LIKE ?", pattern).
				Or("vehicles.vin LIKE ?", pattern).
				Or("vehicles.make LIKE ?", pattern).
				Or("vehicles.model LIKE ?", pattern).
				Or("vehicles.license_plate LIKE ?", pattern))
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var orders []models.WorkOrder
	err := query.
		Preload("Customer").
		Preload("Vehicle").
		Preload("LineItems.InventoryItem").
		Preload("LineItems.ServiceItem").
		Preload("Assignments.Worker").
		Order("work_orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Create(ctx context.Context, order *models.WorkOrder) error {
	return r.DB(ctx).Create(order).Error
}

func (r *repository) Save(ctx context.Context, order *models.WorkOrder) error {
	return r.DB(ctx).Save(order).Error
}

func (r *repository) SetCreatedAt(ctx context.Context, id int64, createdAt time.Time) error {
	return r.DB(ctx).
		Model(&models.WorkOrder{}).
		Where("id = ?", id).
		UpdateColumn("created_at", createdAt).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.WorkOrder{}, id).Error
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.WorkOrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&items).Error
}

func (r *repository) DeleteLineItems(ctx context.Context, orderID int64) error {
	return r.DB(ctx).
		Where("work_order_id = ?", orderID).
		Delete(&models.WorkOrderLineItem{}).Error
}

func (r *repository) CreateAssignments(ctx context.Context, assignments []models.WorkOrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&assignments).Error
}

func (r *repository) DeleteAssignments(ctx context.Context, orderID int64) error {
	return r.DB(ctx).
		Where("work_order_id = ?", orderID).
		Delete(&models.WorkOrderAssignment{}).Error
}

func (r *repository) CreateLog(ctx context.Context, entry *models.WorkOrderLog) error {
	return r.DB(ctx).Create(entry).Error
}

func (r *repository) DeleteLogs(ctx context.Context, orderID int64) error {
	return r.DB(ctx).
		Where("work_order_id = ?", orderID).
		Delete(&models.WorkOrderLog{}).Error
}

func (r *repository) IncrementInventory(ctx context.Context, itemID int64, quantity int) error {
	return r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", quantity)).Error
}

func (r *repository) UpdateInventoryAfterConsumption(ctx context.Context, itemID int64, remaining int, unitPrice decimal.Decimal, description *string) error {
	updates := map[string]any{
		"quantity_on_hand": remaining,
		"unit_price":       unitPrice,
	}
	if description != nil {
		updates["description"] = *description
	}
	return r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) ApplyWorkerDelta(ctx context.Context, workerID int64, jobs, services int) error {
	return r.DB(ctx).
		Model(&models.Worker{}).
		Where("id = ?", workerID).
		Updates(map[string]any{
			"total_jobs":     gorm.Expr("total_jobs + ?", jobs),
			"total_services": gorm.Expr("total_services + ?", services),
		}).Error
}
