package dashboard

import (
	"context"
	"time"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	"gorm.io/gorm"
)

const (
	recentCompletedLimit = 10
	topWorkerLimit       = 8
)

// Repository is the read-only aggregation surface behind the dashboard.
type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountVehicles(ctx context.Context) (int64, error)
	CountOpenWorkOrders(ctx context.Context) (int64, error)
	RecentCompletedWorkOrders(ctx context.Context, since time.Time) ([]models.WorkOrder, error)
	InventoryByQuantity(ctx context.Context) ([]models.InventoryItem, error)
	TopWorkers(ctx context.Context) ([]models.Worker, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func (r *repository) CountVehicles(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Vehicle{}).Count(&count).Error
	return count, err
}

func (r *repository) CountOpenWorkOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.WorkOrder{}).
		Where("status IN ?", openStatuses).
		Count(&count).Error
	return count, err
}

func (r *repository) RecentCompletedWorkOrders(ctx context.Context, since time.Time) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder
	err := r.DB(ctx).
		Where("status = ?", enums.WorkOrderStatusCompleted).
		Where("updated_at >= ?", since).
		Order("updated_at DESC").
		Limit(recentCompletedLimit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) InventoryByQuantity(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB(ctx).
		Order("quantity_on_hand ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) TopWorkers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.DB(ctx).
		Order("total_jobs DESC").
		Order("total_services DESC").
		Order("name ASC").
		Limit(topWorkerLimit).
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}
