package vehicles

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence surface for vehicles.
type Repository interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Updates(ctx context.Context, id int64, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a vehicles repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.DB(ctx).
		Preload("Customer").
		Preload("WorkOrders").
		Order("created_at DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.DB(ctx).
		Preload("Customer").
		Preload("WorkOrders.LineItems").
		Where("id = ?", id).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.DB(ctx).Create(vehicle).Error
}

func (r *repository) Updates(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.DB(ctx).Delete(&models.Vehicle{}, id)
	return result.RowsAffected, result.Error
}
