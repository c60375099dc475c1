package customers

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence surface for customers.
type Repository interface {
	List(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Updates(ctx context.Context, id int64, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.DB(ctx).
		Preload("Vehicles").
		Preload("WorkOrders").
		Order("last_name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB(ctx).
		Preload("Vehicles").
		Preload("WorkOrders").
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Create(customer).Error
}

func (r *repository) Updates(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.DB(ctx).Delete(&models.Customer{}, id)
	return result.RowsAffected, result.Error
}
