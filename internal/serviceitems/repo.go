package serviceitems

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"gorm.io/gorm"
)

const searchResultCap = 25

// Repository is the persistence surface for the service catalog.
type Repository interface {
	List(ctx context.Context, search string) ([]models.ServiceItem, error)
	FindByID(ctx context.Context, id int64) (*models.ServiceItem, error)
	Create(ctx context.Context, item *models.ServiceItem) error
	Updates(ctx context.Context, id int64, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a service catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context, search string) ([]models.ServiceItem, error) {
	query := r.DB(ctx).Model(&models.ServiceItem{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%").Limit(searchResultCap)
	}

	var items []models.ServiceItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.ServiceItem, error) {
	var item models.ServiceItem
	if err := r.DB(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Create(ctx context.Context, item *models.ServiceItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *repository) Updates(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.ServiceItem{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.DB(ctx).Delete(&models.ServiceItem{}, id)
	return result.RowsAffected, result.Error
}
