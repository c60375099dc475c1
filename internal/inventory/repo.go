package inventory

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"gorm.io/gorm"
)

const searchResultCap = 25

// Repository is the persistence surface for the parts catalog.
type Repository interface {
	List(ctx context.Context, search string) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Updates(ctx context.Context, id int64, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context, search string) ([]models.InventoryItem, error) {
	query := r.DB(ctx).Model(&models.InventoryItem{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Where(r.DB(ctx).Where("name LIKE ?", pattern).Or("sku LIKE ?", pattern)).
			Limit(searchResultCap)
	}

	var items []models.InventoryItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *repository) Updates(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.DB(ctx).Delete(&models.InventoryItem{}, id)
	return result.RowsAffected, result.Error
}
