package workers

import (
	"context"

	"github.com/dmarroquin/gearbox-backend/internal/repo"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"gorm.io/gorm"
)

const searchResultCap = 25

// Repository is the persistence surface for workers.
type Repository interface {
	List(ctx context.Context, search string) ([]models.Worker, error)
	FindByID(ctx context.Context, id int64) (*models.Worker, error)
	CountAssignments(ctx context.Context, workerID int64) (int64, error)
	Create(ctx context.Context, worker *models.Worker) error
	Updates(ctx context.Context, id int64, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a workers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) List(ctx context.Context, search string) ([]models.Worker, error) {
	query := r.DB(ctx).Model(&models.Worker{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Where(r.DB(ctx).Where("name LIKE ?", pattern).Or("email LIKE ?", pattern)).
			Limit(searchResultCap)
	}

	var workers []models.Worker
	err := query.
		Order("total_jobs DESC").
		Order("total_services DESC").
		Order("name ASC").
		Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Worker, error) {
	var worker models.Worker
	err := r.DB(ctx).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *repository) CountAssignments(ctx context.Context, workerID int64) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.WorkOrderAssignment{}).
		Where("worker_id = ?", workerID).
		Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, worker *models.Worker) error {
	return r.DB(ctx).Create(worker).Error
}

func (r *repository) Updates(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Worker{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.DB(ctx).Delete(&models.Worker{}, id)
	return result.RowsAffected, result.Error
}
