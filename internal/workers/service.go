package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes CRUD for workers. Cumulative statistics are maintained by
// the work order engine; a worker with live assignments cannot be deleted.
type Service interface {
	List(ctx context.Context, search string) ([]models.Worker, error)
	Get(ctx context.Context, id int64) (*models.Worker, error)
	Create(ctx context.Context, payload CreatePayload) (*models.Worker, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Worker, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the workers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("workers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]models.Worker, error) {
	workers, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing workers")
	}
	return workers, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Worker, error) {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("worker %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading worker")
	}
	return worker, nil
}

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.Worker, error) {
	worker := models.Worker{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
	}
	if payload.CommuteExpense != nil {
		rounded := payload.CommuteExpense.Round(2)
		worker.CommuteExpense = &rounded
	}
	if payload.ShiftExpense != nil {
		rounded := payload.ShiftExpense.Round(2)
		worker.ShiftExpense = &rounded
	}
	if payload.MealExpense != nil {
		rounded := payload.MealExpense.Round(2)
		worker.MealExpense = &rounded
	}
	if payload.OtherExpense != nil {
		rounded := payload.OtherExpense.Round(2)
		worker.OtherExpense = &rounded
	}

	if err := s.repo.Create(ctx, &worker); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating worker")
	}
	return &worker, nil
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Worker, error) {
	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Email != nil {
		updates["email"] = *payload.Email
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.CommuteExpense != nil {
		updates["commute_expense"] = payload.CommuteExpense.Round(2)
	}
	if payload.ShiftExpense != nil {
		updates["shift_expense"] = payload.ShiftExpense.Round(2)
	}
	if payload.MealExpense != nil {
		updates["meal_expense"] = payload.MealExpense.Round(2)
	}
	if payload.OtherExpense != nil {
		updates["other_expense"] = payload.OtherExpense.Round(2)
	}

	if len(updates) > 0 {
		affected, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating worker")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("worker %d not found", id))
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	assignments, err := s.repo.CountAssignments(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting assignments")
	}
	if assignments > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "cannot delete worker with existing job assignments")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting worker")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("worker %d not found", id))
	}
	return nil
}
