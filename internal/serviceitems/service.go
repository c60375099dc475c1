package serviceitems

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarroquin/gearbox-backend/pkg/db"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes CRUD for the labour catalog.
type Service interface {
	List(ctx context.Context, search string) ([]models.ServiceItem, error)
	Get(ctx context.Context, id int64) (*models.ServiceItem, error)
	Create(ctx context.Context, payload CreatePayload) (*models.ServiceItem, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.ServiceItem, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the service catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("service catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]models.ServiceItem, error) {
	items, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing service items")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.ServiceItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service item %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading service item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.ServiceItem, error) {
	item := models.ServiceItem{
		Name:         payload.Name,
		Description:  payload.Description,
		DefaultPrice: payload.DefaultPrice.Round(2),
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("service %q already exists", payload.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating service item")
	}
	return &item, nil
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.ServiceItem, error) {
	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.DefaultPrice != nil {
		updates["default_price"] = payload.DefaultPrice.Round(2)
	}

	if len(updates) > 0 {
		affected, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "service name already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating service item")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service item %d not found", id))
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting service item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service item %d not found", id))
	}
	return nil
}
