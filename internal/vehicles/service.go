package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarroquin/gearbox-backend/pkg/db"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes vehicle CRUD. Every vehicle belongs to one customer.
type Service interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id int64) (*models.Vehicle, error)
	Create(ctx context.Context, payload CreatePayload) (*models.Vehicle, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the vehicles service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing vehicles")
	}
	return vehicles, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vehicle %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading vehicle")
	}
	return vehicle, nil
}

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.Vehicle, error) {
	vehicle := models.Vehicle{
		CustomerID:   payload.CustomerID,
		VIN:          payload.VIN,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		LicensePlate: payload.LicensePlate,
		Mileage:      payload.Mileage,
		Color:        payload.Color,
		Engine:       payload.Engine,
		Notes:        payload.Notes,
	}
	if err := s.repo.Create(ctx, &vehicle); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("VIN %s already exists", payload.VIN))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating vehicle")
	}
	return &vehicle, nil
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Vehicle, error) {
	updates := map[string]any{}
	if payload.CustomerID != nil {
		updates["customer_id"] = *payload.CustomerID
	}
	if payload.VIN != nil {
		updates["vin"] = *payload.VIN
	}
	if payload.Make != nil {
		updates["make"] = *payload.Make
	}
	if payload.Model != nil {
		updates["model"] = *payload.Model
	}
	if payload.Year != nil {
		updates["year"] = *payload.Year
	}
	if payload.LicensePlate != nil {
		updates["license_plate"] = *payload.LicensePlate
	}
	if payload.Mileage != nil {
		updates["mileage"] = *payload.Mileage
	}
	if payload.Color != nil {
		updates["color"] = *payload.Color
	}
	if payload.Engine != nil {
		updates["engine"] = *payload.Engine
	}
	if payload.Notes != nil {
		updates["notes"] = *payload.Notes
	}

	if len(updates) > 0 {
		affected, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "VIN already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating vehicle")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vehicle %d not found", id))
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting vehicle")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vehicle %d not found", id))
	}
	return nil
}
