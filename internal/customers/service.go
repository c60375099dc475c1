package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes customer CRUD.
type Service interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, payload CreatePayload) (*models.Customer, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the customers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customers")
	}
	return customers, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	return customer, nil
}

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.Customer, error) {
	customer := models.Customer{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Company:      payload.Company,
		Notes:        payload.Notes,
		AddressLine1: payload.AddressLine1,
		AddressLine2: payload.AddressLine2,
		City:         payload.City,
		State:        payload.State,
		PostalCode:   payload.PostalCode,
	}
	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating customer")
	}
	return &customer, nil
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.Customer, error) {
	updates := map[string]any{}
	setIf := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setIf("first_name", payload.FirstName)
	setIf("last_name", payload.LastName)
	setIf("email", payload.Email)
	setIf("phone", payload.Phone)
	setIf("company", payload.Company)
	setIf("notes", payload.Notes)
	setIf("address_line1", payload.AddressLine1)
	setIf("address_line2", payload.AddressLine2)
	setIf("city", payload.City)
	setIf("state", payload.State)
	setIf("postal_code", payload.PostalCode)

	if len(updates) > 0 {
		affected, err := s.repo.Updates(ctx, id, updates)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating customer")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", id))
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting customer")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", id))
	}
	return nil
}
