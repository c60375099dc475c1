package workorders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarroquin/gearbox-backend/internal/catalog"
	"github.com/dmarroquin/gearbox-backend/pkg/db"
	"github.com/dmarroquin/gearbox-backend/pkg/db/models"
	"github.com/dmarroquin/gearbox-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service coordinates every work order mutation as one atomic unit of work:
// line item reconciliation, inventory adjustment, worker statistics, financial
// aggregation, and the audit log all commit or fail together.
type Service interface {
	Create(ctx context.Context, payload CreatePayload) (*models.WorkOrder, error)
	Update(ctx context.Context, id int64, payload UpdatePayload) (*models.WorkOrder, error)
	Complete(ctx context.Context, id int64) (*models.WorkOrder, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters ListFilters) ([]models.WorkOrder, error)
	Get(ctx context.Context, id int64) (*models.WorkOrder, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	catalog catalog.Resolver
	logg    *logger.Logger
}

// NewService builds the work order coordinator with its required dependencies.
func NewService(repo Repository, tx txRunner, resolver catalog.Resolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("work order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("catalog resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, catalog: resolver, logg: logg}, nil
}

const logAuthorSystem = "system"

func (s *service) Create(ctx context.Context, payload CreatePayload) (*models.WorkOrder, error) {
	if payload.VehicleID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicleId is required")
	}

	var orderID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.Count(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting work orders")
		}
		code := fmt.Sprintf("WO-%05d", count+1)

		reconciled, err := s.reconcileLineItems(ctx, tx, payload.LineItems)
		if err != nil {
			return err
		}

		assignments, deltas, err := s.prepareAssignments(ctx, tx, payload.Assignments, reconciled.ServiceCount)
		if err != nil {
			return err
		}

		fin := aggregateFinancials(financialOverrides{
			Labor:    payload.LaborCost,
			Parts:    payload.PartsCost,
			Taxes:    payload.Taxes,
			Discount: payload.Discount,
			Parking:  payload.ParkingCharge,
		}, financialBaseline{
			Labor: reconciled.ServicesTotal,
			Parts: reconciled.PartsTotal,
		})

		status := enums.WorkOrderStatusInProgress
		if payload.Status != nil {
			status = *payload.Status
		}
		historicalMode := payload.Mode != nil && *payload.Mode == enums.WorkOrderModeHistorical
		isHistorical := historicalMode || (payload.IsHistorical != nil && *payload.IsHistorical)
		arrival := time.Now()
		if payload.ArrivalDate != nil {
			arrival = *payload.ArrivalDate
		}

		order := models.WorkOrder{
			Code:          code,
			VehicleID:     payload.VehicleID,
			CustomerID:    payload.CustomerID,
			Description:   payload.Description,
			Status:        status,
			IsHistorical:  isHistorical,
			ArrivalDate:   arrival,
			QuotedAt:      payload.QuotedAt,
			ScheduledDate: payload.ScheduledDate,
			CompletedDate: payload.CompletedDate,
			ParkingCharge: fin.Parking,
			LaborCost:     fin.Labor,
			PartsCost:     fin.Parts,
			Taxes:         fin.Taxes,
			Discount:      fin.Discount,
			TotalCost:     fin.Total,
			Notes:         payload.Notes,
		}
		if err := repo.Create(ctx, &order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("work order code %s already exists", code))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating work order")
		}

		for i := range reconciled.Lines {
			reconciled.Lines[i].WorkOrderID = order.ID
		}
		if err := repo.CreateLineItems(ctx, reconciled.Lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating line items")
		}
		for i := range assignments {
			assignments[i].WorkOrderID = order.ID
		}
		if err := repo.CreateAssignments(ctx, assignments); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating assignments")
		}
		if err := repo.CreateLog(ctx, &models.WorkOrderLog{
			WorkOrderID: order.ID,
			Message:     "Work order created",
			Author:      logAuthorSystem,
			Category:    enums.LogCategorySystem,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing audit log")
		}

		// Historical intake backdates the record after the initial insert so
		// autoCreateTime never overwrites the override.
		if historicalMode && payload.CreatedAtOverride != nil {
			if err := repo.SetCreatedAt(ctx, order.ID, *payload.CreatedAtOverride); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backdating work order")
			}
		}

		if err := s.applyWorkerDeltas(ctx, repo, deltas); err != nil {
			return err
		}

		orderID = order.ID
		ctx = s.logg.WithWorkOrder(ctx, code)
		s.logg.Info(ctx, "work order created")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *service) Update(ctx context.Context, id int64, payload UpdatePayload) (*models.WorkOrder, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := s.findForMutation(ctx, repo, id)
		if err != nil {
			return err
		}

		partsTotal := existing.PartsCost
		servicesTotal := existing.LaborCost
		serviceCount := 0
		for _, line := range existing.LineItems {
			if line.ServiceItemID != nil {
				serviceCount += line.Quantity
			}
		}

		var newLines []models.WorkOrderLineItem
		linesReplaced := payload.LineItems != nil
		if linesReplaced {
			// Full reversal first: every consumed PART quantity goes back to
			// stock before the replacement set is reconciled.
			if err := s.restockLineItems(ctx, tx, existing.LineItems); err != nil {
				return err
			}
			if err := repo.DeleteLineItems(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing line items")
			}
			reconciled, err := s.reconcileLineItems(ctx, tx, *payload.LineItems)
			if err != nil {
				return err
			}
			newLines = reconciled.Lines
			partsTotal = reconciled.PartsTotal
			servicesTotal = reconciled.ServicesTotal
			serviceCount = reconciled.ServiceCount
		}

		deltas := map[int64]workerDelta{}
		var newAssignments []models.WorkOrderAssignment
		assignmentsReplaced := payload.Assignments != nil
		if assignmentsReplaced {
			deltas = negateAssignments(existing.Assignments)
			if err := repo.DeleteAssignments(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing assignments")
			}
			prepared, newDeltas, err := s.prepareAssignments(ctx, tx, *payload.Assignments, serviceCount)
			if err != nil {
				return err
			}
			newAssignments = prepared
			deltas = mergeDeltas(deltas, newDeltas)
		}

		fin := aggregateFinancials(financialOverrides{
			Labor:    payload.LaborCost,
			Parts:    payload.PartsCost,
			Taxes:    payload.Taxes,
			Discount: payload.Discount,
			Parking:  payload.ParkingCharge,
		}, financialBaseline{
			Labor:    servicesTotal,
			Parts:    partsTotal,
			Taxes:    existing.Taxes,
			Discount: existing.Discount,
			Parking:  existing.ParkingCharge,
		})

		if payload.Description != nil {
			existing.Description = *payload.Description
		}
		if payload.Status != nil {
			existing.Status = *payload.Status
		}
		if payload.Mode != nil {
			existing.IsHistorical = *payload.Mode == enums.WorkOrderModeHistorical
		} else if payload.IsHistorical != nil {
			existing.IsHistorical = *payload.IsHistorical
		}
		if payload.ArrivalDate != nil {
			existing.ArrivalDate = *payload.ArrivalDate
		}
		if payload.QuotedAt != nil {
			existing.QuotedAt = payload.QuotedAt
		}
		if payload.ScheduledDate != nil {
			existing.ScheduledDate = payload.ScheduledDate
		}
		if payload.CompletedDate != nil {
			existing.CompletedDate = payload.CompletedDate
		}
		if payload.VehicleID != nil {
			existing.VehicleID = *payload.VehicleID
		}
		if payload.CustomerID != nil {
			if *payload.CustomerID == 0 {
				existing.CustomerID = nil
			} else {
				existing.CustomerID = payload.CustomerID
			}
		}
		if payload.Notes != nil {
			existing.Notes = payload.Notes
		}
		existing.ParkingCharge = fin.Parking
		existing.LaborCost = fin.Labor
		existing.PartsCost = fin.Parts
		existing.Taxes = fin.Taxes
		existing.Discount = fin.Discount
		existing.TotalCost = fin.Total

		existing.LineItems = nil
		existing.Assignments = nil
		if err := repo.Save(ctx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving work order")
		}

		if linesReplaced {
			for i := range newLines {
				newLines[i].WorkOrderID = id
			}
			if err := repo.CreateLineItems(ctx, newLines); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating line items")
			}
		}
		if assignmentsReplaced {
			for i := range newAssignments {
				newAssignments[i].WorkOrderID = id
			}
			if err := repo.CreateAssignments(ctx, newAssignments); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating assignments")
			}
		}

		if err := repo.CreateLog(ctx, &models.WorkOrderLog{
			WorkOrderID: id,
			Message:     fmt.Sprintf("Work order updated (%s)", existing.Status),
			Author:      logAuthorSystem,
			Category:    enums.LogCategorySystem,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing audit log")
		}

		if payload.CreatedAtOverride != nil {
			if err := repo.SetCreatedAt(ctx, id, *payload.CreatedAtOverride); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backdating work order")
			}
		}

		return s.applyWorkerDeltas(ctx, repo, deltas)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Complete(ctx context.Context, id int64) (*models.WorkOrder, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := s.findForMutation(ctx, repo, id)
		if err != nil {
			return err
		}

		// Already completed historical orders are terminal: no status write,
		// no extra log entry.
		if existing.Status == enums.WorkOrderStatusCompleted && existing.IsHistorical {
			return nil
		}

		completedDate := time.Now()
		if existing.CompletedDate != nil {
			completedDate = *existing.CompletedDate
		}
		existing.Status = enums.WorkOrderStatusCompleted
		existing.CompletedDate = &completedDate
		existing.IsHistorical = true

		existing.LineItems = nil
		existing.Assignments = nil
		if err := repo.Save(ctx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving work order")
		}

		if err := repo.CreateLog(ctx, &models.WorkOrderLog{
			WorkOrderID: id,
			Message:     "Work order marked as completed",
			Author:      logAuthorSystem,
			Category:    enums.LogCategorySystem,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing audit log")
		}

		ctx = s.logg.WithWorkOrder(ctx, existing.Code)
		s.logg.Info(ctx, "work order completed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := s.findForMutation(ctx, repo, id)
		if err != nil {
			return err
		}

		if err := s.restockLineItems(ctx, tx, existing.LineItems); err != nil {
			return err
		}
		deltas := negateAssignments(existing.Assignments)

		if err := repo.DeleteLogs(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing audit log")
		}
		if err := repo.DeleteAssignments(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing assignments")
		}
		if err := repo.DeleteLineItems(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing line items")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting work order")
		}

		if err := s.applyWorkerDeltas(ctx, repo, deltas); err != nil {
			return err
		}

		ctx = s.logg.WithWorkOrder(ctx, existing.Code)
		s.logg.Info(ctx, "work order deleted")
		return nil
	})
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.WorkOrder, error) {
	if filters.Status != nil && *filters.Status != "ALL" {
		if _, err := enums.ParseWorkOrderStatus(*filters.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing work orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.WorkOrder, error) {
	order, err := s.repo.FindDetailed(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("work order %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading work order")
	}
	return order, nil
}

// findForMutation loads the order with its live children inside the open tx.
func (s *service) findForMutation(ctx context.Context, repo Repository, id int64) (*models.WorkOrder, error) {
	order, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("work order %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading work order")
	}
	return order, nil
}

// prepareAssignments resolves each requested worker and accumulates the
// positive statistic deltas: one job per assignment plus an explicit services
// count or the line-item-derived default.
func (s *service) prepareAssignments(ctx context.Context, tx *gorm.DB, inputs []AssignmentInput, defaultServiceCount int) ([]models.WorkOrderAssignment, map[int64]workerDelta, error) {
	deltas := make(map[int64]workerDelta, len(inputs))
	assignments := make([]models.WorkOrderAssignment, 0, len(inputs))

	for _, input := range inputs {
		worker, err := s.catalog.ResolveWorker(ctx, tx, catalog.WorkerInput{ID: input.WorkerID, Name: input.WorkerName})
		if err != nil {
			return nil, nil, err
		}

		servicesCount := defaultServiceCount
		if input.ServicesCount != nil {
			servicesCount = *input.ServicesCount
		}

		assignments = append(assignments, models.WorkOrderAssignment{
			WorkerID:      worker.ID,
			Role:          input.Role,
			Notes:         input.Notes,
			ServicesCount: servicesCount,
		})

		current := deltas[worker.ID]
		current.Jobs++
		current.Services += servicesCount
		deltas[worker.ID] = current
	}

	return assignments, deltas, nil
}

func (s *service) applyWorkerDeltas(ctx context.Context, repo Repository, deltas map[int64]workerDelta) error {
	for workerID, delta := range deltas {
		if err := repo.ApplyWorkerDelta(ctx, workerID, delta.Jobs, delta.Services); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "applying worker statistics")
		}
	}
	return nil
}
